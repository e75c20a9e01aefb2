package pagination_test

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/tenderboard/pkg/pagination"
	"github.com/JaimeStill/tenderboard/pkg/query"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := pagination.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg != defaultConfig() {
			t.Errorf("cfg = %+v, want %+v", cfg, defaultConfig())
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGE_SIZE", "50")
		t.Setenv("TEST_MAX_PAGE", "200")

		cfg := pagination.Config{}
		err := cfg.Finalize(&pagination.Env{
			DefaultPageSize: "TEST_PAGE_SIZE",
			MaxPageSize:     "TEST_MAX_PAGE",
		})
		if err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.DefaultPageSize != 50 || cfg.MaxPageSize != 200 {
			t.Errorf("cfg = %+v, want 50/200", cfg)
		}
	})

	t.Run("default exceeds max", func(t *testing.T) {
		cfg := pagination.Config{DefaultPageSize: 150, MaxPageSize: 100}
		err := cfg.Finalize(nil)
		if err == nil || !strings.Contains(err.Error(), "cannot exceed") {
			t.Errorf("error = %v, want default/max violation", err)
		}
	})

	t.Run("merge", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Merge(&pagination.Config{MaxPageSize: 500})
		if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 500 {
			t.Errorf("cfg = %+v, want 20/500", cfg)
		}
	})
}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		req          pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", pagination.PageRequest{}, 1, 20},
		{"negative page corrected", pagination.PageRequest{Page: -1, PageSize: 10}, 1, 10},
		{"page size clamped to max", pagination.PageRequest{Page: 1, PageSize: 500}, 1, 100},
		{"valid values preserved", pagination.PageRequest{Page: 3, PageSize: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize(defaultConfig())
			if tt.req.Page != tt.wantPage || tt.req.PageSize != tt.wantPageSize {
				t.Errorf("got page %d size %d, want %d/%d", tt.req.Page, tt.req.PageSize, tt.wantPage, tt.wantPageSize)
			}
			if want := (tt.wantPage - 1) * tt.wantPageSize; tt.req.Offset() != want {
				t.Errorf("Offset() = %d, want %d", tt.req.Offset(), want)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"2"},
		"page_size": {"15"},
		"search":    {"licitación"},
		"sort":      {"name,-createdAt"},
	}

	req := pagination.PageRequestFromQuery(values, defaultConfig())

	if req.Page != 2 || req.PageSize != 15 {
		t.Errorf("page = %d size = %d, want 2/15", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "licitación" {
		t.Errorf("Search = %v, want licitación", req.Search)
	}
	want := pagination.SortFields{{Field: "name"}, {Field: "createdAt", Descending: true}}
	if len(req.Sort) != 2 || req.Sort[0] != want[0] || req.Sort[1] != want[1] {
		t.Errorf("Sort = %v, want %v", req.Sort, want)
	}

	empty := pagination.PageRequestFromQuery(url.Values{}, defaultConfig())
	if empty.Page != 1 || empty.PageSize != 20 || empty.Search != nil {
		t.Errorf("empty query = %+v, want defaults", empty)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		page           int
		wantTotalPages int
		wantHasNext    bool
	}{
		{"exact division", 100, 1, 5, true},
		{"remainder", 101, 6, 6, false},
		{"single page", 5, 1, 1, false},
		{"empty result", 0, 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{"a"}, tt.total, tt.page, 20)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.HasNext != tt.wantHasNext {
				t.Errorf("HasNext = %v, want %v", result.HasNext, tt.wantHasNext)
			}
		})
	}

	if nilData := pagination.NewPageResult[string](nil, 0, 1, 20); nilData.Data == nil {
		t.Error("Data should be empty slice, not nil")
	}
}

func TestMap(t *testing.T) {
	page := pagination.NewPageResult([]string{"a", "bb"}, 42, 2, 2)
	lengths := pagination.Map(page, func(s string) int { return len(s) })

	if len(lengths.Data) != 2 || lengths.Data[0] != 1 || lengths.Data[1] != 2 {
		t.Errorf("Data = %v, want [1 2]", lengths.Data)
	}
	if lengths.Total != 42 || lengths.Page != 2 || lengths.TotalPages != 21 || !lengths.HasNext {
		t.Errorf("metadata not preserved: %+v", lengths)
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	want := []query.SortField{{Field: "name"}, {Field: "createdAt", Descending: true}}

	inputs := map[string]string{
		"string": `"name,-createdAt"`,
		"array":  `[{"Field":"name","Descending":false},{"Field":"createdAt","Descending":true}]`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var sf pagination.SortFields
			if err := json.Unmarshal([]byte(input), &sf); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if len(sf) != 2 || sf[0] != want[0] || sf[1] != want[1] {
				t.Errorf("sf = %v, want %v", sf, want)
			}
		})
	}
}
