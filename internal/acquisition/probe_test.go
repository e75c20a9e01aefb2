package acquisition_test

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
)

// fakeFetcher serves files by URL. URLs without an entry are not found.
type fakeFetcher struct {
	files map[string]string
	delay map[string]time.Duration

	mu    sync.Mutex
	calls []string
	count atomic.Int32
}

func (f *fakeFetcher) Download(_ context.Context, rawURL, _ string) acquisition.Outcome[*acquisition.File] {
	f.count.Add(1)
	f.mu.Lock()
	f.calls = append(f.calls, rawURL)
	f.mu.Unlock()

	if d, ok := f.delay[rawURL]; ok {
		time.Sleep(d)
	}

	name, ok := f.files[rawURL]
	if !ok {
		return acquisition.NotFound[*acquisition.File]()
	}
	return acquisition.Found(&acquisition.File{Name: name, SourceURL: rawURL, Data: []byte("%PDF")})
}

func urls(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("https://tenders.example/doc%d", i+1)
	}
	return out
}

type progressLog struct {
	mu    sync.Mutex
	calls [][2]int
}

func (p *progressLog) record(probed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, [2]int{probed, total})
}

func TestProbeEarlyExit(t *testing.T) {
	candidates := urls(10)
	fetcher := &fakeFetcher{files: map[string]string{
		candidates[1]: "PCAP.pdf",
		candidates[4]: "PPT.pdf",
	}}
	progress := &progressLog{}

	p := acquisition.NewProber(fetcher, 4, discardLogger())
	result := p.Probe(context.Background(), candidates, progress.record)

	if result.Admin == nil || result.Admin.Name != "PCAP.pdf" {
		t.Errorf("Admin = %+v, want PCAP.pdf", result.Admin)
	}
	if result.Tech == nil || result.Tech.Name != "PPT.pdf" {
		t.Errorf("Tech = %+v, want PPT.pdf", result.Tech)
	}
	if n := fetcher.count.Load(); n != 8 {
		t.Errorf("downloads = %d, want 8", n)
	}

	want := [][2]int{{4, 10}, {8, 10}}
	if !slices.Equal(progress.calls, want) {
		t.Errorf("progress = %v, want %v", progress.calls, want)
	}
}

func TestProbeExhaustsCandidates(t *testing.T) {
	candidates := urls(6)
	fetcher := &fakeFetcher{files: map[string]string{
		candidates[5]: "PCAP.pdf",
	}}
	progress := &progressLog{}

	result := acquisition.NewProber(fetcher, 4, discardLogger()).
		Probe(context.Background(), candidates, progress.record)

	if result.Admin == nil || result.Tech != nil {
		t.Errorf("result = %+v, want admin only", result)
	}
	if n := fetcher.count.Load(); n != 6 {
		t.Errorf("downloads = %d, want 6", n)
	}

	want := [][2]int{{4, 6}, {6, 6}}
	if !slices.Equal(progress.calls, want) {
		t.Errorf("progress = %v, want %v", progress.calls, want)
	}
}

func TestProbeSlotAssignment(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		wantAdmin string
		wantTech  string
	}{
		{
			name:      "unknown files fill admin then tech",
			files:     []string{"doc_a.pdf", "doc_b.pdf"},
			wantAdmin: "doc_a.pdf",
			wantTech:  "doc_b.pdf",
		},
		{
			name:      "unknown claims admin before later admin keyword",
			files:     []string{"doc_a.pdf", "PCAP.pdf"},
			wantAdmin: "doc_a.pdf",
			wantTech:  "",
		},
		{
			name:      "second admin is dropped",
			files:     []string{"PCAP.pdf", "clausulas.pdf", "PPT.pdf"},
			wantAdmin: "PCAP.pdf",
			wantTech:  "PPT.pdf",
		},
		{
			name:      "tech first then unknown fills admin",
			files:     []string{"memoria.pdf", "otro.pdf"},
			wantAdmin: "otro.pdf",
			wantTech:  "memoria.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := urls(len(tt.files))
			fetcher := &fakeFetcher{files: map[string]string{}}
			for i, name := range tt.files {
				fetcher.files[candidates[i]] = name
			}

			result := acquisition.NewProber(fetcher, 4, discardLogger()).
				Probe(context.Background(), candidates, nil)

			if got := nameOf(result.Admin); got != tt.wantAdmin {
				t.Errorf("Admin = %q, want %q", got, tt.wantAdmin)
			}
			if got := nameOf(result.Tech); got != tt.wantTech {
				t.Errorf("Tech = %q, want %q", got, tt.wantTech)
			}
		})
	}
}

func nameOf(f *acquisition.File) string {
	if f == nil {
		return ""
	}
	return f.Name
}

func TestProbeOrderIndependentOfCompletion(t *testing.T) {
	candidates := urls(2)
	fetcher := &fakeFetcher{
		files: map[string]string{
			candidates[0]: "doc_a.pdf",
			candidates[1]: "doc_b.pdf",
		},
		delay: map[string]time.Duration{candidates[0]: 50 * time.Millisecond},
	}

	result := acquisition.NewProber(fetcher, 4, discardLogger()).
		Probe(context.Background(), candidates, nil)

	if nameOf(result.Admin) != "doc_a.pdf" || nameOf(result.Tech) != "doc_b.pdf" {
		t.Errorf("result = (%q, %q), want candidate order", nameOf(result.Admin), nameOf(result.Tech))
	}
}

func TestProbeFiltersCandidates(t *testing.T) {
	fetcher := &fakeFetcher{files: map[string]string{}}
	input := []string{
		"https://tenders.example/a.pdf",
		"https://tenders.example/a.pdf",
		"mailto:contratacion@example.es",
		"https://www.youtube.com/watch?v=1",
		"https://tenders.example/b.pdf",
	}

	progress := &progressLog{}
	acquisition.NewProber(fetcher, 4, discardLogger()).
		Probe(context.Background(), input, progress.record)

	slices.Sort(fetcher.calls)
	want := []string{"https://tenders.example/a.pdf", "https://tenders.example/b.pdf"}
	if !slices.Equal(fetcher.calls, want) {
		t.Errorf("calls = %v, want %v", fetcher.calls, want)
	}
	if !slices.Equal(progress.calls, [][2]int{{2, 2}}) {
		t.Errorf("progress = %v", progress.calls)
	}
}

func TestProbeEmpty(t *testing.T) {
	fetcher := &fakeFetcher{}
	progress := &progressLog{}

	result := acquisition.NewProber(fetcher, 4, discardLogger()).
		Probe(context.Background(), nil, progress.record)

	if result.Admin != nil || result.Tech != nil {
		t.Errorf("result = %+v, want empty", result)
	}
	if len(progress.calls) != 0 {
		t.Errorf("progress calls = %v, want none", progress.calls)
	}
}

func TestProbeThroughRelay(t *testing.T) {
	rl := newRelay(t, func(w http.ResponseWriter, r *http.Request, target string) {
		switch target {
		case "https://tenders.example/PCAP.pdf", "https://tenders.example/PPT.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write(pdfPayload(2048))
		default:
			http.NotFound(w, r)
		}
	})

	sys := acquisition.New(testConfig(t, rl), nil, discardLogger())
	result := sys.Probe(context.Background(), []string{
		"https://tenders.example/missing.pdf",
		"https://tenders.example/PPT.pdf",
		"https://tenders.example/PCAP.pdf",
	}, nil)

	if result.Admin == nil || !strings.HasPrefix(result.Admin.Name, "PCAP_") {
		t.Errorf("Admin = %+v, want synthesized PCAP name", result.Admin)
	}
	if result.Tech == nil || !strings.HasPrefix(result.Tech.Name, "PPT_") {
		t.Errorf("Tech = %+v, want synthesized PPT name", result.Tech)
	}
}
