package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/tenderboard/internal/api"
	"github.com/JaimeStill/tenderboard/internal/config"
	"github.com/JaimeStill/tenderboard/internal/infrastructure"
	"github.com/JaimeStill/tenderboard/pkg/database"
	"github.com/JaimeStill/tenderboard/pkg/logger"
	"github.com/JaimeStill/tenderboard/pkg/middleware"
	"github.com/JaimeStill/tenderboard/pkg/pagination"
	"github.com/JaimeStill/tenderboard/pkg/storage"
)

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "tenderboard",
			User:            "tenderboard",
			Password:        "tenderboard",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			Provider:      storage.ProviderMinIO,
			ContainerName: "tenders",
			Endpoint:      "localhost:9000",
			AccessKey:     "minio",
			SecretKey:     "minio123",
			MaxListSize:   50,
		},
		API: config.APIConfig{
			BasePath:      "/api",
			MaxUploadSize: "10MB",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
		},
		Log:             logger.Config{Level: "error", Format: "text"},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
	if err := cfg.Acquisition.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Analysis.Finalize(nil); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func setupInfra(t *testing.T, cfg *config.Config) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	t.Cleanup(func() { infra.Database.Connection().Close() })
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig(t)
	m, err := api.NewModule(cfg, setupInfra(t, cfg))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig(t)
	runtime := api.NewRuntime(cfg, setupInfra(t, cfg))

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Acquisition.BatchSize != 4 {
		t.Errorf("acquisition batch size: got %d, want 4", runtime.Acquisition.BatchSize)
	}
	if runtime.Logger == nil || runtime.Database == nil || runtime.Storage == nil || runtime.Lifecycle == nil {
		t.Error("runtime infrastructure incomplete")
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig(t)
	domain := api.NewDomain(api.NewRuntime(cfg, setupInfra(t, cfg)))

	if domain.Tenders == nil || domain.Intake == nil || domain.Staging == nil ||
		domain.Rules == nil || domain.Prompts == nil || domain.Acquisition == nil || domain.Analysis == nil {
		t.Errorf("domain incomplete: %+v", domain)
	}
}

func TestModuleRoutes(t *testing.T) {
	cfg := validConfig(t)
	m, err := api.NewModule(cfg, setupInfra(t, cfg))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"status", "GET", "/api/status", http.StatusOK},
		{"tender invalid id", "GET", "/api/tenders/not-a-uuid", http.StatusBadRequest},
		{"tender invalid slot", "GET", "/api/tenders/550e8400-e29b-41d4-a716-446655440000/files/annex", http.StatusBadRequest},
		{"storage invalid max results", "GET", "/api/storage?max_results=abc", http.StatusBadRequest},
		{"unknown route", "GET", "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			m.Serve(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
		})
	}
}

func TestStatusBeforeStart(t *testing.T) {
	cfg := validConfig(t)
	m, err := api.NewModule(cfg, setupInfra(t, cfg))
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/status", nil))

	var status api.Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Ready {
		t.Error("should not be ready before start")
	}
	if status.Version != "0.1.0" {
		t.Errorf("version = %q", status.Version)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	cfg := validConfig(t)
	cfg.API.OpenAPI.Title = "Tenderboard API"
	m, err := api.NewModule(cfg, setupInfra(t, cfg))
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]map[string]struct {
			Summary    string         `json:"summary"`
			Parameters []any          `json:"parameters"`
			Responses  map[string]any `json:"responses"`
		} `json:"paths"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if doc.Info.Title != "Tenderboard API" || doc.Info.Version != "0.1.0" {
		t.Errorf("info = %+v", doc.Info)
	}

	tests := []struct {
		path   string
		method string
		params int
		status string
	}{
		{"/tenders", "post", 0, "201"},
		{"/tenders/{id}/files/{slot}", "get", 2, "200"},
		{"/staging/{id}/{name}", "delete", 2, "204"},
		{"/storage/{key}", "get", 1, "200"},
		{"/intake", "post", 0, "200"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			op, ok := doc.Paths[tt.path][tt.method]
			if !ok {
				t.Fatalf("operation missing")
			}
			if op.Summary == "" {
				t.Error("summary missing")
			}
			if len(op.Parameters) != tt.params {
				t.Errorf("parameters = %d, want %d", len(op.Parameters), tt.params)
			}
			if _, ok := op.Responses[tt.status]; !ok {
				t.Errorf("response %s missing: %v", tt.status, op.Responses)
			}
		})
	}
}
