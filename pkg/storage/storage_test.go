package storage_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/JaimeStill/tenderboard/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=tenderstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/tenderstore;"

func providers() map[string]*storage.Config {
	return map[string]*storage.Config{
		storage.ProviderAzure: {
			Provider:         storage.ProviderAzure,
			ContainerName:    "tenders",
			ConnectionString: azuriteConnString,
		},
		storage.ProviderMinIO: {
			Provider:      storage.ProviderMinIO,
			ContainerName: "tenders",
			Endpoint:      "127.0.0.1:9000",
			AccessKey:     "minioadmin",
			SecretKey:     "minioadmin",
		},
	}
}

func TestNewReturnsSystem(t *testing.T) {
	for name, cfg := range providers() {
		t.Run(name, func(t *testing.T) {
			sys, err := storage.New(cfg, slog.Default())
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if sys == nil {
				t.Fatal("New() returned nil system")
			}
		})
	}
}

func TestNewInvalidConnectionString(t *testing.T) {
	cfg := &storage.Config{
		Provider:         storage.ProviderAzure,
		ContainerName:    "tenders",
		ConnectionString: "not-a-connection-string",
	}

	if _, err := storage.New(cfg, slog.Default()); err == nil {
		t.Fatal("expected error for invalid connection string, got nil")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := storage.New(&storage.Config{Provider: "ftp"}, slog.Default())
	if !errors.Is(err, storage.ErrUnknownProvider) {
		t.Fatalf("New() error = %v, want ErrUnknownProvider", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"empty key", storage.ErrEmptyKey, http.StatusBadRequest},
		{"invalid key", storage.ErrInvalidKey, http.StatusBadRequest},
		{"invalid max results", storage.ErrInvalidMaxResults, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("operation failed: %w", storage.ErrNotFound), http.StatusNotFound},
		{"unknown", fmt.Errorf("unexpected failure"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseMaxResults(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback int32
		want     int32
		wantErr  bool
	}{
		{name: "empty returns fallback", input: "", fallback: 50, want: 50},
		{name: "valid value within cap", input: "100", fallback: 50, want: 100},
		{name: "value exceeding cap is clamped", input: "9999", fallback: 50, want: storage.MaxListCap},
		{name: "zero is invalid", input: "0", fallback: 50, wantErr: true},
		{name: "negative is invalid", input: "-1", fallback: 50, wantErr: true},
		{name: "non-numeric is invalid", input: "abc", fallback: 50, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.ParseMaxResults(tt.input, tt.fallback)
			if tt.wantErr {
				if !errors.Is(err, storage.ErrInvalidMaxResults) {
					t.Errorf("ParseMaxResults(%q) error = %v, want ErrInvalidMaxResults", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMaxResults(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMaxResults(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeyValidation(t *testing.T) {
	keys := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"empty key", "", storage.ErrEmptyKey},
		{"path traversal", "staging/../secrets/key", storage.ErrInvalidKey},
		{"double dot in segment", "staging/..hidden/file.pdf", storage.ErrInvalidKey},
	}

	ctx := context.Background()

	for provider, cfg := range providers() {
		sys, err := storage.New(cfg, slog.Default())
		if err != nil {
			t.Fatalf("%s: New() error = %v", provider, err)
		}

		for _, tt := range keys {
			t.Run(provider+"/"+tt.name, func(t *testing.T) {
				if err := sys.Upload(ctx, tt.key, bytes.NewReader(nil), "application/pdf"); !errors.Is(err, tt.wantErr) {
					t.Errorf("Upload() error = %v, want %v", err, tt.wantErr)
				}
				if _, err := sys.Download(ctx, tt.key); !errors.Is(err, tt.wantErr) {
					t.Errorf("Download() error = %v, want %v", err, tt.wantErr)
				}
				if _, err := sys.Find(ctx, tt.key); !errors.Is(err, tt.wantErr) {
					t.Errorf("Find() error = %v, want %v", err, tt.wantErr)
				}
				if err := sys.Delete(ctx, tt.key); !errors.Is(err, tt.wantErr) {
					t.Errorf("Delete() error = %v, want %v", err, tt.wantErr)
				}
				if _, err := sys.Exists(ctx, tt.key); !errors.Is(err, tt.wantErr) {
					t.Errorf("Exists() error = %v, want %v", err, tt.wantErr)
				}
			})
		}
	}
}
