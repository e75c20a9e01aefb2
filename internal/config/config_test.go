package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/tenderboard/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
port = 8080

[database]
name = "tenderboard"
user = "tenderboard"
password = "tenderboard"

[storage]
provider = "minio"
container_name = "tenders"
endpoint = "localhost:9000"
access_key = "minio"
secret_key = "minio123"

[api]
base_path = "/api"
max_upload_size = "20MB"

[api.pagination]
default_page_size = 25
max_page_size = 50

[log]
level = "debug"
format = "json"

[acquisition]
attempt_timeout = "10s"
batch_size = 4

[analysis]
model = "claude-sonnet-4-5"
`

const overlayConfig = `
[server]
port = 9090

[acquisition]
batch_size = 2

[log]
format = "text"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "tenderboard" {
		t.Errorf("database name: got %q", cfg.Database.Name)
	}
	if cfg.Storage.Provider != "minio" || cfg.Storage.Endpoint != "localhost:9000" {
		t.Errorf("storage: got %+v", cfg.Storage)
	}
	if cfg.API.MaxUploadSizeBytes() != 20*1024*1024 {
		t.Errorf("max upload: got %d", cfg.API.MaxUploadSizeBytes())
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("page size: got %d", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log: got %+v", cfg.Log)
	}
	if cfg.Acquisition.AttemptTimeoutDuration() != 10*time.Second {
		t.Errorf("attempt timeout: got %s", cfg.Acquisition.AttemptTimeoutDuration())
	}
	if len(cfg.Acquisition.Relays) == 0 {
		t.Error("acquisition relays should default")
	}
	if cfg.Analysis.Model != "claude-sonnet-4-5" {
		t.Errorf("analysis model: got %q", cfg.Analysis.Model)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout: got %s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv(config.EnvTenderboardEnv, "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "prod" {
		t.Errorf("env: got %q", cfg.Env())
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Acquisition.BatchSize != 2 {
		t.Errorf("batch size: got %d, want overlay 2", cfg.Acquisition.BatchSize)
	}
	if cfg.Log.Format != "text" || cfg.Log.Level != "debug" {
		t.Errorf("log: got %+v", cfg.Log)
	}
	if cfg.Database.Name != "tenderboard" {
		t.Errorf("database name lost in merge: %q", cfg.Database.Name)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	chdir(t, dir)

	t.Setenv("TENDERBOARD_SERVER_PORT", "7070")
	t.Setenv("TENDERBOARD_DB_HOST", "db.internal")
	t.Setenv("TENDERBOARD_STORAGE_PROVIDER", "azure")
	t.Setenv("TENDERBOARD_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
	t.Setenv("TENDERBOARD_LOG_LEVEL", "warn")
	t.Setenv("TENDERBOARD_ACQUISITION_BATCH_SIZE", "8")
	t.Setenv("TENDERBOARD_ANALYSIS_API_KEY", "sk-test")
	t.Setenv("TENDERBOARD_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("server port: got %d", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host: got %q", cfg.Database.Host)
	}
	if cfg.Storage.Provider != "azure" {
		t.Errorf("storage provider: got %q", cfg.Storage.Provider)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level: got %q", cfg.Log.Level)
	}
	if cfg.Acquisition.BatchSize != 8 {
		t.Errorf("batch size: got %d", cfg.Acquisition.BatchSize)
	}
	if cfg.Analysis.APIKey != "sk-test" {
		t.Errorf("api key not applied")
	}
	if cfg.ShutdownTimeoutDuration() != 5*time.Second {
		t.Errorf("shutdown timeout: got %s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad shutdown timeout", map[string]string{"TENDERBOARD_SHUTDOWN_TIMEOUT": "soon"}},
		{"bad log level", map[string]string{"TENDERBOARD_LOG_LEVEL": "trace"}},
		{"bad storage provider", map[string]string{"TENDERBOARD_STORAGE_PROVIDER": "s3"}},
		{"bad attempt timeout", map[string]string{"TENDERBOARD_ACQUISITION_ATTEMPT_TIMEOUT": "fast"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, baseConfig)
			chdir(t, dir)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := config.Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TENDERBOARD_DB_NAME", "tb")
	t.Setenv("TENDERBOARD_DB_USER", "tb")
	t.Setenv("TENDERBOARD_STORAGE_ENDPOINT", "localhost:9000")
	t.Setenv("TENDERBOARD_STORAGE_ACCESS_KEY", "a")
	t.Setenv("TENDERBOARD_STORAGE_SECRET_KEY", "b")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.API.BasePath != "/api" {
		t.Errorf("defaults not applied: %+v", cfg.Server)
	}
	if cfg.Acquisition.BatchSize != 4 {
		t.Errorf("batch size default: got %d", cfg.Acquisition.BatchSize)
	}
}

func TestServerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := config.ServerConfig{}
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Addr() != "0.0.0.0:8080" {
			t.Errorf("addr: got %s", cfg.Addr())
		}
		if cfg.ReadHeaderTimeoutDuration() != 10*time.Second {
			t.Errorf("read_header_timeout: got %s", cfg.ReadHeaderTimeoutDuration())
		}
		if cfg.WriteTimeoutDuration() != 15*time.Minute {
			t.Errorf("write_timeout: got %s", cfg.WriteTimeoutDuration())
		}
	})

	t.Run("merge keeps unset fields", func(t *testing.T) {
		cfg := config.ServerConfig{Port: 8080, IdleTimeout: "2m", WriteTimeout: "15m"}
		cfg.Merge(&config.ServerConfig{IdleTimeout: "5m"})

		if cfg.IdleTimeout != "5m" || cfg.WriteTimeout != "15m" || cfg.Port != 8080 {
			t.Errorf("merge: got %+v", cfg)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv(config.EnvServerPort, "9000")
		t.Setenv(config.EnvServerIdleTimeout, "45s")

		cfg := config.ServerConfig{}
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.Port != 9000 || cfg.IdleTimeoutDuration() != 45*time.Second {
			t.Errorf("env: got port %d idle %s", cfg.Port, cfg.IdleTimeoutDuration())
		}
	})

	t.Run("invalid duration", func(t *testing.T) {
		cfg := config.ServerConfig{ReadHeaderTimeout: "soon"}
		if err := cfg.Finalize(); err == nil {
			t.Fatal("expected error for invalid read_header_timeout")
		}
	})
}
