package rules_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/tenderboard/internal/rules"
	"github.com/JaimeStill/tenderboard/pkg/routes"
)

type mockSystem struct {
	loadFn func(ctx context.Context) (*rules.Rules, error)
	saveFn func(ctx context.Context, cmd rules.SaveCommand) (*rules.Rules, error)
}

func (m *mockSystem) Handler() *rules.Handler {
	return rules.NewHandler(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (m *mockSystem) Load(ctx context.Context) (*rules.Rules, error) {
	return m.loadFn(ctx)
}

func (m *mockSystem) Save(ctx context.Context, cmd rules.SaveCommand) (*rules.Rules, error) {
	return m.saveFn(ctx, cmd)
}

func setupMux(sys *mockSystem) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestHandlerLoad(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	sys := &mockSystem{
		loadFn: func(context.Context) (*rules.Rules, error) {
			return &rules.Rules{Text: "Descartar obras civiles.", UpdatedAt: &now}, nil
		},
	}

	rec := httptest.NewRecorder()
	setupMux(sys).ServeHTTP(rec, httptest.NewRequest("GET", "/rules", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got rules.Rules
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Text != "Descartar obras civiles." {
		t.Errorf("text = %q", got.Text)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.Equal(now) {
		t.Errorf("updated_at = %v, want %v", got.UpdatedAt, now)
	}
}

func TestHandlerSave(t *testing.T) {
	t.Run("saves text", func(t *testing.T) {
		var captured rules.SaveCommand
		sys := &mockSystem{
			saveFn: func(_ context.Context, cmd rules.SaveCommand) (*rules.Rules, error) {
				captured = cmd
				return &rules.Rules{Text: cmd.Text}, nil
			},
		}

		body := strings.NewReader(`{"text":"Solo software."}`)
		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("PUT", "/rules", body))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.Text != "Solo software." {
			t.Errorf("captured = %q", captured.Text)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		sys := &mockSystem{}
		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("PUT", "/rules", strings.NewReader("{")))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("too long", func(t *testing.T) {
		sys := &mockSystem{
			saveFn: func(context.Context, rules.SaveCommand) (*rules.Rules, error) {
				return nil, rules.ErrTooLong
			},
		}
		rec := httptest.NewRecorder()
		setupMux(sys).ServeHTTP(rec, httptest.NewRequest("PUT", "/rules", strings.NewReader(`{"text":"x"}`)))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	if got := rules.MapHTTPStatus(rules.ErrTooLong); got != http.StatusBadRequest {
		t.Errorf("ErrTooLong = %d", got)
	}
	if got := rules.MapHTTPStatus(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("other = %d", got)
	}
}
