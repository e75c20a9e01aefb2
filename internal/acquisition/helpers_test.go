package acquisition_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// relay is a fake CORS relay. It unwraps the url query parameter and hands
// the target to serve.
type relay struct {
	server *httptest.Server
	hits   atomic.Int32
}

func newRelay(t *testing.T, serve func(w http.ResponseWriter, r *http.Request, target string)) *relay {
	t.Helper()
	rl := &relay{}
	rl.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rl.hits.Add(1)
		serve(w, r, r.URL.Query().Get("url"))
	}))
	t.Cleanup(rl.server.Close)
	return rl
}

func (rl *relay) prefix() string {
	return rl.server.URL + "/raw?url="
}

func testConfig(t *testing.T, relays ...*relay) *acquisition.Config {
	t.Helper()
	cfg := &acquisition.Config{AttemptTimeout: "2s"}
	for _, rl := range relays {
		cfg.Relays = append(cfg.Relays, rl.prefix())
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return cfg
}

func pdfPayload(n int) []byte {
	body := make([]byte, n)
	copy(body, "%PDF-1.4\n")
	for i := 9; i < n; i++ {
		body[i] = 'x'
	}
	return body
}
