// Package module mounts self-contained HTTP sub-applications under
// single-segment path prefixes such as /api. Each module carries its own
// middleware stack, so the API can log and recover without affecting the
// probes served by the root mux.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/tenderboard/pkg/middleware"
)

// Module strips its prefix from the request path and hands the request to
// its inner router through the module's middleware.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New panics unless prefix is a single segment with a leading slash.
// Prefixes are fixed at startup, so a bad one is a programming error.
func New(prefix string, router http.Handler) *Module {
	if err := checkPrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{prefix: prefix, router: router, middleware: middleware.New()}
}

func (m *Module) Prefix() string { return m.prefix }

// Use appends mw to the module's stack. The first added runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler is the inner router wrapped in the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Serve dispatches req with the prefix removed. A request for the bare
// prefix arrives at the inner router as "/".
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	inner := strings.TrimPrefix(req.URL.Path, m.prefix)
	if inner == "" {
		inner = "/"
	}
	m.Handler().ServeHTTP(w, withPath(req, inner))
}

// withPath shallow-copies req with a new URL path, leaving the caller's
// request untouched.
func withPath(req *http.Request, path string) *http.Request {
	u := *req.URL
	u.Path = path
	u.RawPath = ""

	r := new(http.Request)
	*r = *req
	r.URL = &u
	return r
}

func checkPrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case prefix[0] != '/':
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Contains(prefix[1:], "/"):
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
