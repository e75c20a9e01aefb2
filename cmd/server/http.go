package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/JaimeStill/tenderboard/internal/config"
	"github.com/JaimeStill/tenderboard/pkg/lifecycle"
)

// httpServer binds the listener during Start so a port conflict fails
// startup instead of surfacing later in a log line.
type httpServer struct {
	srv     *http.Server
	logger  *slog.Logger
	drainBy time.Duration
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	return &httpServer{
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeoutDuration(),
			ReadHeaderTimeout: cfg.ReadHeaderTimeoutDuration(),
			WriteTimeout:      cfg.WriteTimeoutDuration(),
			IdleTimeout:       cfg.IdleTimeoutDuration(),
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger:  logger.With("system", "http"),
		drainBy: cfg.ShutdownTimeoutDuration(),
	}
}

func (s *httpServer) Start(lc *lifecycle.Coordinator) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}

	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve failed", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.drain()
	})
	return nil
}

// drain stops accepting connections and waits for in-flight requests, such
// as a running analysis, up to the configured shutdown timeout.
func (s *httpServer) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), s.drainBy)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("drain incomplete", "error", err)
		return
	}
	s.logger.Info("http drained")
}
