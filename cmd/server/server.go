package main

import (
	"time"

	"github.com/JaimeStill/tenderboard/internal/config"
	"github.com/JaimeStill/tenderboard/internal/infrastructure"
)

// Server ties the shared infrastructure, the mounted modules and the HTTP
// listener to one lifecycle.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info("tenderboard initialized",
		"addr", cfg.Server.Addr(),
		"env", cfg.Env(),
		"version", cfg.Version,
		"storage", cfg.Storage.Provider,
		"relays", len(cfg.Acquisition.Relays),
		"modules", router.Prefixes(),
	)

	s := &Server{infra: infra, modules: modules}
	s.http = newHTTPServer(&cfg.Server, router, infra.Logger)
	return s, nil
}

// Start returns once the listener is bound. Database and storage keep
// connecting in the background; /readyz turns 200 when they are done.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready", "status", s.infra.Lifecycle.Status())
	}()
	return nil
}

// Shutdown cancels the lifecycle context and waits up to timeout for every
// shutdown hook, HTTP drain included.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("shutting down", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
