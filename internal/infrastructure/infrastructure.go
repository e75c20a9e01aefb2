// Package infrastructure builds the shared systems every tenderboard
// domain needs: the lifecycle coordinator, the logger, the PostgreSQL pool
// and the blob store holding tender documents.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/tenderboard/internal/config"
	"github.com/JaimeStill/tenderboard/pkg/database"
	"github.com/JaimeStill/tenderboard/pkg/lifecycle"
	"github.com/JaimeStill/tenderboard/pkg/logger"
	"github.com/JaimeStill/tenderboard/pkg/storage"
)

type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New constructs the systems without touching the network. Connections
// are made by the startup hooks Start registers.
func New(cfg *config.Config) (*Infrastructure, error) {
	log := logger.New(&cfg.Log, nil)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    log,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers each system's startup and shutdown hooks with the
// coordinator. The first registration error aborts.
func (i *Infrastructure) Start() error {
	systems := []struct {
		name  string
		start func(*lifecycle.Coordinator) error
	}{
		{"database", i.Database.Start},
		{"storage", i.Storage.Start},
	}

	for _, s := range systems {
		if err := s.start(i.Lifecycle); err != nil {
			return fmt.Errorf("%s start failed: %w", s.name, err)
		}
	}
	return nil
}
