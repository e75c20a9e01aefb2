package api

import (
	"github.com/JaimeStill/tenderboard/internal/acquisition"
	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/internal/config"
	"github.com/JaimeStill/tenderboard/internal/infrastructure"
	"github.com/JaimeStill/tenderboard/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	Acquisition acquisition.Config
	Analysis    analysis.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination:  cfg.API.Pagination,
		Acquisition: cfg.Acquisition,
		Analysis:    cfg.Analysis,
	}
}
