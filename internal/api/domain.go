package api

import (
	"github.com/JaimeStill/tenderboard/internal/acquisition"
	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/internal/intake"
	"github.com/JaimeStill/tenderboard/internal/prompts"
	"github.com/JaimeStill/tenderboard/internal/rules"
	"github.com/JaimeStill/tenderboard/internal/staging"
	"github.com/JaimeStill/tenderboard/internal/tenders"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Acquisition acquisition.System
	Analysis    analysis.System
	Intake      intake.System
	Prompts     prompts.System
	Rules       rules.System
	Staging     staging.System
	Tenders     tenders.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	promptsSystem := prompts.New(db, runtime.Logger, runtime.Pagination)
	rulesSystem := rules.New(db, runtime.Logger)
	stagingSystem := staging.New(runtime.Storage, runtime.Logger)

	acquisitionSystem := acquisition.New(&runtime.Acquisition, nil, runtime.Logger)
	analysisSystem := analysis.New(
		analysis.NewAnthropic(&runtime.Analysis, runtime.Logger),
		promptsSystem,
		runtime.Logger,
	)

	tendersSystem := tenders.New(
		db,
		stagingSystem,
		rulesSystem,
		analysisSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	intakeSystem := intake.New(
		acquisitionSystem,
		analysisSystem,
		stagingSystem,
		runtime.Logger,
	)

	return &Domain{
		Acquisition: acquisitionSystem,
		Analysis:    analysisSystem,
		Intake:      intakeSystem,
		Prompts:     promptsSystem,
		Rules:       rulesSystem,
		Staging:     stagingSystem,
		Tenders:     tendersSystem,
	}
}
