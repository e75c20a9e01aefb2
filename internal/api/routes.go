package api

import (
	"net/http"

	"github.com/JaimeStill/tenderboard/internal/config"
	"github.com/JaimeStill/tenderboard/pkg/openapi"
	"github.com/JaimeStill/tenderboard/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	maxUpload := cfg.API.MaxUploadSizeBytes()

	groups := []routes.Group{
		domain.Tenders.Handler().Routes(),
		domain.Intake.Handler(maxUpload).Routes(),
		domain.Staging.Handler(maxUpload).Routes(),
		domain.Rules.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
		newStorageHandler(runtime.Storage, runtime.Logger, cfg.Storage.MaxListSize).routes(),
		newStatusHandler(runtime.Lifecycle, cfg.Version).routes(),
	}

	spec, err := buildSpec(cfg, groups...)
	if err != nil {
		return err
	}

	routes.Register(mux, groups...)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
	return nil
}
