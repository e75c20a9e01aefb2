package api

import (
	"net/http"

	"github.com/JaimeStill/tenderboard/pkg/handlers"
	"github.com/JaimeStill/tenderboard/pkg/lifecycle"
	"github.com/JaimeStill/tenderboard/pkg/routes"
)

// Status reports service readiness per tracked subsystem.
type Status struct {
	Ready      bool            `json:"ready"`
	Version    string          `json:"version"`
	Subsystems map[string]bool `json:"subsystems"`
}

type statusHandler struct {
	lc      *lifecycle.Coordinator
	version string
}

func newStatusHandler(lc *lifecycle.Coordinator, version string) *statusHandler {
	return &statusHandler{lc: lc, version: version}
}

func (h *statusHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/status",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.status},
		},
	}
}

func (h *statusHandler) status(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Status{
		Ready:      h.lc.Ready(),
		Version:    h.version,
		Subsystems: h.lc.Status(),
	})
}
