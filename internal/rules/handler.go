package rules

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/tenderboard/pkg/handlers"
	"github.com/JaimeStill/tenderboard/pkg/routes"
)

// Handler provides HTTP endpoints for the rules block.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "rules"),
	}
}

// Routes returns the route group for rules endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/rules",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Load},
			{Method: "PUT", Pattern: "", Handler: h.Save},
		},
	}
}

// Load returns the current rules.
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	rules, err := h.sys.Load(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, rules)
}

// Save replaces the rules text from a SaveCommand JSON body.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[SaveCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rules, err := h.sys.Save(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, rules)
}
