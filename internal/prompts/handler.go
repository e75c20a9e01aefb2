package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/tenderboard/pkg/handlers"
	"github.com/JaimeStill/tenderboard/pkg/pagination"
	"github.com/JaimeStill/tenderboard/pkg/routes"
)

// Handler exposes prompt overrides under /prompts so operators can tune the
// extraction and analysis instructions without a redeploy.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest is the body of POST /prompts/search.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// StageContent is what the next service call for Stage will send: the
// active override's instructions, or the built-in ones, plus the fixed
// response format.
type StageContent struct {
	Stage        Stage  `json:"stage"`
	Instructions string `json:"instructions"`
	Spec         string `json:"spec"`
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "prompts"),
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/prompts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/stages", Handler: h.Stages},
			{Method: "GET", Pattern: "/stages/{stage}", Handler: h.Effective},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "POST", Pattern: "/{id}/activate", Handler: h.Activate},
			{Method: "POST", Pattern: "/{id}/deactivate", Handler: h.Deactivate},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.page(w, r, pagination.PageRequestFromQuery(q, h.pagination), FiltersFromQuery(q))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[SearchRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	req.PageRequest.Normalize(h.pagination)
	h.page(w, r, req.PageRequest, req.Filters)
}

func (h *Handler) Stages(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Stages())
}

// Effective reports the prompt text a stage currently resolves to.
func (h *Handler) Effective(w http.ResponseWriter, r *http.Request) {
	stage, err := ParseStage(r.PathValue("stage"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	content, err := h.effective(r.Context(), stage)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, content)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, http.StatusOK, func(ctx context.Context, id uuid.UUID) (any, error) {
		return h.sys.Find(ctx, id)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[CreateCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	p, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, http.StatusOK, func(ctx context.Context, id uuid.UUID) (any, error) {
		cmd, err := handlers.DecodeJSON[UpdateCommand](r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return h.sys.Update(ctx, id, cmd)
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, http.StatusNoContent, func(ctx context.Context, id uuid.UUID) (any, error) {
		return nil, h.sys.Delete(ctx, id)
	})
}

// Activate makes the prompt its stage's override. Any other active prompt
// for the stage is deactivated in the same transaction.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, http.StatusOK, func(ctx context.Context, id uuid.UUID) (any, error) {
		return h.sys.Activate(ctx, id)
	})
}

// Deactivate returns the prompt's stage to its built-in instructions.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.byID(w, r, http.StatusOK, func(ctx context.Context, id uuid.UUID) (any, error) {
		return h.sys.Deactivate(ctx, id)
	})
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, page pagination.PageRequest, filters Filters) {
	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) effective(ctx context.Context, stage Stage) (StageContent, error) {
	instructions, err := h.sys.Instructions(ctx, stage)
	if err != nil {
		return StageContent{}, err
	}
	spec, err := h.sys.Spec(ctx, stage)
	if err != nil {
		return StageContent{}, err
	}
	return StageContent{Stage: stage, Instructions: instructions, Spec: spec}, nil
}

// byID parses the {id} path value, runs fn and writes its result with
// status. A malformed id can never match a row, so it is reported as
// ErrNotFound with 400.
func (h *Handler) byID(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	fn func(context.Context, uuid.UUID) (any, error),
) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	result, err := fn(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	handlers.RespondJSON(w, status, result)
}
