package intake

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/tenderboard/pkg/handlers"
	"github.com/JaimeStill/tenderboard/pkg/routes"
)

// Handler provides HTTP endpoints for intake and acquisition diagnostics.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// ScrapeRequest names the tender page to scrape.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "intake"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the intake and acquisition route groups.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/intake",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: h.Intake},
				},
			},
			{
				Prefix: "/acquisition",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/scrape", Handler: h.Scrape},
				},
			},
		},
	}
}

// Intake accepts a multipart form with a "summary" file and an optional
// "tender_page_url" field and returns the populated Draft.
func (h *Handler) Intake(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrTooLarge)
		return
	}

	file, header, err := r.FormFile("summary")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoSummary)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoSummary)
		return
	}

	draft, err := h.sys.Intake(r.Context(), Request{
		Filename:      header.Filename,
		ContentType:   header.Header.Get("Content-Type"),
		Data:          data,
		TenderPageURL: r.FormValue("tender_page_url"),
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, draft)
}

// Scrape returns the document links guessed from a tender page.
func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[ScrapeRequest](r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	links, err := h.sys.Scrape(r.Context(), req.URL)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, links)
}
