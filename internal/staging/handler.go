package staging

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/tenderboard/pkg/handlers"
	"github.com/JaimeStill/tenderboard/pkg/routes"
)

const uploadConcurrency = 4

// Handler provides HTTP endpoints for staged files.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "staging"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for staging endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/staging",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Upload},
			{Method: "GET", Pattern: "/{id}/{name}", Handler: h.Download},
			{Method: "DELETE", Pattern: "/{id}/{name}", Handler: h.Discard},
		},
	}
}

// Upload stages every file of a multipart form under the "files" field.
// Each file succeeds or fails independently.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	results := make([]BatchResult, len(headers))

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(uploadConcurrency)

	for i, fh := range headers {
		g.Go(func() error {
			results[i] = BatchResult{Filename: fh.Filename}

			data, err := readPart(fh)
			if err != nil {
				results[i].Error = ErrInvalidFile.Error()
				return nil
			}

			f, err := h.sys.Stage(ctx, StageCommand{
				Data:        data,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
			})
			if err != nil {
				h.logger.Warn("stage failed", "filename", fh.Filename, "error", err)
				results[i].Error = err.Error()
				return nil
			}

			results[i].File = f
			return nil
		})
	}

	g.Wait()

	handlers.RespondJSON(w, http.StatusCreated, results)
}

// Download streams a staged file.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	key, ok := h.key(w, r)
	if !ok {
		return
	}

	blob, err := h.sys.Open(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.Header().Set("Content-Disposition", handlers.Disposition("inline", r.PathValue("name")))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, blob.Body)
}

// Discard deletes a staged file.
func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	key, ok := h.key(w, r)
	if !ok {
		return
	}

	if err := h.sys.Discard(r.Context(), key); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) key(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidKey)
		return "", false
	}
	return KeyFor(id, r.PathValue("name")), true
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
