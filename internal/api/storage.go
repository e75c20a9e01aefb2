package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/JaimeStill/tenderboard/pkg/handlers"
	"github.com/JaimeStill/tenderboard/pkg/routes"
	"github.com/JaimeStill/tenderboard/pkg/storage"
)

// storageHandler lets operators browse the blob store directly, for
// example to find a staged document whose draft was abandoned. It never
// writes.
type storageHandler struct {
	store       storage.System
	logger      *slog.Logger
	maxListSize int32
}

func newStorageHandler(store storage.System, logger *slog.Logger, maxListSize int32) *storageHandler {
	return &storageHandler{store: store, logger: logger.With("handler", "storage"), maxListSize: maxListSize}
}

func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/storage",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.list},
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.download},
			{Method: "GET", Pattern: "/{key...}", Handler: h.find},
		},
	}
}

// list pages through keys under ?prefix=, resuming from ?marker=.
func (h *storageHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := storage.ParseMaxResults(q.Get("max_results"), h.maxListSize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page, err := h.store.List(r.Context(), q.Get("prefix"), q.Get("marker"), limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, page)
}

func (h *storageHandler) find(w http.ResponseWriter, r *http.Request) {
	meta, err := h.store.Find(r.Context(), r.PathValue("key"))
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, meta)
}

func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	blob, err := h.store.Download(r.Context(), key)
	if err != nil {
		h.fail(w, err)
		return
	}
	defer blob.Body.Close()

	hdr := w.Header()
	hdr.Set("Content-Type", blob.ContentType)
	hdr.Set("Content-Disposition", handlers.Disposition("attachment", blobFilename(key)))
	if blob.ContentLength > 0 {
		hdr.Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}

	w.WriteHeader(http.StatusOK)
	if n, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Error("blob stream interrupted", "key", key, "written", n, "error", err)
	}
}

func (h *storageHandler) fail(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
}

// blobFilename is the last key segment, unescaped. Staging escapes the
// original filename when it builds the key.
func blobFilename(key string) string {
	base := path.Base(key)
	if name, err := url.PathUnescape(base); err == nil {
		return name
	}
	return base
}
