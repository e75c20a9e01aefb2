package staging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/tenderboard/pkg/formatting"
	"github.com/JaimeStill/tenderboard/pkg/storage"
)

const defaultFilename = "documento"

type stager struct {
	store  storage.System
	logger *slog.Logger
	newID  func() uuid.UUID
}

// New creates a staging system backed by store.
func New(store storage.System, logger *slog.Logger) System {
	return &stager{
		store:  store,
		logger: logger.With("system", "staging"),
		newID:  uuid.New,
	}
}

func (s *stager) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

func (s *stager) Stage(ctx context.Context, cmd StageCommand) (*StoredFile, error) {
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidFile)
	}

	filename := formatting.SanitizeFilename(cmd.Filename)
	if filename == "" {
		filename = defaultFilename
	}

	contentType := detectContentType(cmd.ContentType, cmd.Data)
	key := buildStorageKey(s.newID(), filename)

	if err := s.store.Upload(ctx, key, bytes.NewReader(cmd.Data), contentType); err != nil {
		return nil, fmt.Errorf("upload staged file: %w", err)
	}

	f := &StoredFile{
		Key:         key,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   int64(len(cmd.Data)),
		PageCount:   pdfPageCount(s.logger, cmd.Data, contentType),
		SourceURL:   cmd.SourceURL,
	}

	s.logger.Info("file staged", "key", key, "size", f.SizeBytes, "content_type", contentType)
	return f, nil
}

func (s *stager) Open(ctx context.Context, key string) (*storage.BlobResult, error) {
	if !IsStagingKey(key) {
		return nil, ErrInvalidKey
	}

	blob, err := s.store.Download(ctx, key)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return blob, nil
}

func (s *stager) Read(ctx context.Context, key string) ([]byte, error) {
	if !IsStagingKey(key) {
		return nil, ErrInvalidKey
	}

	data, err := storage.ReadAll(ctx, s.store, key)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return data, nil
}

func (s *stager) Discard(ctx context.Context, key string) error {
	if !IsStagingKey(key) {
		return ErrInvalidKey
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return mapStorageError(err)
	}

	s.logger.Info("staged file discarded", "key", key)
	return nil
}

func mapStorageError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// buildStorageKey collapses ".." runs in filename since storage keys may
// not contain them.
func buildStorageKey(id uuid.UUID, filename string) string {
	for strings.Contains(filename, "..") {
		filename = strings.ReplaceAll(filename, "..", ".")
	}
	return fmt.Sprintf("%s%s/%s", KeyPrefix, id, url.PathEscape(filename))
}

// KeyFor rebuilds the storage key of a staged file from its id and
// filename segments.
func KeyFor(id uuid.UUID, filename string) string {
	return buildStorageKey(id, filename)
}

// detectContentType prefers a declared media type and falls back to
// sniffing when the declaration is absent or generic.
func detectContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			return mt
		}
	}

	sniffed := http.DetectContentType(data)
	if mt, _, err := mime.ParseMediaType(sniffed); err == nil {
		return mt
	}
	return sniffed
}

func pdfPageCount(logger *slog.Logger, data []byte, contentType string) *int {
	if contentType != "application/pdf" {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}
