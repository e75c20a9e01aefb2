package staging

import (
	"context"

	"github.com/JaimeStill/tenderboard/pkg/storage"
)

// System defines the staging contract.
type System interface {
	// Handler returns the HTTP handler with the given multipart upload limit.
	Handler(maxUploadSize int64) *Handler

	// Stage uploads a document and returns its description. PDFs get a page count.
	Stage(ctx context.Context, cmd StageCommand) (*StoredFile, error)
	// Open streams a staged document. The caller must close the body.
	Open(ctx context.Context, key string) (*storage.BlobResult, error)
	// Read loads a staged document into memory.
	Read(ctx context.Context, key string) ([]byte, error)
	// Discard deletes a staged document.
	Discard(ctx context.Context, key string) error
}
