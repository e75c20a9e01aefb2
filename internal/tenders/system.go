package tenders

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/tenderboard/internal/staging"
	"github.com/JaimeStill/tenderboard/pkg/pagination"
	"github.com/JaimeStill/tenderboard/pkg/storage"
)

// System defines the public contract for tender domain operations.
// Tenders are never deleted; archival is a status.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Tender], error)

	Find(ctx context.Context, id uuid.UUID) (*Tender, error)
	Create(ctx context.Context, cmd CreateCommand) (*Tender, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Tender, error)

	// Analyze runs the feasibility analysis over the tender's documents and
	// the current rules, attaches the report and moves the tender to the
	// status its decision implies.
	Analyze(ctx context.Context, id uuid.UUID) (*Tender, error)

	// OpenFile streams the document in slot. The caller must close the body.
	OpenFile(ctx context.Context, id uuid.UUID, slot Slot) (*staging.StoredFile, *storage.BlobResult, error)
}
