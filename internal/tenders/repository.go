package tenders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/internal/rules"
	"github.com/JaimeStill/tenderboard/internal/staging"
	"github.com/JaimeStill/tenderboard/pkg/pagination"
	"github.com/JaimeStill/tenderboard/pkg/query"
	"github.com/JaimeStill/tenderboard/pkg/repository"
	"github.com/JaimeStill/tenderboard/pkg/storage"
)

type repo struct {
	db         *sql.DB
	staging    staging.System
	rules      rules.System
	analysis   analysis.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a tender repository implementing the System interface.
func New(
	db *sql.DB,
	staging staging.System,
	rules rules.System,
	analysis analysis.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		staging:    staging,
		rules:      rules,
		analysis:   analysis,
		logger:     logger.With("system", "tenders"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Tender], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Budget", "ScoringSystem")

	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanTender)
	if err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Tender, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTender)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Tender, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO tenders (
			name, budget, scoring_system, tender_page_url, admin_url, tech_url,
			summary_file, admin_file, tech_file, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		` + returning

	args := []any{
		cmd.Name,
		cmd.Budget,
		cmd.ScoringSystem,
		cmd.TenderPageURL,
		cmd.AdminURL,
		cmd.TechURL,
		repository.JSON[staging.StoredFile]{V: cmd.SummaryFile},
		repository.JSON[staging.StoredFile]{V: cmd.AdminFile},
		repository.JSON[staging.StoredFile]{V: cmd.TechFile},
		string(StatusPending),
	}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Tender, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTender)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tender created", "id", t.ID, "name", t.Name)
	return &t, nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Tender, error) {
	status, err := ParseStatus(string(status))
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE tenders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		` + returning

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Tender, error) {
		return repository.QueryOne(ctx, tx, q, []any{string(status), id}, scanTender)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tender status changed", "id", id, "status", status)
	return &t, nil
}

func (r *repo) Analyze(ctx context.Context, id uuid.UUID) (*Tender, error) {
	t, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	req := analysis.AnalyzeRequest{
		Metadata: analysis.Metadata{
			Name:          t.Name,
			Budget:        t.Budget,
			ScoringSystem: t.ScoringSystem,
			SourceURL:     t.TenderPageURL,
		},
	}

	docs := map[Slot]**analysis.Document{
		SlotSummary: &req.Summary,
		SlotAdmin:   &req.Admin,
		SlotTech:    &req.Tech,
	}
	for slot, dst := range docs {
		doc, err := r.document(ctx, t, slot)
		if err != nil {
			return nil, err
		}
		*dst = doc
	}

	rs, err := r.rules.Load(ctx)
	if err != nil {
		return nil, err
	}
	req.Rules = rs.Text

	report, err := r.analysis.Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysis, err)
	}

	status := StatusFromDecision(report.Decision)

	q := `
		UPDATE tenders
		SET report = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		` + returning

	args := []any{repository.JSON[analysis.Report]{V: report}, string(status), id}

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Tender, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTender)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("tender analyzed",
		"id", id,
		"decision", report.Decision,
		"status", status,
	)
	return &updated, nil
}

func (r *repo) OpenFile(ctx context.Context, id uuid.UUID, slot Slot) (*staging.StoredFile, *storage.BlobResult, error) {
	t, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	f := t.File(slot)
	if f == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoFile, slot)
	}

	blob, err := r.staging.Open(ctx, f.Key)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s file: %w", slot, err)
	}
	return f, blob, nil
}

// document loads the file in slot for analysis. A missing slot yields nil;
// a slot whose blob has vanished is logged and skipped.
func (r *repo) document(ctx context.Context, t *Tender, slot Slot) (*analysis.Document, error) {
	f := t.File(slot)
	if f == nil {
		return nil, nil
	}

	data, err := r.staging.Read(ctx, f.Key)
	if err != nil {
		if errors.Is(err, staging.ErrNotFound) {
			r.logger.Warn("tender document missing", "id", t.ID, "slot", slot, "key", f.Key)
			return nil, nil
		}
		return nil, fmt.Errorf("read %s file: %w", slot, err)
	}

	return &analysis.Document{
		Label:       slotLabels[slot],
		Name:        f.Filename,
		ContentType: f.ContentType,
		Data:        data,
	}, nil
}
