package prompts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/tenderboard/pkg/pagination"
	"github.com/JaimeStill/tenderboard/pkg/query"
	"github.com/JaimeStill/tenderboard/pkg/repository"
)

// returning matches scanPrompt's column order.
const returning = "RETURNING id, name, stage, instructions, description, active"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New returns the PostgreSQL-backed System.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Name", "Description", "Instructions")
	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	return r.one(ctx, r.db, byID(id))
}

// Instructions resolves what the next call for stage sends: the active
// override when one exists, the built-in text otherwise.
func (r *repo) Instructions(ctx context.Context, stage Stage) (string, error) {
	if _, err := ParseStage(string(stage)); err != nil {
		return "", err
	}

	q, args := query.NewBuilder(projection).
		WhereEquals("Stage", stage).
		WhereEquals("Active", true).
		BuildSingleOrNull()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Instructions(stage)
	case err != nil:
		return "", fmt.Errorf("load active prompt: %w", err)
	}

	r.logger.Debug("prompt override in effect", "stage", stage, "name", p.Name)
	return p.Instructions, nil
}

// Spec is never overridable; the response format is what the parsers in
// intake and analysis expect.
func (r *repo) Spec(_ context.Context, stage Stage) (string, error) {
	return Spec(stage)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Prompt, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	p, err := r.one(ctx, r.db, statement{
		sql: `INSERT INTO prompts (name, stage, instructions, description)
			VALUES ($1, $2, $3, $4) ` + returning,
		args: []any{cmd.Name, cmd.Stage, cmd.Instructions, cmd.Description},
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("prompt created", "id", p.ID, "name", p.Name, "stage", p.Stage)
	return p, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	p, err := r.one(ctx, r.db, statement{
		sql: `UPDATE prompts SET name = $1, stage = $2, instructions = $3, description = $4
			WHERE id = $5 ` + returning,
		args: []any{cmd.Name, cmd.Stage, cmd.Instructions, cmd.Description, id},
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("prompt updated", "id", p.ID, "name", p.Name)
	return p, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM prompts WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("prompt deleted", "id", id)
	return nil
}

// Activate clears the stage's current override and sets this one in a
// single transaction. The partial unique index on (stage) WHERE active
// rejects any interleaving that would leave two active.
func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Prompt, error) {
		target, err := r.one(ctx, tx, byID(id))
		if err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE prompts SET active = false WHERE stage = $1 AND active",
			target.Stage,
		); err != nil {
			return nil, fmt.Errorf("deactivate current: %w", err)
		}

		return r.one(ctx, tx, statement{
			sql:  "UPDATE prompts SET active = true WHERE id = $1 " + returning,
			args: []any{id},
		})
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("prompt activated", "id", p.ID, "name", p.Name, "stage", p.Stage)
	return p, nil
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	p, err := r.one(ctx, r.db, statement{
		sql:  "UPDATE prompts SET active = false WHERE id = $1 " + returning,
		args: []any{id},
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("prompt deactivated", "id", p.ID, "name", p.Name, "stage", p.Stage)
	return p, nil
}

type statement struct {
	sql  string
	args []any
}

func byID(id uuid.UUID) statement {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	return statement{sql: q, args: args}
}

// one runs a single-row statement and maps missing rows and name
// collisions to the domain errors.
func (r *repo) one(ctx context.Context, q repository.Querier, st statement) (*Prompt, error) {
	p, err := repository.QueryOne(ctx, q, st.sql, st.args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}
