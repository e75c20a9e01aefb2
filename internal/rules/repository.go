package rules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/tenderboard/pkg/repository"
)

// rowID is the key of the single rules row.
const rowID = 1

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a rules repository implementing System.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "rules"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Load(ctx context.Context) (*Rules, error) {
	q := "SELECT text, updated_at FROM rules WHERE id = $1"

	rules, err := repository.QueryOne(ctx, r.db, q, []any{rowID}, scanRules)
	if errors.Is(err, sql.ErrNoRows) {
		return &Rules{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return &rules, nil
}

func (r *repo) Save(ctx context.Context, cmd SaveCommand) (*Rules, error) {
	if len(cmd.Text) > MaxLength {
		return nil, ErrTooLong
	}

	q := `
		INSERT INTO rules (id, text, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			updated_at = EXCLUDED.updated_at
		RETURNING text, updated_at`

	rules, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Rules, error) {
		return repository.QueryOne(ctx, tx, q, []any{rowID, cmd.Text}, scanRules)
	})
	if err != nil {
		return nil, fmt.Errorf("save rules: %w", err)
	}

	r.logger.Info("rules saved", "length", len(rules.Text))
	return &rules, nil
}

func scanRules(s repository.Scanner) (Rules, error) {
	var (
		rules     Rules
		updatedAt sql.NullTime
	)
	if err := s.Scan(&rules.Text, &updatedAt); err != nil {
		return Rules{}, err
	}
	if updatedAt.Valid {
		rules.UpdatedAt = &updatedAt.Time
	}
	return rules, nil
}
