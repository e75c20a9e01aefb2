package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
)

// Migrator applies versioned SQL migrations from an fs.FS.
type Migrator struct {
	m      *migrate.Migrate
	logger *slog.Logger
}

// NewMigrator opens a migrator over the *.sql files in dir of source.
func NewMigrator(cfg *Config, source fs.FS, dir string, logger *slog.Logger) (*Migrator, error) {
	src, err := iofs.New(source, dir)
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return &Migrator{
		m:      m,
		logger: logger.With("component", "migrator"),
	}, nil
}

// Up applies all pending migrations. A schema already at head is not an
// error; a dirty schema is.
func (mg *Migrator) Up() error {
	if _, dirty, err := mg.Version(); err != nil {
		return fmt.Errorf("read version: %w", err)
	} else if dirty {
		return ErrDirtySchema
	}
	return mg.run("up", mg.m.Up)
}

// Down reverts all applied migrations.
func (mg *Migrator) Down() error {
	return mg.run("down", mg.m.Down)
}

// Steps applies n migrations forward, or -n backward when negative.
func (mg *Migrator) Steps(n int) error {
	return mg.run(fmt.Sprintf("steps %d", n), func() error { return mg.m.Steps(n) })
}

// Force sets the schema version without running migrations.
func (mg *Migrator) Force(version int) error {
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	mg.logger.Warn("schema version forced", "version", version)
	return nil
}

// Version returns the current schema version and dirty flag.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) run(op string, fn func() error) error {
	if err := fn(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.logger.Info("schema unchanged", "op", op)
			return nil
		}
		return fmt.Errorf("migrate %s: %w", op, err)
	}

	v, _, _ := mg.Version()
	mg.logger.Info("migrations applied", "op", op, "version", v)
	return nil
}
