// Package database owns the PostgreSQL pool behind the tender, prompt and
// rules stores, and the migrator that shapes its schema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/tenderboard/pkg/lifecycle"
)

// System is the pool plus its readiness flag.
type System interface {
	Connection() *sql.DB
	// Start hooks the startup ping and the shutdown close into lc.
	Start(lc *lifecycle.Coordinator) error
	// Ready is false until the startup ping succeeds and after shutdown.
	Ready() bool
}

type database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
	ready       atomic.Bool
}

// New opens the pool without dialing. The first connection is made by the
// startup ping.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	d := &database{
		conn:        conn,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}
	return d, nil
}

func (d *database) Connection() *sql.DB { return d.conn }

func (d *database) Ready() bool { return d.ready.Load() }

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.Track("database", d)
	lc.OnStartup(func() { d.ping(lc.Context()) })
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.close()
	})

	d.logger.Info("database hooks registered", "timeout", d.connTimeout)
	return nil
}

func (d *database) ping(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, d.connTimeout)
	defer cancel()

	start := time.Now()
	if err := d.conn.PingContext(ctx); err != nil {
		d.logger.Error("ping failed", "error", fmt.Errorf("%w: %w", ErrNotReady, err))
		return
	}

	d.ready.Store(true)
	d.logger.Info("database ready", "elapsed", time.Since(start))
}

func (d *database) close() {
	d.ready.Store(false)
	if err := d.conn.Close(); err != nil {
		d.logger.Error("close failed", "error", err)
		return
	}
	d.logger.Info("database closed")
}
