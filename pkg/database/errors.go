package database

import "errors"

var (
	// ErrNotReady is logged when the startup ping fails. The pool stays
	// open so a later request can still succeed once PostgreSQL is up.
	ErrNotReady = errors.New("database not ready")

	// ErrDirtySchema means a previous migration failed halfway. The
	// version must be forced before migrating again.
	ErrDirtySchema = errors.New("schema is dirty")
)
