package database

import (
	"context"
	"database/sql"
)

// Runner is the read/write surface shared by *sql.DB and *sql.Tx, so repository
// methods can run inside or outside a unit of work with the same code path.
type Runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx groups a read and its subsequent write into one transaction when enabled.
// When disabled (single-node deployments), fn runs directly against the pool and
// each statement commits on its own. The transaction is always closed: rolled back
// on error, committed otherwise.
func WithTx(ctx context.Context, db *sql.DB, enabled bool, fn func(run Runner) error) error {
	if !enabled {
		return fn(db)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
