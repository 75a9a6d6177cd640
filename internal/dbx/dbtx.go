// Package dbx holds the small database plumbing shared by the repositories:
// DBTX, the query interface satisfied by both *sql.DB and *sql.Tx, and
// WithTx for running a multi-statement flow inside one transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the user and post repositories need.
// Repositories take it instead of *sql.DB so the same code runs inside and
// outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with the transactional handle, then
// commits on success or rolls back on error/panic. Panics are rethrown.
// Registration uses it to keep the existence check and the insert in one
// transaction:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := rm.Users(tx)
//	    // check, then insert, atomically
//	    return repo.Create(ctx, user)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
