// Package repomanager wires concrete repositories to database handles and
// owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"postboard/internal/dbx"
	"postboard/internal/server/repositories/posts"
	"postboard/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so services can
// use the same repository code inside and outside transactions.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
