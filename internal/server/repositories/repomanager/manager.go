// Package repomanager vends repository implementations bound to a database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/murof-net/auth/internal/dbx"
	"github.com/murof-net/auth/internal/server/repositories/users"
)

// RepositoryManager produces repositories bound to a DBTX (a *sql.DB or an
// open transaction) and runs schema migrations.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
