package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/projectvault/internal/dbx"
	"github.com/dmitrijs2005/projectvault/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/projectvault/internal/server/repositories/secrets"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// run the same repository against a *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Secrets(db dbx.DBTX) secrets.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}
