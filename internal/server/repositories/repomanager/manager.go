package repomanager

import (
	"context"
	"database/sql"

	"github.com/aleksivanovs/taskvault/internal/dbx"
	"github.com/aleksivanovs/taskvault/internal/server/repositories/lists"
	"github.com/aleksivanovs/taskvault/internal/server/repositories/sessions"
	"github.com/aleksivanovs/taskvault/internal/server/repositories/tasks"
	"github.com/aleksivanovs/taskvault/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code over a plain connection or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Lists(db dbx.DBTX) lists.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
