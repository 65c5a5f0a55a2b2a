package repomanager

import (
	"context"
	"database/sql"

	"github.com/voiceviz/voiceviz-server/internal/dbx"
	"github.com/voiceviz/voiceviz-server/internal/server/repositories/queries"
	"github.com/voiceviz/voiceviz-server/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Queries(db dbx.DBTX) queries.Repository
}
