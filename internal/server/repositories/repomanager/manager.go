package repomanager

import (
	"context"
	"database/sql"

	"gestoria/internal/dbx"
	"gestoria/internal/server/repositories/facturas"
	"gestoria/internal/server/repositories/uploads"
	"gestoria/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Uploads(db dbx.DBTX) uploads.Repository
	Facturas(db dbx.DBTX) facturas.Repository
}
