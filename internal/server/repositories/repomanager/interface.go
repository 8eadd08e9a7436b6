package repomanager

import (
	"context"
	"database/sql"

	"github.com/wbdash/wbdash/internal/dbx"
	"github.com/wbdash/wbdash/internal/server/repositories/analytics"
	"github.com/wbdash/wbdash/internal/server/repositories/users"
	"github.com/wbdash/wbdash/internal/server/repositories/wblks"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	WbLks(db dbx.DBTX) wblks.Repository
	Analytics(db dbx.DBTX) analytics.Repository
}
