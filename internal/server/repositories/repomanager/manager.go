package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/feedmedia/internal/dbx"
	"github.com/dmitrijs2005/feedmedia/internal/server/repositories/userends"
	"github.com/dmitrijs2005/feedmedia/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	UserEnds(db dbx.DBTX) userends.Repository
}
