package repomanager

import (
	"context"
	"database/sql"

	"github.com/snackswap/snackswap/internal/dbx"
	"github.com/snackswap/snackswap/internal/server/repositories/foods"
	"github.com/snackswap/snackswap/internal/server/repositories/messages"
	"github.com/snackswap/snackswap/internal/server/repositories/refreshtokens"
	"github.com/snackswap/snackswap/internal/server/repositories/swaps"
	"github.com/snackswap/snackswap/internal/server/repositories/users"
	"github.com/snackswap/snackswap/internal/server/repositories/verifications"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Foods(db dbx.DBTX) foods.Repository
	Swaps(db dbx.DBTX) swaps.Repository
	Messages(db dbx.DBTX) messages.Repository
	Verifications(db dbx.DBTX) verifications.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
