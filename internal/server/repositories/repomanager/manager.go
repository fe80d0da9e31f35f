// Package repomanager builds repositories over an arbitrary dbx.DBTX handle,
// letting a service run the same repository code either on the pool or inside
// a transaction it owns.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/tigerroots/collective/internal/dbx"
	"github.com/tigerroots/collective/internal/server/repositories/channels"
	"github.com/tigerroots/collective/internal/server/repositories/credentials"
	"github.com/tigerroots/collective/internal/server/repositories/plantings"
	"github.com/tigerroots/collective/internal/server/repositories/stats"
	"github.com/tigerroots/collective/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Plantings(db dbx.DBTX) plantings.Repository
	Channels(db dbx.DBTX) channels.Repository
	Stats(db dbx.DBTX) stats.Repository
	Credentials(db dbx.DBTX) credentials.Repository
}
