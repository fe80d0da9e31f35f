package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tigerroots/collective/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	query :=
		`INSERT INTO auth_credentials (uid, disabled, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (uid) DO UPDATE
		 SET disabled = EXCLUDED.disabled, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, uid, disabled); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Disabled(ctx context.Context, uid string) (bool, error) {
	query := `SELECT disabled FROM auth_credentials WHERE uid = $1`

	var disabled bool
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&disabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	return disabled, nil
}
