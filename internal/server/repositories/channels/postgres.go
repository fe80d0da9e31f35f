package channels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tigerroots/collective/internal/common"
	"github.com/tigerroots/collective/internal/dbx"
	"github.com/tigerroots/collective/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Ensure(ctx context.Context, ch *models.Channel) error {
	query :=
		`INSERT INTO channels (id, name, type, content)
		 VALUES ($1, $2, $3, NULLIF($4, ''))
		 ON CONFLICT (id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, ch.ID, ch.Name, ch.Type, ch.Content); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SetContent(ctx context.Context, id, name string, typ models.ChannelType, content string) error {
	query :=
		`INSERT INTO channels (id, name, type, content, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (id) DO UPDATE
		 SET content = EXCLUDED.content, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, id, name, typ, content); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Channel, error) {
	query :=
		`SELECT id, name, type, COALESCE(content, ''), created_at, COALESCE(updated_at, created_at)
		 FROM channels
		 WHERE id = $1
		 `

	ch := &models.Channel{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&ch.ID, &ch.Name, &ch.Type, &ch.Content, &ch.Created, &ch.Updated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ch, nil
}
