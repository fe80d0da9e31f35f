package stats

import (
	"context"
	"fmt"

	"github.com/tigerroots/collective/internal/dbx"
	"github.com/tigerroots/collective/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UpsertDaily(ctx context.Context, date string, total int64) error {
	query :=
		`INSERT INTO daily_stats (stat_date, total_trees, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (stat_date) DO UPDATE
		 SET total_trees = EXCLUDED.total_trees, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, date, total); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListDaily(ctx context.Context) ([]models.DailyStat, error) {
	query :=
		`SELECT to_char(stat_date, 'YYYY-MM-DD'), total_trees, updated_at
		 FROM daily_stats
		 ORDER BY stat_date
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.DailyStat
	for rows.Next() {
		var s models.DailyStat
		if err := rows.Scan(&s.Date, &s.TotalTrees, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
