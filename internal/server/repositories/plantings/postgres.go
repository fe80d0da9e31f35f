package plantings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Planting) (*models.Planting, error) {
	if p.PID == "" {
		p.PID = uuid.NewString()
	}

	query :=
		`INSERT INTO plantings (pid, user_id, species, location, photo_thumb_url, approved)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), false)
		 `

	if _, err := r.db.ExecContext(ctx, query, p.PID, p.UserID, p.Species, p.Location, p.PhotoThumbURL); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, pid string) (*models.Planting, error) {
	query :=
		`SELECT pid, user_id, species, location, COALESCE(photo_thumb_url, ''), approved, created_at
		 FROM plantings
		 WHERE pid = $1
		 `

	p := &models.Planting{}
	err := r.db.QueryRowContext(ctx, query, pid).Scan(&p.PID, &p.UserID, &p.Species, &p.Location,
		&p.PhotoThumbURL, &p.Approved, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Approve(ctx context.Context, pid string) (bool, error) {
	query := `UPDATE plantings SET approved = true WHERE pid = $1 AND approved = false`

	res, err := r.db.ExecContext(ctx, query, pid)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) SetThumbURL(ctx context.Context, pid, url string) error {
	query := `UPDATE plantings SET photo_thumb_url = $2 WHERE pid = $1`

	res, err := r.db.ExecContext(ctx, query, pid, url)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) CreateCheckIn(ctx context.Context, c *models.CheckIn) (*models.CheckIn, error) {
	if c.CID == "" {
		c.CID = uuid.NewString()
	}

	query :=
		`INSERT INTO checkins (cid, planting_id, checker_id, photo_thumb_url, approved)
		 VALUES ($1, $2, $3, NULLIF($4, ''), false)
		 `

	if _, err := r.db.ExecContext(ctx, query, c.CID, c.PlantingID, c.CheckerID, c.PhotoThumbURL); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) GetCheckIn(ctx context.Context, cid string) (*models.CheckIn, error) {
	query :=
		`SELECT cid, planting_id, checker_id, COALESCE(photo_thumb_url, ''), approved, created_at
		 FROM checkins
		 WHERE cid = $1
		 `

	c := &models.CheckIn{}
	err := r.db.QueryRowContext(ctx, query, cid).Scan(&c.CID, &c.PlantingID, &c.CheckerID,
		&c.PhotoThumbURL, &c.Approved, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) ApproveCheckIn(ctx context.Context, cid string) (bool, error) {
	query := `UPDATE checkins SET approved = true WHERE cid = $1 AND approved = false`

	res, err := r.db.ExecContext(ctx, query, cid)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) SetCheckInThumbURL(ctx context.Context, pid, cid, url string) error {
	query := `UPDATE checkins SET photo_thumb_url = $3 WHERE cid = $2 AND planting_id = $1`

	res, err := r.db.ExecContext(ctx, query, pid, cid, url)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	return nil
}
