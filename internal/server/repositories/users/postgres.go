package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tigerroots/collective/internal/common"
	"github.com/tigerroots/collective/internal/dbx"
	"github.com/tigerroots/collective/internal/roles"
	"github.com/tigerroots/collective/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, uid string) (*models.User, error) {
	query :=
		`SELECT uid, name, role, COALESCE(recruiter_id, ''), recruits, total_trees, service_hours, trees_initiated, created_at
		 FROM users
		 WHERE uid = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&user.UID, &user.Name, &user.Role,
		&user.RecruiterID, &user.Recruits, &user.TotalTrees, &user.ServiceHours, &user.TreesInitiated, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) CreateRecruit(ctx context.Context, uid, recruiterID string) error {
	query :=
		`INSERT INTO users (uid, recruiter_id, role, recruits, total_trees, service_hours, trees_initiated)
		 VALUES ($1, $2, $3, 0, 0, 0, 0)
		 ON CONFLICT (uid) DO UPDATE
		 SET recruiter_id = EXCLUDED.recruiter_id,
		     role = EXCLUDED.role,
		     recruits = EXCLUDED.recruits,
		     total_trees = EXCLUDED.total_trees,
		     service_hours = EXCLUDED.service_hours,
		     trees_initiated = EXCLUDED.trees_initiated
		 `

	if _, err := r.db.ExecContext(ctx, query, uid, recruiterID, roles.Unroled); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) AddCounters(ctx context.Context, uid string, deltaTrees int, deltaHours float64) error {
	query :=
		`UPDATE users
		 SET total_trees = total_trees + $2,
		     service_hours = service_hours + $3
		 WHERE uid = $1
		 `

	// zero rows affected means the user does not exist; by contract a no-op
	if _, err := r.db.ExecContext(ctx, query, uid, deltaTrees, deltaHours); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) PromoteEligible(ctx context.Context, uid string) error {
	query :=
		`UPDATE users
		 SET role = $2
		 WHERE uid = $1 AND role = $3 AND total_trees >= 1 AND recruits >= 1
		 `

	if _, err := r.db.ExecContext(ctx, query, uid, roles.Intern, roles.Unroled); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SetRole(ctx context.Context, uid string, role roles.Role) error {
	query := `UPDATE users SET role = $2 WHERE uid = $1`

	res, err := r.db.ExecContext(ctx, query, uid, role)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) IncrementRecruits(ctx context.Context, uid string) error {
	query := `UPDATE users SET recruits = recruits + 1 WHERE uid = $1`

	res, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) CreditInitiated(ctx context.Context, uids []string, inc int) error {
	if len(uids) == 0 {
		return nil
	}

	placeholders := make([]string, len(uids))
	args := make([]any, 0, len(uids)+1)
	args = append(args, inc)
	for i, uid := range uids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, uid)
	}

	query := fmt.Sprintf(
		`UPDATE users SET trees_initiated = trees_initiated + $1 WHERE uid IN (%s)`,
		strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SumTotalTrees(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(total_trees), 0) FROM users`

	var total int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return total, nil
}
