package users

import (
	"context"

	"github.com/tigerroots/collective/internal/roles"
	"github.com/tigerroots/collective/internal/server/models"
)

// Repository is the persistence contract for user records. Implementations
// are constructed over a dbx.DBTX, so the same repository code runs either
// directly against the pool or inside a caller-owned transaction.
type Repository interface {
	// Get returns the user or common.ErrNotFound.
	Get(ctx context.Context, uid string) (*models.User, error)

	// CreateRecruit upserts a user with zeroed counters, role unroled and
	// the given recruiter back-reference.
	CreateRecruit(ctx context.Context, uid, recruiterID string) error

	// AddCounters increments total_trees and service_hours. A missing user
	// is a silent no-op.
	AddCounters(ctx context.Context, uid string, deltaTrees int, deltaHours float64) error

	// PromoteEligible applies the single automatic promotion edge:
	// unroled -> intern once the user has at least one tree and one recruit.
	// Safe to re-run; promoted users are left untouched.
	PromoteEligible(ctx context.Context, uid string) error

	// SetRole overwrites the user's role.
	SetRole(ctx context.Context, uid string, role roles.Role) error

	// IncrementRecruits bumps the direct-recruit counter by one.
	IncrementRecruits(ctx context.Context, uid string) error

	// CreditInitiated increments trees_initiated by inc on every listed uid
	// in one statement. An empty list performs no write.
	CreditInitiated(ctx context.Context, uids []string, inc int) error

	// SumTotalTrees returns the global tree total over all users
	// (a projection read, only the counter column is touched).
	SumTotalTrees(ctx context.Context) (int64, error)
}
