package plantings

import (
	"context"

	"github.com/tigerroots/collective/internal/server/models"
)

// Repository is the persistence contract for planting and check-in records.
type Repository interface {
	Create(ctx context.Context, p *models.Planting) (*models.Planting, error)

	// Get returns the planting or common.ErrNotFound.
	Get(ctx context.Context, pid string) (*models.Planting, error)

	// Approve flips approved false -> true and reports whether this call
	// made the transition. An already-approved record returns false, which
	// is how redelivered creation events become no-ops.
	Approve(ctx context.Context, pid string) (bool, error)

	SetThumbURL(ctx context.Context, pid, url string) error

	CreateCheckIn(ctx context.Context, c *models.CheckIn) (*models.CheckIn, error)

	// GetCheckIn returns the check-in or common.ErrNotFound.
	GetCheckIn(ctx context.Context, cid string) (*models.CheckIn, error)

	// ApproveCheckIn mirrors Approve for nested check-ins.
	ApproveCheckIn(ctx context.Context, cid string) (bool, error)

	SetCheckInThumbURL(ctx context.Context, pid, cid, url string) error
}
