package stats

import (
	"context"

	"github.com/tigerroots/collective/internal/server/models"
)

// Repository is the persistence contract for the daily snapshot.
type Repository interface {
	// UpsertDaily writes the global tree total for one calendar date.
	// Re-running on the same date overwrites that date only; prior dates
	// are never touched.
	UpsertDaily(ctx context.Context, date string, total int64) error

	// ListDaily returns all snapshot entries ordered by date.
	ListDaily(ctx context.Context) ([]models.DailyStat, error)
}
