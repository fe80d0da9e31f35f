package channels

import (
	"context"

	"github.com/tigerroots/collective/internal/server/models"
)

// Repository is the persistence contract for channel records.
type Repository interface {
	// Ensure creates the channel if it does not exist yet; an existing
	// channel is left untouched.
	Ensure(ctx context.Context, ch *models.Channel) error

	// SetContent overwrites the channel's content and updated stamp,
	// creating the channel if it is missing.
	SetContent(ctx context.Context, id, name string, typ models.ChannelType, content string) error

	// Get returns the channel or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Channel, error)
}
