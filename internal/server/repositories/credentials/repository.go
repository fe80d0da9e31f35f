package credentials

import "context"

// Repository tracks the enabled/disabled state of authentication credentials.
// This is the record-store side of the identity-provider contract.
type Repository interface {
	// SetDisabled upserts the credential state for a user.
	SetDisabled(ctx context.Context, uid string, disabled bool) error

	// Disabled reports whether the credential is disabled. A user with no
	// credential row is enabled.
	Disabled(ctx context.Context, uid string) (bool, error)
}
