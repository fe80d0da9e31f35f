package identity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tigerroots/collective/internal/common"
	"github.com/tigerroots/collective/internal/server/repositories/repomanager"
)

// Provider resolves bearer tokens to user IDs and owns credential state.
type Provider struct {
	db        *sql.DB
	rm        repomanager.RepositoryManager
	secretKey []byte
}

func NewProvider(db *sql.DB, rm repomanager.RepositoryManager, secretKey []byte) *Provider {
	return &Provider{db: db, rm: rm, secretKey: secretKey}
}

// Resolve returns the user ID encoded in the token. Any parse or signature
// failure maps to common.ErrUnauthenticated.
func (p *Provider) Resolve(tokenString string) (string, error) {
	uid, err := GetUserIDFromToken(tokenString, p.secretKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}
	if uid == "" {
		return "", common.ErrUnauthenticated
	}
	return uid, nil
}

// Disable turns off the user's credential so existing tokens stop working.
func (p *Provider) Disable(ctx context.Context, uid string) error {
	return p.rm.Credentials(p.db).SetDisabled(ctx, uid, true)
}

// Disabled reports whether the user's credential is disabled.
func (p *Provider) Disabled(ctx context.Context, uid string) (bool, error) {
	return p.rm.Credentials(p.db).Disabled(ctx, uid)
}
