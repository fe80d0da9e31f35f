// Package chain is the recruiter chain propagator: it credits trees_initiated
// to every ancestor in the recruiter-of-recruiter chain, and to no one else.
package chain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tigerroots/collective/internal/common"
	"github.com/tigerroots/collective/internal/dbx"
	"github.com/tigerroots/collective/internal/server/repositories/repomanager"
)

type Service struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager) *Service {
	return &Service{db: db, rm: rm}
}

// CreditInitiatedTrees walks the recruiter chain of uid and credits every
// ancestor by inc in one atomic batch. The planter itself is never credited.
func (s *Service) CreditInitiatedTrees(ctx context.Context, uid string, inc int) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.CreditTx(ctx, tx, uid, inc)
	})
}

// CreditTx is CreditInitiatedTrees inside a caller-owned transaction.
//
// The walk is a flat loop, one point-read per ancestor, so a chain of depth N
// costs N+1 reads and exactly one write regardless of depth. It stops at the
// first missing record or absent recruiter reference.
func (s *Service) CreditTx(ctx context.Context, tx dbx.DBTX, uid string, inc int) error {
	repo := s.rm.Users(tx)

	u, err := repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}

	var ancestors []string
	current := u.RecruiterID
	for current != "" {
		a, err := repo.Get(ctx, current)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				break
			}
			return err
		}
		ancestors = append(ancestors, current)
		current = a.RecruiterID
	}

	return repo.CreditInitiated(ctx, ancestors, inc)
}
