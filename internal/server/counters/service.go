// Package counters is the counter transaction engine: the only writer of a
// user's total_trees, service_hours and of the automatic unroled -> intern
// promotion.
package counters

import (
	"context"
	"database/sql"

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

// UpdateCounts applies both counter deltas and re-evaluates promotion in a
// single transaction. A missing user is a silent no-op.
func (s *Service) UpdateCounts(ctx context.Context, uid string, deltaTrees int, deltaHours float64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.UpdateCountsTx(ctx, tx, uid, deltaTrees, deltaHours)
	})
}

// UpdateCountsTx is UpdateCounts running inside a caller-owned transaction,
// for pipelines that bind the counter update to other writes.
func (s *Service) UpdateCountsTx(ctx context.Context, tx dbx.DBTX, uid string, deltaTrees int, deltaHours float64) error {
	repo := s.rm.Users(tx)

	if err := repo.AddCounters(ctx, uid, deltaTrees, deltaHours); err != nil {
		return err
	}

	return repo.PromoteEligible(ctx, uid)
}

// PromoteIfEligible re-evaluates the promotion rule on its own. It is called
// after recruit registration, the other mutation that can satisfy the rule.
func (s *Service) PromoteIfEligible(ctx context.Context, uid string) error {
	return s.rm.Users(s.db).PromoteEligible(ctx, uid)
}
