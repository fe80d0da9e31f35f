// Package verify is the verification pipeline: it reacts to newly created
// planting and check-in records, approves complete submissions, and hands out
// counter and chain credit. Handlers are registered on the event bus and must
// stay safe under redelivery; the approved-flag transition is the idempotency
// guard.
package verify

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tigerroots/collective/internal/common"
	"github.com/tigerroots/collective/internal/dbx"
	"github.com/tigerroots/collective/internal/events"
	"github.com/tigerroots/collective/internal/logging"
	"github.com/tigerroots/collective/internal/server/repositories/repomanager"
)

// CounterEngine applies counter deltas inside a caller-owned transaction.
type CounterEngine interface {
	UpdateCountsTx(ctx context.Context, tx dbx.DBTX, uid string, deltaTrees int, deltaHours float64) error
}

// ChainCrediter credits recruiter ancestors inside a caller-owned transaction.
type ChainCrediter interface {
	CreditTx(ctx context.Context, tx dbx.DBTX, uid string, inc int) error
}

type Service struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	counters CounterEngine
	chain    ChainCrediter
	logger   logging.Logger
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, counters CounterEngine, chain ChainCrediter, logger logging.Logger) *Service {
	return &Service{
		db:       db,
		rm:       rm,
		counters: counters,
		chain:    chain,
		logger:   logger.With("module", "verify"),
	}
}

// Register subscribes the pipeline's handlers on the bus.
func (s *Service) Register(bus events.Bus) {
	bus.Subscribe(events.TopicPlantingCreated, func(ctx context.Context, e events.Event) error {
		return s.HandlePlantingCreated(ctx, e.PlantingID)
	})
	bus.Subscribe(events.TopicCheckInCreated, func(ctx context.Context, e events.Event) error {
		return s.HandleCheckInCreated(ctx, e.CheckInID)
	})
}

// HandlePlantingCreated approves a complete submission and credits the
// planter and the recruiter chain. Approval and both credits commit together;
// on any failure the record stays visibly unapproved for the next delivery.
func (s *Service) HandlePlantingCreated(ctx context.Context, pid string) error {
	var approvedUID string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Plantings(tx)

		p, err := repo.Get(ctx, pid)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return err
		}

		if p.Species == "" || p.Location == "" || p.PhotoThumbURL == "" {
			// incomplete submission stays unapproved; the thumbnail may
			// still arrive later, but creation does not re-trigger
			return nil
		}

		transitioned, err := repo.Approve(ctx, pid)
		if err != nil {
			return err
		}
		if !transitioned {
			return nil
		}

		if err := s.counters.UpdateCountsTx(ctx, tx, p.UserID, 1, 1); err != nil {
			return err
		}
		if err := s.chain.CreditTx(ctx, tx, p.UserID, 1); err != nil {
			return err
		}

		approvedUID = p.UserID
		return nil
	})
	if err != nil {
		return err
	}

	if approvedUID != "" {
		s.logger.Info(ctx, "planting approved", "pid", pid, "uid", approvedUID)
	}
	return nil
}

// HandleCheckInCreated approves a check-in carrying a photo and credits the
// checker with half a service hour. No chain credit.
func (s *Service) HandleCheckInCreated(ctx context.Context, cid string) error {
	var approvedUID string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Plantings(tx)

		c, err := repo.GetCheckIn(ctx, cid)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return err
		}

		if c.PhotoThumbURL == "" {
			return nil
		}

		transitioned, err := repo.ApproveCheckIn(ctx, cid)
		if err != nil {
			return err
		}
		if !transitioned {
			return nil
		}

		if err := s.counters.UpdateCountsTx(ctx, tx, c.CheckerID, 0, 0.5); err != nil {
			return err
		}

		approvedUID = c.CheckerID
		return nil
	})
	if err != nil {
		return err
	}

	if approvedUID != "" {
		s.logger.Info(ctx, "check-in approved", "cid", cid, "uid", approvedUID)
	}
	return nil
}
