// Package statsjob maintains the daily global tree snapshot. A cron schedule
// sums total_trees over all users, upserts a row keyed by the calendar date in
// the configured timezone, and rewrites the pinned stats announcement.
package statsjob

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tigerroots/collective/internal/logging"
	"github.com/tigerroots/collective/internal/server/models"
	"github.com/tigerroots/collective/internal/server/repositories/repomanager"
)

// StatsChannelID receives the rewritten announcement on every run.
const StatsChannelID = "tree-stats"

const announcementFormat = "🌳 Total trees planted so far: **%d**\n\nOpen the live chart → /stats/trees"

type Service struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger
	loc    *time.Location
	spec   string
	now    func() time.Time
	cron   *cron.Cron
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger, spec, timezone string) (*Service, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading stats timezone: %w", err)
	}
	return &Service{
		db:     db,
		rm:     rm,
		logger: logger.With("module", "statsjob"),
		loc:    loc,
		spec:   spec,
		now:    time.Now,
	}, nil
}

// Start schedules the job. The job also runs once immediately so a fresh
// deployment does not wait until the next midnight for its first snapshot.
func (s *Service) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithLocation(s.loc))
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error(ctx, "daily stats run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling stats job: %w", err)
	}
	s.cron.Start()

	go func() {
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error(ctx, "initial stats run failed", "error", err)
		}
	}()
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunOnce performs one aggregation pass. Re-running within the same calendar
// day overwrites that day's row; a new day creates a new row.
func (s *Service) RunOnce(ctx context.Context) error {
	total, err := s.rm.Users(s.db).SumTotalTrees(ctx)
	if err != nil {
		return fmt.Errorf("summing trees: %w", err)
	}

	date := s.now().In(s.loc).Format("2006-01-02")
	if err := s.rm.Stats(s.db).UpsertDaily(ctx, date, total); err != nil {
		return fmt.Errorf("writing daily snapshot: %w", err)
	}

	content := fmt.Sprintf(announcementFormat, total)
	err = s.rm.Channels(s.db).SetContent(ctx, StatsChannelID, StatsChannelID, models.ChannelAnnounce, content)
	if err != nil {
		return fmt.Errorf("updating stats channel: %w", err)
	}

	s.logger.Info(ctx, "daily stats updated", "date", date, "total", total)
	return nil
}
