package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
	"github.com/riskibarqy/fpl-live-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultRefreshInterval    = time.Minute
	defaultRefreshConcurrency = 4
)

// RefreshScheduler refreshes every configured league on a fixed interval.
type RefreshScheduler struct {
	leagues     league.Repository
	refresher   LeagueRefresher
	clock       clockwork.Clock
	logger      *logging.Logger
	interval    time.Duration
	concurrency int
}

func NewRefreshScheduler(
	leagues league.Repository,
	refresher LeagueRefresher,
	clock clockwork.Clock,
	logger *logging.Logger,
	interval time.Duration,
	concurrency int,
) *RefreshScheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if concurrency <= 0 {
		concurrency = defaultRefreshConcurrency
	}
	return &RefreshScheduler{
		leagues:     leagues,
		refresher:   refresher,
		clock:       clock,
		logger:      logger,
		interval:    interval,
		concurrency: concurrency,
	}
}

// Run refreshes immediately and then on every tick until ctx ends.
func (s *RefreshScheduler) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "refresh scheduler started", "interval", s.interval.String())
	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "refresh scheduler stopped")
			return
		case <-ticker.Chan():
			s.tick(ctx)
		}
	}
}

func (s *RefreshScheduler) tick(ctx context.Context) {
	if err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.WarnContext(ctx, "league refresh cycle had failures", "error", err)
	}
}

// RunOnce refreshes all leagues concurrently. One failing league does not stop the
// others; their errors are joined.
func (s *RefreshScheduler) RunOnce(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshScheduler.RunOnce")
	defer span.End()

	items, err := s.leagues.List(ctx)
	if err != nil {
		return fmt.Errorf("list leagues: %w", err)
	}

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(s.concurrency)
	for _, l := range items {
		p.Go(func(ctx context.Context) error {
			started := s.clock.Now()
			if _, err := s.refresher.Refresh(ctx, l.ID, 0); err != nil {
				s.logger.WarnContext(ctx, "league refresh failed", "league_id", l.ID, "error", err)
				return fmt.Errorf("refresh league %s: %w", l.ID, err)
			}
			s.logger.DebugContext(ctx, "league refresh done", "league_id", l.ID, "took", s.clock.Since(started).String())
			return nil
		})
	}
	return p.Wait()
}
