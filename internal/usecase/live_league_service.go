package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fpl-live-league/internal/domain/entry"
	"github.com/riskibarqy/fpl-live-league/internal/domain/fixture"
	"github.com/riskibarqy/fpl-live-league/internal/domain/h2h"
	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
	"github.com/riskibarqy/fpl-live-league/internal/domain/points"
	"github.com/riskibarqy/fpl-live-league/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
	"github.com/riskibarqy/fpl-live-league/internal/domain/standings"
	"github.com/riskibarqy/fpl-live-league/internal/engine"
	"github.com/riskibarqy/fpl-live-league/internal/platform/cache"
	"github.com/riskibarqy/fpl-live-league/internal/platform/id"
	"github.com/riskibarqy/fpl-live-league/internal/platform/logging"
	"github.com/riskibarqy/fpl-live-league/internal/platform/resilience"
)

const (
	defaultFetchWorkers = 15
	defaultStateTTL     = time.Minute
	defaultBootstrapTTL = 30 * time.Minute
	bootstrapCacheKey   = "bootstrap"
)

type LiveLeagueServiceConfig struct {
	// Workers bounds concurrent FPL fetches of one refresh.
	Workers      int
	StateTTL     time.Duration
	BootstrapTTL time.Duration
	Scoring      points.Rules
}

// LiveLeagueService fetches everything a league gameweek needs, runs the engine and
// persists and publishes the outcome.
type LiveLeagueService struct {
	leagues   league.Repository
	snapshots snapshot.Repository
	fpl       FPLProvider
	live      LiveStore
	ids       id.Generator
	clock     clockwork.Clock
	logger    *logging.Logger

	workers   int
	scoring   points.Rules
	bootstrap *cache.Store[ExternalBootstrap]
	states    *cache.Store[LeagueState]
	refreshes resilience.SingleFlight[LeagueState]
}

func NewLiveLeagueService(
	leagues league.Repository,
	snapshots snapshot.Repository,
	fpl FPLProvider,
	live LiveStore,
	ids id.Generator,
	clock clockwork.Clock,
	logger *logging.Logger,
	cfg LiveLeagueServiceConfig,
) *LiveLeagueService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultFetchWorkers
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = defaultStateTTL
	}
	if cfg.BootstrapTTL <= 0 {
		cfg.BootstrapTTL = defaultBootstrapTTL
	}
	if cfg.Scoring.ByPosition == nil && cfg.Scoring.Common == nil {
		cfg.Scoring = points.DefaultRules()
	}

	return &LiveLeagueService{
		leagues:   leagues,
		snapshots: snapshots,
		fpl:       fpl,
		live:      live,
		ids:       ids,
		clock:     clock,
		logger:    logger,
		workers:   cfg.Workers,
		scoring:   cfg.Scoring,
		bootstrap: cache.NewStore[ExternalBootstrap](cfg.BootstrapTTL, clock),
		states:    cache.NewStore[LeagueState](cfg.StateTTL, clock),
	}
}

func (s *LiveLeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveLeagueService.ListLeagues")
	defer span.End()

	items, err := s.leagues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

// CurrentGameweek returns the gameweek FPL marks as current.
func (s *LiveLeagueService) CurrentGameweek(ctx context.Context) (int, error) {
	boot, err := s.loadBootstrap(ctx)
	if err != nil {
		return 0, err
	}
	return boot.CurrentGameweek, nil
}

// State returns the last computed state of the league, refreshing it when the cached
// copy has expired.
func (s *LiveLeagueService) State(ctx context.Context, leagueID string) (LeagueState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveLeagueService.State")
	defer span.End()

	if state, ok := s.states.Get(leagueID); ok {
		return state, nil
	}
	return s.Refresh(ctx, leagueID, 0)
}

// Standings prefers the published standings and falls back to a refresh.
func (s *LiveLeagueService) Standings(ctx context.Context, leagueID string) (LiveStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveLeagueService.Standings")
	defer span.End()

	if state, ok := s.states.Get(leagueID); ok {
		return state.ToLiveStandings(), nil
	}
	if s.live != nil {
		latest, ok, err := s.live.Latest(ctx, leagueID)
		if err != nil {
			s.logger.WarnContext(ctx, "read published standings failed", "league_id", leagueID, "error", err)
		} else if ok {
			return latest, nil
		}
	}

	state, err := s.Refresh(ctx, leagueID, 0)
	if err != nil {
		return LiveStandings{}, err
	}
	return state.ToLiveStandings(), nil
}

// Refresh recomputes the league for gameweek, or the current gameweek when zero.
// Concurrent refreshes of the same league gameweek share one run.
func (s *LiveLeagueService) Refresh(ctx context.Context, leagueID string, gameweek int) (LeagueState, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveLeagueService.Refresh", leagueSpanAttrs(leagueID, gameweek)...)
	defer span.End()

	if gameweek < 0 {
		return LeagueState{}, fmt.Errorf("%w: gameweek must not be negative", ErrInvalidInput)
	}

	l, ok, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return LeagueState{}, fmt.Errorf("get league: %w", err)
	}
	if !ok {
		return LeagueState{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	key := l.ID + ":" + strconv.Itoa(gameweek)
	state, _, err := s.refreshes.Do(ctx, key, func() (LeagueState, error) {
		return s.refresh(context.WithoutCancel(ctx), l, gameweek)
	})
	return state, err
}

type fetched struct {
	live     []livestat.Stat
	fixtures []fixture.Fixture
	members  []ExternalStanding
	matches  []ExternalH2HMatch
}

func (s *LiveLeagueService) refresh(ctx context.Context, l league.League, gameweek int) (LeagueState, error) {
	boot, err := s.loadBootstrap(ctx)
	if err != nil {
		return LeagueState{}, err
	}
	if gameweek == 0 {
		gameweek = boot.CurrentGameweek
	}
	if gameweek <= 0 {
		return LeagueState{}, fmt.Errorf("%w: no current gameweek", ErrNotFound)
	}

	var data fetched
	tasks := []func(context.Context) error{
		func(ctx context.Context) error {
			items, err := s.fpl.FetchLiveStats(ctx, gameweek)
			if err != nil {
				return fmt.Errorf("fetch live stats gameweek=%d: %w", gameweek, err)
			}
			data.live = items
			return nil
		},
		func(ctx context.Context) error {
			items, err := s.fpl.FetchFixtures(ctx, gameweek)
			if err != nil {
				return fmt.Errorf("fetch fixtures gameweek=%d: %w", gameweek, err)
			}
			data.fixtures = items
			return nil
		},
		func(ctx context.Context) error {
			items, err := s.fetchMembers(ctx, l)
			if err != nil {
				return err
			}
			data.members = items
			return nil
		},
	}
	if l.Type != league.TypeElimination {
		tasks = append(tasks, func(ctx context.Context) error {
			items, err := s.fpl.FetchH2HMatches(ctx, l.FPLLeagueID, gameweek)
			if err != nil {
				return fmt.Errorf("fetch h2h matches league=%d gameweek=%d: %w", l.FPLLeagueID, gameweek, err)
			}
			data.matches = items
			return nil
		})
	}
	if err := runBounded(ctx, s.workers, tasks); err != nil {
		return LeagueState{}, err
	}

	members := make([]league.Member, 0, len(data.members))
	for _, m := range data.members {
		members = append(members, league.Member{EntryID: m.EntryID, EntryName: m.EntryName, PlayerName: m.PlayerName})
	}
	entries := l.Entries(members)

	managers, err := s.fetchManagers(ctx, l.ManagerIDs(entries), gameweek, data.members)
	if err != nil {
		return LeagueState{}, err
	}

	selections := make(map[int]squad.Selection, len(managers))
	for managerID, m := range managers {
		selections[managerID] = m.Picks.Selection
	}
	overallRanks := make(map[int]int, len(entries))
	for _, e := range entries {
		if e.Kind != entry.KindIndividual {
			continue
		}
		overallRanks[e.ID] = managers[e.ID].Picks.OverallRank
	}

	matches := make([]h2h.Pairing, 0, len(data.matches))
	for _, m := range data.matches {
		matches = append(matches, h2h.Pairing{EntryA: m.EntryA, EntryB: m.EntryB})
	}

	previous, err := s.previousStandings(ctx, l.ID, gameweek)
	if err != nil {
		return LeagueState{}, err
	}

	players := player.NewDirectory(boot.Players)
	fixtures := fixture.Set(data.fixtures)
	result, err := engine.Run(engine.Input{
		Gameweek:     gameweek,
		Mode:         l.Mode(),
		Rules:        l.Rules(),
		Scoring:      s.scoring,
		Players:      players,
		Fixtures:     fixtures,
		Live:         livestat.NewSnapshot(gameweek, data.live),
		Entries:      entries,
		Selections:   selections,
		Pairings:     l.Pairings(matches),
		Previous:     previous,
		Cutoff:       l.EffectiveCutoff(),
		OverallRanks: overallRanks,
	})
	if err != nil {
		return LeagueState{}, fmt.Errorf("league %s: %w", l.ID, err)
	}

	now := s.clock.Now().UTC()
	final := fixtures.Finished()
	gw := snapshot.FromStandings(l.ID, gameweek, result.Standings, result.Fixtures, final, now)
	if err := s.snapshots.SaveGameweek(ctx, gw); err != nil {
		return LeagueState{}, fmt.Errorf("save standings snapshot league=%s gameweek=%d: %w", l.ID, gameweek, err)
	}

	state := LeagueState{
		League:     l,
		Gameweek:   gameweek,
		RunID:      s.ids.NewID(),
		ComputedAt: now,
		Final:      final,
		Players:    players,
		Entries:    entries,
		Managers:   managers,
		Result:     result,
	}
	if gameweek == boot.CurrentGameweek {
		s.states.Set(l.ID, state)
		if s.live != nil {
			if err := s.live.Publish(ctx, state.ToLiveStandings()); err != nil {
				s.logger.WarnContext(ctx, "publish live standings failed", "league_id", l.ID, "gameweek", gameweek, "error", err)
			}
		}
	}

	s.logger.InfoContext(ctx, "league refreshed",
		"league_id", l.ID,
		"gameweek", gameweek,
		"entries", len(entries),
		"live", result.Live,
		"final", final,
		"run_id", state.RunID,
	)
	return state, nil
}

func (s *LiveLeagueService) loadBootstrap(ctx context.Context) (ExternalBootstrap, error) {
	boot, err := s.bootstrap.GetOrLoad(ctx, bootstrapCacheKey, s.fpl.FetchBootstrap)
	if err != nil {
		return ExternalBootstrap{}, fmt.Errorf("fetch bootstrap: %w", err)
	}
	return boot, nil
}

func (s *LiveLeagueService) fetchMembers(ctx context.Context, l league.League) ([]ExternalStanding, error) {
	if l.Type == league.TypeElimination {
		items, err := s.fpl.FetchClassicStandings(ctx, l.FPLLeagueID)
		if err != nil {
			return nil, fmt.Errorf("fetch classic standings league=%d: %w", l.FPLLeagueID, err)
		}
		return items, nil
	}
	items, err := s.fpl.FetchH2HStandings(ctx, l.FPLLeagueID)
	if err != nil {
		return nil, fmt.Errorf("fetch h2h standings league=%d: %w", l.FPLLeagueID, err)
	}
	return items, nil
}

// fetchManagers loads the picks of every manager on the ants pool.
func (s *LiveLeagueService) fetchManagers(ctx context.Context, managerIDs []int, gameweek int, members []ExternalStanding) (map[int]Manager, error) {
	names := make(map[int]ExternalStanding, len(members))
	for _, m := range members {
		names[m.EntryID] = m
	}

	var mu sync.Mutex
	out := make(map[int]Manager, len(managerIDs))
	tasks := make([]func(context.Context) error, 0, len(managerIDs))
	for _, managerID := range managerIDs {
		tasks = append(tasks, func(ctx context.Context) error {
			picks, err := s.fpl.FetchPicks(ctx, managerID, gameweek)
			if err != nil {
				return fmt.Errorf("fetch picks manager=%d gameweek=%d: %w", managerID, gameweek, err)
			}
			member := names[managerID]
			mu.Lock()
			out[managerID] = Manager{
				ID:        managerID,
				Name:      member.PlayerName,
				EntryName: member.EntryName,
				Picks:     picks,
			}
			mu.Unlock()
			return nil
		})
	}
	if err := runBounded(ctx, s.workers, tasks); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LiveLeagueService) previousStandings(ctx context.Context, leagueID string, gameweek int) (standings.Snapshot, error) {
	prev, ok, err := s.snapshots.LatestBefore(ctx, leagueID, gameweek)
	if err != nil {
		return standings.Snapshot{}, fmt.Errorf("load previous standings league=%s gameweek=%d: %w", leagueID, gameweek, err)
	}
	if !ok {
		return standings.NewSnapshot(0, nil), nil
	}
	return prev.Standings(), nil
}
