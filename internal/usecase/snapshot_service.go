package usecase

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
	"github.com/riskibarqy/fpl-live-league/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-live-league/internal/domain/standings"
	"github.com/riskibarqy/fpl-live-league/internal/platform/logging"
)

// LeagueRefresher recomputes one league gameweek.
type LeagueRefresher interface {
	Refresh(ctx context.Context, leagueID string, gameweek int) (LeagueState, error)
}

// SnapshotService manages the settled standings the live engine builds on.
type SnapshotService struct {
	leagues   league.Repository
	snapshots snapshot.Repository
	fpl       FPLProvider
	refresher LeagueRefresher
	clock     clockwork.Clock
	logger    *logging.Logger
}

func NewSnapshotService(
	leagues league.Repository,
	snapshots snapshot.Repository,
	fpl FPLProvider,
	refresher LeagueRefresher,
	clock clockwork.Clock,
	logger *logging.Logger,
) *SnapshotService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SnapshotService{
		leagues:   leagues,
		snapshots: snapshots,
		fpl:       fpl,
		refresher: refresher,
		clock:     clock,
		logger:    logger,
	}
}

// Seed stores the official FPL standings as the settled snapshot of gameweek. When
// gameweek is zero the gameweek before the current one is used. Team leagues sum the
// official points of their managers.
func (s *SnapshotService) Seed(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Seed", leagueSpanAttrs(leagueID, gameweek)...)
	defer span.End()

	l, err := s.league(ctx, leagueID)
	if err != nil {
		return snapshot.Gameweek{}, err
	}

	if gameweek == 0 {
		boot, err := s.fpl.FetchBootstrap(ctx)
		if err != nil {
			return snapshot.Gameweek{}, fmt.Errorf("fetch bootstrap: %w", err)
		}
		gameweek = boot.CurrentGameweek - 1
	}
	if gameweek <= 0 {
		return snapshot.Gameweek{}, fmt.Errorf("%w: no settled gameweek to seed", ErrInvalidInput)
	}

	var official []ExternalStanding
	if l.Type == league.TypeElimination {
		official, err = s.fpl.FetchClassicStandings(ctx, l.FPLLeagueID)
	} else {
		official, err = s.fpl.FetchH2HStandings(ctx, l.FPLLeagueID)
	}
	if err != nil {
		return snapshot.Gameweek{}, fmt.Errorf("fetch official standings league=%d: %w", l.FPLLeagueID, err)
	}

	rows := seedRows(l, official)
	standings.Sort(rows)
	for i := range rows {
		rows[i].Rank = i + 1
	}
	if l.Type == league.TypeElimination {
		rows = standings.ApplyCutoff(rows, l.EffectiveCutoff())
	}

	gw := snapshot.FromStandings(l.ID, gameweek, rows, nil, true, s.clock.Now().UTC())
	if err := s.snapshots.SaveGameweek(ctx, gw); err != nil {
		return snapshot.Gameweek{}, fmt.Errorf("save seeded snapshot league=%s gameweek=%d: %w", l.ID, gameweek, err)
	}

	s.logger.InfoContext(ctx, "standings snapshot seeded", "league_id", l.ID, "gameweek", gameweek, "rows", len(rows))
	return gw, nil
}

// Finalize recomputes a finished gameweek and stores it as settled.
func (s *SnapshotService) Finalize(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Finalize", leagueSpanAttrs(leagueID, gameweek)...)
	defer span.End()

	if gameweek <= 0 {
		return snapshot.Gameweek{}, fmt.Errorf("%w: gameweek must be greater than zero", ErrInvalidInput)
	}
	state, err := s.refresher.Refresh(ctx, leagueID, gameweek)
	if err != nil {
		return snapshot.Gameweek{}, err
	}
	if !state.Final {
		return snapshot.Gameweek{}, fmt.Errorf("%w: league=%s gameweek=%d", ErrGameweekNotFinished, leagueID, gameweek)
	}

	gw, ok, err := s.snapshots.GetGameweek(ctx, leagueID, gameweek)
	if err != nil {
		return snapshot.Gameweek{}, fmt.Errorf("get finalized snapshot league=%s gameweek=%d: %w", leagueID, gameweek, err)
	}
	if !ok {
		return snapshot.Gameweek{}, fmt.Errorf("%w: snapshot league=%s gameweek=%d", ErrNotFound, leagueID, gameweek)
	}

	s.logger.InfoContext(ctx, "gameweek finalized", "league_id", leagueID, "gameweek", gameweek, "rows", len(gw.Rows))
	return gw, nil
}

// Get returns the stored snapshot of a league gameweek.
func (s *SnapshotService) Get(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Get", leagueSpanAttrs(leagueID, gameweek)...)
	defer span.End()

	if _, err := s.league(ctx, leagueID); err != nil {
		return snapshot.Gameweek{}, err
	}
	gw, ok, err := s.snapshots.GetGameweek(ctx, leagueID, gameweek)
	if err != nil {
		return snapshot.Gameweek{}, fmt.Errorf("get snapshot league=%s gameweek=%d: %w", leagueID, gameweek, err)
	}
	if !ok {
		return snapshot.Gameweek{}, fmt.Errorf("%w: snapshot league=%s gameweek=%d", ErrNotFound, leagueID, gameweek)
	}
	return gw, nil
}

func (s *SnapshotService) league(ctx context.Context, leagueID string) (league.League, error) {
	l, ok, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !ok {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return l, nil
}

func seedRows(l league.League, official []ExternalStanding) []standings.Row {
	if l.Type != league.TypeTeamH2H {
		rows := make([]standings.Row, 0, len(official))
		for _, o := range official {
			if l.IsExcluded(o.EntryID) {
				continue
			}
			row := standings.Row{
				EntryID:        o.EntryID,
				Name:           o.PlayerName,
				LeaguePoints:   o.LeaguePoints,
				TotalPoints:    o.TotalPoints,
				GameweekPoints: o.EventTotal,
			}
			if l.Type == league.TypeElimination {
				row.LeaguePoints = o.TotalPoints
			}
			rows = append(rows, row)
		}
		return rows
	}

	byManager := make(map[int]ExternalStanding, len(official))
	for _, o := range official {
		byManager[o.EntryID] = o
	}
	rows := make([]standings.Row, 0, len(l.Teams))
	for _, team := range l.Teams {
		row := standings.Row{EntryID: team.ID, Name: team.Name}
		for _, managerID := range team.ManagerIDs {
			o := byManager[managerID]
			row.LeaguePoints += o.LeaguePoints
			row.TotalPoints += o.TotalPoints
			row.GameweekPoints += o.EventTotal
		}
		rows = append(rows, row)
	}
	return rows
}
