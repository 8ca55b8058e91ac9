package usecase

import (
	"context"

	"github.com/riskibarqy/fpl-live-league/internal/domain/fixture"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
)

// FPLProvider is the read side of the official FPL API.
type FPLProvider interface {
	FetchBootstrap(ctx context.Context) (ExternalBootstrap, error)
	FetchLiveStats(ctx context.Context, gameweek int) ([]livestat.Stat, error)
	FetchFixtures(ctx context.Context, gameweek int) ([]fixture.Fixture, error)
	FetchPicks(ctx context.Context, managerID, gameweek int) (ExternalPicks, error)
	FetchH2HMatches(ctx context.Context, fplLeagueID, gameweek int) ([]ExternalH2HMatch, error)
	FetchH2HStandings(ctx context.Context, fplLeagueID int) ([]ExternalStanding, error)
	FetchClassicStandings(ctx context.Context, fplLeagueID int) ([]ExternalStanding, error)
}

type ExternalBootstrap struct {
	CurrentGameweek int
	Players         []player.Player
}

// ExternalPicks is one manager's squad plus the FPL history row of the gameweek.
type ExternalPicks struct {
	Selection   squad.Selection
	OverallRank int
	EventPoints int
	TotalPoints int
}

// ExternalH2HMatch is one official manager pairing. EntryB is zero for a bye.
type ExternalH2HMatch struct {
	Gameweek int
	EntryA   int
	NameA    string
	PointsA  int
	EntryB   int
	NameB    string
	PointsB  int
}

// ExternalStanding is one row of an official league table. LeaguePoints is the
// H2H match points for head-to-head tables and the total score for classic ones.
type ExternalStanding struct {
	EntryID      int
	EntryName    string
	PlayerName   string
	Rank         int
	LastRank     int
	LeaguePoints int
	TotalPoints  int
	EventTotal   int
}
