package snapshot

import (
	"time"

	"github.com/riskibarqy/fpl-live-league/internal/domain/h2h"
	"github.com/riskibarqy/fpl-live-league/internal/domain/standings"
)

// Row is the persisted standing of one entry after a gameweek.
type Row struct {
	LeagueID       string
	Gameweek       int
	EntryID        int
	EntryName      string
	Rank           int
	LeaguePoints   int
	TotalPoints    int
	GameweekPoints int
	Result         string
	Eliminated     bool
	// Final marks rows written after the gameweek was settled by FPL.
	Final     bool
	UpdatedAt time.Time
}

// FixtureResult is a persisted H2H pairing outcome.
type FixtureResult struct {
	LeagueID  string
	Gameweek  int
	EntryA    int
	EntryB    int
	ScoreA    int
	ScoreB    int
	Result    h2h.Result
	UpdatedAt time.Time
}

// Gameweek is everything persisted for one league gameweek.
type Gameweek struct {
	LeagueID string
	Gameweek int
	Rows     []Row
	Fixtures []FixtureResult
}

// IsFinal reports whether every row was written after settlement.
func (g Gameweek) IsFinal() bool {
	if len(g.Rows) == 0 {
		return false
	}
	for _, row := range g.Rows {
		if !row.Final {
			return false
		}
	}
	return true
}

// Standings converts persisted rows into the engine's previous standings.
func (g Gameweek) Standings() standings.Snapshot {
	prev := make([]standings.PreviousRow, 0, len(g.Rows))
	for _, row := range g.Rows {
		prev = append(prev, standings.PreviousRow{
			EntryID:      row.EntryID,
			Rank:         row.Rank,
			LeaguePoints: row.LeaguePoints,
			TotalPoints:  row.TotalPoints,
		})
	}
	return standings.NewSnapshot(g.Gameweek, prev)
}

// FromStandings builds the persisted form of a computed gameweek.
func FromStandings(leagueID string, gameweek int, rows []standings.Row, fixtures []h2h.Fixture, final bool, now time.Time) Gameweek {
	out := Gameweek{
		LeagueID: leagueID,
		Gameweek: gameweek,
		Rows:     make([]Row, 0, len(rows)),
		Fixtures: make([]FixtureResult, 0, len(fixtures)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, Row{
			LeagueID:       leagueID,
			Gameweek:       gameweek,
			EntryID:        r.EntryID,
			EntryName:      r.Name,
			Rank:           r.Rank,
			LeaguePoints:   r.LeaguePoints,
			TotalPoints:    r.TotalPoints,
			GameweekPoints: r.GameweekPoints,
			Result:         r.Result,
			Eliminated:     r.Eliminated,
			Final:          final,
			UpdatedAt:      now,
		})
	}
	for _, f := range fixtures {
		out.Fixtures = append(out.Fixtures, FixtureResult{
			LeagueID:  leagueID,
			Gameweek:  gameweek,
			EntryA:    f.EntryA,
			EntryB:    f.EntryB,
			ScoreA:    f.ScoreA,
			ScoreB:    f.ScoreB,
			Result:    f.Outcome.Result,
			UpdatedAt: now,
		})
	}
	return out
}
