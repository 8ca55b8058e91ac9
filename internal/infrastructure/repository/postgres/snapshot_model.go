package postgres

import (
	"time"

	"github.com/riskibarqy/fpl-live-league/internal/domain/h2h"
	"github.com/riskibarqy/fpl-live-league/internal/domain/snapshot"
)

const (
	tableStandingsSnapshots = "standings_snapshots"
	tableFixtureResults     = "h2h_fixture_results"
)

type standingRowModel struct {
	LeagueID       string    `db:"league_id"`
	Gameweek       int       `db:"gameweek"`
	EntryID        int       `db:"entry_id"`
	EntryName      string    `db:"entry_name"`
	Rank           int       `db:"rank"`
	LeaguePoints   int       `db:"league_points"`
	TotalPoints    int       `db:"total_points"`
	GameweekPoints int       `db:"gameweek_points"`
	Result         string    `db:"result"`
	Eliminated     bool      `db:"eliminated"`
	IsFinal        bool      `db:"is_final"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type fixtureResultModel struct {
	LeagueID  string    `db:"league_id"`
	Gameweek  int       `db:"gameweek"`
	EntryA    int       `db:"entry_a"`
	EntryB    int       `db:"entry_b"`
	ScoreA    int       `db:"score_a"`
	ScoreB    int       `db:"score_b"`
	Result    string    `db:"result"`
	UpdatedAt time.Time `db:"updated_at"`
}

func standingRowToModel(row snapshot.Row) standingRowModel {
	return standingRowModel{
		LeagueID:       row.LeagueID,
		Gameweek:       row.Gameweek,
		EntryID:        row.EntryID,
		EntryName:      row.EntryName,
		Rank:           row.Rank,
		LeaguePoints:   row.LeaguePoints,
		TotalPoints:    row.TotalPoints,
		GameweekPoints: row.GameweekPoints,
		Result:         row.Result,
		Eliminated:     row.Eliminated,
		IsFinal:        row.Final,
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}

func standingRowFromModel(m standingRowModel) snapshot.Row {
	return snapshot.Row{
		LeagueID:       m.LeagueID,
		Gameweek:       m.Gameweek,
		EntryID:        m.EntryID,
		EntryName:      m.EntryName,
		Rank:           m.Rank,
		LeaguePoints:   m.LeaguePoints,
		TotalPoints:    m.TotalPoints,
		GameweekPoints: m.GameweekPoints,
		Result:         m.Result,
		Eliminated:     m.Eliminated,
		Final:          m.IsFinal,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fixtureResultToModel(f snapshot.FixtureResult) fixtureResultModel {
	return fixtureResultModel{
		LeagueID:  f.LeagueID,
		Gameweek:  f.Gameweek,
		EntryA:    f.EntryA,
		EntryB:    f.EntryB,
		ScoreA:    f.ScoreA,
		ScoreB:    f.ScoreB,
		Result:    string(f.Result),
		UpdatedAt: f.UpdatedAt.UTC(),
	}
}

func fixtureResultFromModel(m fixtureResultModel) snapshot.FixtureResult {
	return snapshot.FixtureResult{
		LeagueID:  m.LeagueID,
		Gameweek:  m.Gameweek,
		EntryA:    m.EntryA,
		EntryB:    m.EntryB,
		ScoreA:    m.ScoreA,
		ScoreB:    m.ScoreB,
		Result:    h2h.Result(m.Result),
		UpdatedAt: m.UpdatedAt,
	}
}
