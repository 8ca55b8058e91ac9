package usecase

import (
	"time"

	"github.com/riskibarqy/fpl-live-league/internal/domain/entry"
	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
	"github.com/riskibarqy/fpl-live-league/internal/engine"
)

// Manager is one FPL manager taking part in a league gameweek.
type Manager struct {
	ID        int
	Name      string
	EntryName string
	Picks     ExternalPicks
}

// LeagueState is the outcome of one refresh, kept for the read endpoints.
type LeagueState struct {
	League     league.League
	Gameweek   int
	RunID      string
	ComputedAt time.Time
	Final      bool
	Players    player.Directory
	Entries    []entry.Entry
	Managers   map[int]Manager
	Result     engine.Result
}

// EntryByID returns the standings entry with the given id.
func (s LeagueState) EntryByID(entryID int) (entry.Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return entry.Entry{}, false
}

type LiveStandings struct {
	LeagueID  string             `json:"league_id"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	Gameweek  int                `json:"gameweek"`
	Live      bool               `json:"live"`
	Final     bool               `json:"final"`
	RunID     string             `json:"run_id"`
	UpdatedAt time.Time          `json:"updated_at"`
	Rows      []LiveStandingRow  `json:"rows"`
	Fixtures  []LiveFixtureScore `json:"fixtures"`
}

type LiveStandingRow struct {
	EntryID        int      `json:"entry_id"`
	Name           string   `json:"name"`
	Rank           int      `json:"rank"`
	RankDelta      int      `json:"rank_delta"`
	IsNew          bool     `json:"is_new"`
	LeaguePoints   int      `json:"league_points"`
	GameweekPoints int      `json:"gameweek_points"`
	TotalPoints    int      `json:"total_points"`
	OverallRank    int      `json:"overall_rank,omitempty"`
	Chips          []string `json:"chips"`
	Result         string   `json:"result,omitempty"`
	Captain        string   `json:"captain,omitempty"`
	Eliminated     bool     `json:"eliminated"`
}

type LiveFixtureScore struct {
	EntryA       int    `json:"entry_a"`
	EntryB       int    `json:"entry_b"`
	ScoreA       int    `json:"score_a"`
	ScoreB       int    `json:"score_b"`
	Result       string `json:"result"`
	Differential int    `json:"differential"`
}

// ToLiveStandings renders the state in its published form.
func (s LeagueState) ToLiveStandings() LiveStandings {
	out := LiveStandings{
		LeagueID:  s.League.ID,
		Name:      s.League.Name,
		Type:      string(s.League.Type),
		Gameweek:  s.Gameweek,
		Live:      s.Result.Live,
		Final:     s.Final,
		RunID:     s.RunID,
		UpdatedAt: s.ComputedAt,
		Rows:      make([]LiveStandingRow, 0, len(s.Result.Standings)),
		Fixtures:  make([]LiveFixtureScore, 0, len(s.Result.Fixtures)),
	}
	for _, row := range s.Result.Standings {
		out.Rows = append(out.Rows, LiveStandingRow{
			EntryID:        row.EntryID,
			Name:           row.Name,
			Rank:           row.Rank,
			RankDelta:      row.RankDelta.Value,
			IsNew:          row.RankDelta.New,
			LeaguePoints:   row.LeaguePoints,
			GameweekPoints: row.GameweekPoints,
			TotalPoints:    row.TotalPoints,
			OverallRank:    row.OverallRank,
			Chips:          chipNames(row.Chips),
			Result:         row.Result,
			Captain:        row.Captain,
			Eliminated:     row.Eliminated,
		})
	}
	for _, f := range s.Result.Fixtures {
		out.Fixtures = append(out.Fixtures, LiveFixtureScore{
			EntryA:       f.EntryA,
			EntryB:       f.EntryB,
			ScoreA:       f.ScoreA,
			ScoreB:       f.ScoreB,
			Result:       string(f.Outcome.Result),
			Differential: f.Outcome.Differential,
		})
	}
	return out
}

func chipNames(chips []squad.Chip) []string {
	out := make([]string, 0, len(chips))
	for _, c := range chips {
		out = append(out, string(c))
	}
	return out
}
