package httpapi

import (
	"time"

	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
	"github.com/riskibarqy/fpl-live-league/internal/domain/snapshot"
)

type leagueTeamDTO struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ManagerIDs []int  `json:"manager_ids"`
}

type leagueDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	FPLLeagueID int             `json:"fpl_league_id"`
	Cutoff      int             `json:"cutoff,omitempty"`
	Teams       []leagueTeamDTO `json:"teams,omitempty"`
	Excluded    []int           `json:"excluded,omitempty"`
}

type liveFixtureDTO struct {
	EntryA       int    `json:"entry_a"`
	NameA        string `json:"name_a"`
	ScoreA       int    `json:"score_a"`
	EntryB       int    `json:"entry_b"`
	NameB        string `json:"name_b"`
	ScoreB       int    `json:"score_b"`
	Result       string `json:"result"`
	Differential int    `json:"differential"`
}

type liveFixturesDTO struct {
	LeagueID string           `json:"league_id"`
	Gameweek int              `json:"gameweek"`
	Live     bool             `json:"live"`
	Fixtures []liveFixtureDTO `json:"fixtures"`
}

type snapshotRowDTO struct {
	EntryID        int       `json:"entry_id"`
	Name           string    `json:"name"`
	Rank           int       `json:"rank"`
	LeaguePoints   int       `json:"league_points"`
	TotalPoints    int       `json:"total_points"`
	GameweekPoints int       `json:"gameweek_points"`
	Result         string    `json:"result,omitempty"`
	Eliminated     bool      `json:"eliminated"`
	Final          bool      `json:"final"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type snapshotFixtureDTO struct {
	EntryA int    `json:"entry_a"`
	EntryB int    `json:"entry_b"`
	ScoreA int    `json:"score_a"`
	ScoreB int    `json:"score_b"`
	Result string `json:"result"`
}

type snapshotDTO struct {
	LeagueID string               `json:"league_id"`
	Gameweek int                  `json:"gameweek"`
	Final    bool                 `json:"final"`
	Rows     []snapshotRowDTO     `json:"rows"`
	Fixtures []snapshotFixtureDTO `json:"fixtures"`
}

func leagueToDTO(l league.League) leagueDTO {
	out := leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		Type:        string(l.Type),
		FPLLeagueID: l.FPLLeagueID,
		Cutoff:      l.EffectiveCutoff(),
		Excluded:    l.Excluded,
	}
	for _, team := range l.Teams {
		out.Teams = append(out.Teams, leagueTeamDTO{ID: team.ID, Name: team.Name, ManagerIDs: team.ManagerIDs})
	}
	return out
}

func snapshotToDTO(gw snapshot.Gameweek) snapshotDTO {
	out := snapshotDTO{
		LeagueID: gw.LeagueID,
		Gameweek: gw.Gameweek,
		Final:    gw.IsFinal(),
		Rows:     make([]snapshotRowDTO, 0, len(gw.Rows)),
		Fixtures: make([]snapshotFixtureDTO, 0, len(gw.Fixtures)),
	}
	for _, row := range gw.Rows {
		out.Rows = append(out.Rows, snapshotRowDTO{
			EntryID:        row.EntryID,
			Name:           row.EntryName,
			Rank:           row.Rank,
			LeaguePoints:   row.LeaguePoints,
			TotalPoints:    row.TotalPoints,
			GameweekPoints: row.GameweekPoints,
			Result:         row.Result,
			Eliminated:     row.Eliminated,
			Final:          row.Final,
			UpdatedAt:      row.UpdatedAt,
		})
	}
	for _, f := range gw.Fixtures {
		out.Fixtures = append(out.Fixtures, snapshotFixtureDTO{
			EntryA: f.EntryA,
			EntryB: f.EntryB,
			ScoreA: f.ScoreA,
			ScoreB: f.ScoreB,
			Result: string(f.Result),
		})
	}
	return out
}
