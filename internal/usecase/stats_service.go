package usecase

import (
	"context"
	"sort"

	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
	"github.com/riskibarqy/fpl-live-league/internal/domain/stats"
)

type PlayerCount struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

type ChipUsage struct {
	Chip  string `json:"chip"`
	Count int    `json:"count"`
}

type PlayerOwnership struct {
	PlayerID int     `json:"player_id"`
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

type PointsSummary struct {
	Highest         int      `json:"highest"`
	HighestManagers []string `json:"highest_managers"`
	Lowest          int      `json:"lowest"`
	LowestManagers  []string `json:"lowest_managers"`
	Average         float64  `json:"average"`
}

// LuckResult is an H2H result that went against the scores.
type LuckResult struct {
	EntryID      int    `json:"entry_id"`
	Name         string `json:"name"`
	Points       int    `json:"points"`
	OpponentID   int    `json:"opponent_id"`
	OpponentName string `json:"opponent_name"`
	Opponent     int    `json:"opponent_points"`
}

type TopScorer struct {
	EntryID int    `json:"entry_id"`
	Name    string `json:"name"`
	Points  int    `json:"points"`
}

type GameweekStats struct {
	LeagueID      string            `json:"league_id"`
	Gameweek      int               `json:"gameweek"`
	Managers      int               `json:"managers"`
	Captains      []PlayerCount     `json:"captains"`
	MostCaptained *PlayerCount      `json:"most_captained,omitempty"`
	Chips         []ChipUsage       `json:"chips"`
	Points        PointsSummary     `json:"points"`
	Ownership     []PlayerOwnership `json:"effective_ownership"`
	Lucky         *LuckResult       `json:"lucky,omitempty"`
	Unlucky       *LuckResult       `json:"unlucky,omitempty"`
	BestTeam      *TopScorer        `json:"best_team,omitempty"`
	BestManager   *TopScorer        `json:"best_manager,omitempty"`
}

type StatsService struct {
	states LeagueStateReader
}

func NewStatsService(states LeagueStateReader) *StatsService {
	return &StatsService{states: states}
}

func (s *StatsService) Gameweek(ctx context.Context, leagueID string) (GameweekStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Gameweek")
	defer span.End()

	state, err := s.states.State(ctx, leagueID)
	if err != nil {
		return GameweekStats{}, err
	}
	return state.Stats(), nil
}

// Stats summarises the managers of the computed state.
func (s LeagueState) Stats() GameweekStats {
	managers := make([]stats.Manager, 0, len(s.Managers))
	for _, score := range s.Result.Scores {
		for _, ms := range score.Managers {
			m := s.Managers[ms.ManagerID]
			managers = append(managers, stats.Manager{
				ID:        ms.ManagerID,
				Name:      m.Name,
				Selection: m.Picks.Selection,
				Points:    ms.Result.Total,
			})
		}
	}
	sort.Slice(managers, func(i, j int) bool { return managers[i].ID < managers[j].ID })

	var entries []stats.EntryPoints
	if s.League.Type == league.TypeTeamH2H {
		entries = make([]stats.EntryPoints, 0, len(s.Entries))
		for _, e := range s.Entries {
			entries = append(entries, stats.EntryPoints{EntryID: e.ID, Name: e.Name, Points: s.Result.Scores[e.ID].Points})
		}
	}

	report := stats.Compute(stats.Input{
		Managers: managers,
		Fixtures: s.Result.Fixtures,
		Entries:  entries,
	})

	out := GameweekStats{
		LeagueID:  s.League.ID,
		Gameweek:  s.Gameweek,
		Managers:  len(managers),
		Captains:  make([]PlayerCount, 0, len(report.Captains)),
		Chips:     make([]ChipUsage, 0, len(report.Chips)),
		Ownership: make([]PlayerOwnership, 0, len(report.Ownership)),
		Points: PointsSummary{
			Highest:         report.Points.Highest,
			HighestManagers: report.Points.HighestManagers,
			Lowest:          report.Points.Lowest,
			LowestManagers:  report.Points.LowestManagers,
			Average:         report.Points.Average,
		},
	}
	for _, c := range report.Captains {
		out.Captains = append(out.Captains, PlayerCount{PlayerID: c.PlayerID, Name: s.Players.Name(c.PlayerID), Count: c.Count})
	}
	if len(out.Captains) > 0 {
		top := out.Captains[0]
		out.MostCaptained = &top
	}
	for _, c := range report.Chips {
		out.Chips = append(out.Chips, ChipUsage{Chip: string(c.Chip), Count: c.Count})
	}
	for _, o := range report.Ownership {
		out.Ownership = append(out.Ownership, PlayerOwnership{
			PlayerID: o.PlayerID,
			Name:     s.Players.Name(o.PlayerID),
			Count:    o.Count,
			Percent:  o.Percent,
		})
	}
	out.Lucky = s.luckResult(report.Lucky)
	out.Unlucky = s.luckResult(report.Unlucky)
	out.BestTeam = topScorer(report.BestEntry)
	out.BestManager = topScorer(report.BestManager)
	return out
}

func (s LeagueState) luckResult(l *stats.Luck) *LuckResult {
	if l == nil {
		return nil
	}
	return &LuckResult{
		EntryID:      l.EntryID,
		Name:         s.entryName(l.EntryID),
		Points:       l.Points,
		OpponentID:   l.OpponentID,
		OpponentName: s.entryName(l.OpponentID),
		Opponent:     l.Opponent,
	}
}

func (s LeagueState) entryName(entryID int) string {
	if e, ok := s.EntryByID(entryID); ok {
		return e.Name
	}
	return ""
}

func topScorer(e *stats.EntryPoints) *TopScorer {
	if e == nil {
		return nil
	}
	return &TopScorer{EntryID: e.EntryID, Name: e.Name, Points: e.Points}
}
