package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fpl-live-league/internal/domain/autosub"
	"github.com/riskibarqy/fpl-live-league/internal/domain/differential"
	"github.com/riskibarqy/fpl-live-league/internal/domain/h2h"
)

// LeagueStateReader returns the latest computed state of a league.
type LeagueStateReader interface {
	State(ctx context.Context, leagueID string) (LeagueState, error)
}

type DifferentialItem struct {
	PlayerID       int    `json:"player_id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	Points         int    `json:"points"`
	Count          int    `json:"count"`
	CountLabel     string `json:"count_label"`
	WeightedPoints int    `json:"weighted_points"`
}

type DifferentialSide struct {
	EntryID int                `json:"entry_id"`
	Name    string             `json:"name"`
	Points  int                `json:"points"`
	Items   []DifferentialItem `json:"items"`
}

// PairDifferentials compares the effective elevens of two entries.
type PairDifferentials struct {
	LeagueID string           `json:"league_id"`
	Gameweek int              `json:"gameweek"`
	SideA    DifferentialSide `json:"side_a"`
	SideB    DifferentialSide `json:"side_b"`
	// Net is the live points swing in favour of side A.
	Net int `json:"net"`
}

type DifferentialService struct {
	states LeagueStateReader
}

func NewDifferentialService(states LeagueStateReader) *DifferentialService {
	return &DifferentialService{states: states}
}

// ForPair compares two entries. When entryB is zero the H2H opponent of entryA is used.
func (s *DifferentialService) ForPair(ctx context.Context, leagueID string, entryA, entryB int) (PairDifferentials, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DifferentialService.ForPair")
	defer span.End()

	if entryA <= 0 || entryB < 0 || entryA == entryB {
		return PairDifferentials{}, fmt.Errorf("%w: two distinct entry ids are required", ErrInvalidInput)
	}

	state, err := s.states.State(ctx, leagueID)
	if err != nil {
		return PairDifferentials{}, err
	}
	if entryB == 0 {
		f, ok := fixtureFor(state.Result.Fixtures, entryA)
		if !ok {
			return PairDifferentials{}, fmt.Errorf("%w: entry=%d has no opponent this gameweek", ErrNotFound, entryA)
		}
		entryB = f.Opponent(entryA)
	}
	return state.Differentials(entryA, entryB)
}

// ForLeague returns the differentials of every H2H fixture of the gameweek.
func (s *DifferentialService) ForLeague(ctx context.Context, leagueID string) ([]PairDifferentials, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DifferentialService.ForLeague")
	defer span.End()

	state, err := s.states.State(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	out := make([]PairDifferentials, 0, len(state.Result.Fixtures))
	for _, f := range state.Result.Fixtures {
		pair, err := state.Differentials(f.EntryA, f.EntryB)
		if err != nil {
			return nil, err
		}
		out = append(out, pair)
	}
	return out, nil
}

// Differentials compares two entries of the computed state.
func (s LeagueState) Differentials(entryA, entryB int) (PairDifferentials, error) {
	lineupsA, sideA, err := s.side(entryA)
	if err != nil {
		return PairDifferentials{}, err
	}
	lineupsB, sideB, err := s.side(entryB)
	if err != nil {
		return PairDifferentials{}, err
	}

	report := differential.Analyze(lineupsA, lineupsB, s.Result.Statuses, s.Result.Points)
	sideA.Items = s.differentialItems(report.SideA)
	sideB.Items = s.differentialItems(report.SideB)

	return PairDifferentials{
		LeagueID: s.League.ID,
		Gameweek: s.Gameweek,
		SideA:    sideA,
		SideB:    sideB,
		Net:      report.Net(),
	}, nil
}

func (s LeagueState) side(entryID int) ([]autosub.Lineup, DifferentialSide, error) {
	e, ok := s.EntryByID(entryID)
	if !ok {
		return nil, DifferentialSide{}, fmt.Errorf("%w: entry=%d league=%s", ErrNotFound, entryID, s.League.ID)
	}
	score := s.Result.Scores[e.ID]
	lineups := make([]autosub.Lineup, 0, len(score.Managers))
	for _, ms := range score.Managers {
		lineups = append(lineups, ms.Lineup)
	}
	return lineups, DifferentialSide{EntryID: e.ID, Name: e.Name, Points: score.Points}, nil
}

func (s LeagueState) differentialItems(items []differential.Item) []DifferentialItem {
	out := make([]DifferentialItem, 0, len(items))
	for _, item := range items {
		out = append(out, DifferentialItem{
			PlayerID:       item.PlayerID,
			Name:           s.Players.Name(item.PlayerID),
			Status:         string(item.Status),
			Points:         item.Points,
			Count:          item.Count,
			CountLabel:     countLabel(item.Count),
			WeightedPoints: item.WeightedPoints,
		})
	}
	return out
}

// countLabel renders multiples as x2, x3 and leaves single ownership blank.
func countLabel(count int) string {
	if count <= 1 {
		return ""
	}
	return fmt.Sprintf("x%d", count)
}

func fixtureFor(fixtures []h2h.Fixture, entryID int) (h2h.Fixture, bool) {
	for _, f := range fixtures {
		if f.Involves(entryID) {
			return f, true
		}
	}
	return h2h.Fixture{}, false
}
