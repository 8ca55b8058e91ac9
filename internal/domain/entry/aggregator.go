package entry

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fpl-live-league/internal/domain/autosub"
	"github.com/riskibarqy/fpl-live-league/internal/domain/points"
	"github.com/riskibarqy/fpl-live-league/internal/domain/scoring"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
)

// ManagerScore is one manager's contribution to an entry.
type ManagerScore struct {
	ManagerID int
	Lineup    autosub.Lineup
	Result    scoring.Result
}

// Score is the aggregated live gameweek score of an entry.
type Score struct {
	EntryID  int
	Points   int
	Managers []ManagerScore
}

// CaptainIDs lists the armband holder of every manager, skipping managers without one.
func (s Score) CaptainIDs() []int {
	out := make([]int, 0, len(s.Managers))
	for _, m := range s.Managers {
		if id := m.Lineup.Captaincy.PlayerID; id != 0 {
			out = append(out, id)
		}
	}
	return out
}

// Chips lists the chips played, in manager order, without the empty chip.
func (s Score) Chips() []squad.Chip {
	out := make([]squad.Chip, 0, len(s.Managers))
	for _, m := range s.Managers {
		if m.Lineup.Chip != squad.ChipNone {
			out = append(out, m.Lineup.Chip)
		}
	}
	return out
}

// Aggregate scores every manager of the entry under the league rules and sums them.
func Aggregate(e Entry, selections map[int]squad.Selection, statuses autosub.Statuses, table points.Table, rules LeagueRules) (Score, error) {
	if err := e.Validate(); err != nil {
		return Score{}, err
	}

	out := Score{
		EntryID:  e.ID,
		Managers: make([]ManagerScore, 0, len(e.ManagerIDs)),
	}
	for _, managerID := range e.ManagerIDs {
		sel, ok := selections[managerID]
		if !ok {
			return Score{}, fmt.Errorf("%w: entry=%d manager=%d", ErrMissingSelection, e.ID, managerID)
		}

		lineup, err := autosub.Apply(sel, statuses, rules.options())
		if err != nil {
			return Score{}, fmt.Errorf("aggregate entry %d: %w", e.ID, err)
		}
		result := scoring.Score(lineup, table)

		out.Points += result.Total
		out.Managers = append(out.Managers, ManagerScore{
			ManagerID: managerID,
			Lineup:    lineup,
			Result:    result,
		})
	}

	return out, nil
}

// CaptainNotation groups repeated names in first-seen order, e.g. "Salah x2".
func CaptainNotation(names []string) []string {
	counts := make(map[string]int, len(names))
	order := make([]string, 0, len(names))
	for _, name := range names {
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	out := make([]string, 0, len(order))
	for _, name := range order {
		if counts[name] > 1 {
			out = append(out, fmt.Sprintf("%s x%d", name, counts[name]))
			continue
		}
		out = append(out, name)
	}
	return out
}

// JoinNotation renders CaptainNotation as a single display string.
func JoinNotation(names []string) string {
	return strings.Join(CaptainNotation(names), ", ")
}
