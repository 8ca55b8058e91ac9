package stats

import (
	"math"
	"sort"

	"github.com/riskibarqy/fpl-live-league/internal/domain/h2h"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
)

// OwnershipLimit is how many players the effective ownership table keeps.
const OwnershipLimit = 15

// Manager is one FPL manager's gameweek as seen by the statistics.
type Manager struct {
	ID        int
	Name      string
	Selection squad.Selection
	Points    int
}

// EntryPoints is the live score of a standings entry.
type EntryPoints struct {
	EntryID int
	Name    string
	Points  int
}

type Count struct {
	PlayerID int
	Count    int
}

type ChipCount struct {
	Chip  squad.Chip
	Count int
}

type Ownership struct {
	PlayerID int
	Count    int
	Percent  float64
}

// PointsSummary holds the extremes and the average of the managers' live points.
type PointsSummary struct {
	Highest         int
	HighestManagers []string
	Lowest          int
	LowestManagers  []string
	Average         float64
}

// Luck is an H2H result that went against the scores.
type Luck struct {
	EntryID    int
	OpponentID int
	Points     int
	Opponent   int
}

type Input struct {
	Managers []Manager
	Fixtures []h2h.Fixture
	// Entries are the standings entries; for team leagues they differ from Managers.
	Entries []EntryPoints
}

type Report struct {
	Captains      []Count
	MostCaptained *Count
	Chips         []ChipCount
	Points        PointsSummary
	Ownership     []Ownership
	Lucky         *Luck
	Unlucky       *Luck
	BestEntry     *EntryPoints
	BestManager   *EntryPoints
}

func Compute(in Input) Report {
	out := Report{
		Captains:  Captains(in.Managers),
		Chips:     Chips(in.Managers),
		Points:    Summarize(in.Managers),
		Ownership: EffectiveOwnership(in.Managers, OwnershipLimit),
	}
	if len(out.Captains) > 0 {
		top := out.Captains[0]
		out.MostCaptained = &top
	}
	out.Lucky, out.Unlucky = LuckOf(in.Fixtures)
	out.BestEntry = Best(in.Entries)

	managers := make([]EntryPoints, 0, len(in.Managers))
	for _, m := range in.Managers {
		managers = append(managers, EntryPoints{EntryID: m.ID, Name: m.Name, Points: m.Points})
	}
	out.BestManager = Best(managers)
	return out
}

// Captains counts the chosen captain of each manager.
func Captains(managers []Manager) []Count {
	counts := make(map[int]int, len(managers))
	for _, m := range managers {
		if m.Selection.CaptainID != 0 {
			counts[m.Selection.CaptainID]++
		}
	}
	return sortedCounts(counts)
}

func Chips(managers []Manager) []ChipCount {
	counts := make(map[squad.Chip]int)
	for _, m := range managers {
		if m.Selection.Chip != squad.ChipNone {
			counts[m.Selection.Chip]++
		}
	}
	out := make([]ChipCount, 0, len(counts))
	for chip, n := range counts {
		out = append(out, ChipCount{Chip: chip, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Chip < out[j].Chip
	})
	return out
}

func Summarize(managers []Manager) PointsSummary {
	if len(managers) == 0 {
		return PointsSummary{}
	}

	out := PointsSummary{Highest: math.MinInt, Lowest: math.MaxInt}
	sum := 0
	for _, m := range managers {
		sum += m.Points
		switch {
		case m.Points > out.Highest:
			out.Highest = m.Points
			out.HighestManagers = []string{m.Name}
		case m.Points == out.Highest:
			out.HighestManagers = append(out.HighestManagers, m.Name)
		}
		switch {
		case m.Points < out.Lowest:
			out.Lowest = m.Points
			out.LowestManagers = []string{m.Name}
		case m.Points == out.Lowest:
			out.LowestManagers = append(out.LowestManagers, m.Name)
		}
	}
	out.Average = round1(float64(sum) / float64(len(managers)))
	return out
}

// EffectiveOwnership counts starters once, the captain once per multiplier and the
// whole bench when bench boost is active. Percentages are relative to the managers.
func EffectiveOwnership(managers []Manager, limit int) []Ownership {
	if len(managers) == 0 {
		return nil
	}

	counts := make(map[int]int)
	for _, m := range managers {
		sel := m.Selection
		for _, p := range sel.Starters {
			counts[p.PlayerID]++
		}
		if sel.Chip == squad.ChipBenchBoost {
			for _, p := range sel.Bench {
				counts[p.PlayerID]++
			}
		}
		if sel.CaptainID != 0 {
			extra := 1
			if sel.Chip == squad.ChipTripleCaptain {
				extra = 2
			}
			counts[sel.CaptainID] += extra
		}
	}

	sorted := sortedCounts(counts)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]Ownership, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, Ownership{
			PlayerID: c.PlayerID,
			Count:    c.Count,
			Percent:  round1(float64(c.Count) / float64(len(managers)) * 100),
		})
	}
	return out
}

// LuckOf finds the lowest-scoring H2H winner and the highest-scoring loser. Draws and
// unresolved fixtures are skipped.
func LuckOf(fixtures []h2h.Fixture) (lucky, unlucky *Luck) {
	for _, f := range fixtures {
		var winner, loser Luck
		switch f.Outcome.Result {
		case h2h.ResultWinA:
			winner = Luck{EntryID: f.EntryA, OpponentID: f.EntryB, Points: f.ScoreA, Opponent: f.ScoreB}
			loser = Luck{EntryID: f.EntryB, OpponentID: f.EntryA, Points: f.ScoreB, Opponent: f.ScoreA}
		case h2h.ResultWinB:
			winner = Luck{EntryID: f.EntryB, OpponentID: f.EntryA, Points: f.ScoreB, Opponent: f.ScoreA}
			loser = Luck{EntryID: f.EntryA, OpponentID: f.EntryB, Points: f.ScoreA, Opponent: f.ScoreB}
		default:
			continue
		}
		if lucky == nil || winner.Points < lucky.Points {
			w := winner
			lucky = &w
		}
		if unlucky == nil || loser.Points > unlucky.Points {
			l := loser
			unlucky = &l
		}
	}
	return lucky, unlucky
}

// Best returns the highest scorer, lowest id first on ties.
func Best(entries []EntryPoints) *EntryPoints {
	var best *EntryPoints
	for i := range entries {
		e := entries[i]
		if best == nil || e.Points > best.Points || (e.Points == best.Points && e.EntryID < best.EntryID) {
			best = &e
		}
	}
	return best
}

func sortedCounts(counts map[int]int) []Count {
	out := make([]Count, 0, len(counts))
	for id, n := range counts {
		out = append(out, Count{PlayerID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
