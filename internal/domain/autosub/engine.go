package autosub

import (
	"fmt"

	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
)

const (
	captainMultiplier       = 2
	tripleCaptainMultiplier = 3
)

// Options carries the league-specific overrides chosen by the entry aggregator.
type Options struct {
	// CaptainMultiplierCap limits the captain multiplier when > 0.
	CaptainMultiplierCap int
	IgnoreBenchBoost     bool
	DeductTransferHits   bool
}

// Slot is one scored squad position.
type Slot struct {
	PlayerID   int
	Position   player.Position
	Multiplier int
	SubbedIn   bool
	SubbedOut  bool
}

// Substitution records a bench player replacing an inactive starter. Pending is set
// when the bench player's own fixture has not finished yet.
type Substitution struct {
	OutPlayerID int
	InPlayerID  int
	Pending     bool
}

// Captaincy describes who carries the armband multiplier after substitutions.
// PlayerID is zero when neither captain nor vice captain is active.
type Captaincy struct {
	PlayerID            int
	Multiplier          int
	ViceCaptainPromoted bool
}

// Lineup is the effective team of one manager for the gameweek. Bench holds the
// unused substitutes in bench order followed by any starters they replaced.
type Lineup struct {
	EntryID       int
	Chip          squad.Chip
	Starters      []Slot
	Bench         []Slot
	Substitutions []Substitution
	Captaincy     Captaincy
	BenchBoost    bool
	TransferCost  int
}

// Scored returns every slot that contributes points.
func (l Lineup) Scored() []Slot {
	if !l.BenchBoost {
		return l.Starters
	}
	out := make([]Slot, 0, len(l.Starters)+len(l.Bench))
	out = append(out, l.Starters...)
	out = append(out, l.Bench...)
	return out
}

// Apply resolves automatic substitutions and the captain multiplier.
//
// Starters are visited in squad order. An inactive starter is replaced by the first
// unused bench player of the same kind (goalkeeper for goalkeeper, outfield for
// outfield) that keeps the eleven formation legal and is not itself confirmed
// inactive. A bench player still waiting on their fixture takes the slot provisionally.
func Apply(sel squad.Selection, statuses Statuses, opts Options) (Lineup, error) {
	if err := sel.Validate(); err != nil {
		return Lineup{}, fmt.Errorf("entry %d: %w", sel.EntryID, err)
	}

	out := Lineup{
		EntryID:    sel.EntryID,
		Chip:       sel.Chip,
		Starters:   make([]Slot, 0, squad.StarterCount),
		BenchBoost: sel.Chip == squad.ChipBenchBoost && !opts.IgnoreBenchBoost,
	}
	if opts.DeductTransferHits {
		out.TransferCost = sel.TransferCost
	}
	for _, p := range sel.Starters {
		out.Starters = append(out.Starters, Slot{PlayerID: p.PlayerID, Position: p.Position, Multiplier: 1})
	}

	used := make([]bool, len(sel.Bench))
	if !out.BenchBoost {
		out.Substitutions = substitute(out.Starters, sel.Bench, statuses, used)
	}

	benchMultiplier := 0
	if out.BenchBoost {
		benchMultiplier = 1
	}
	for i, p := range sel.Bench {
		if used[i] {
			continue
		}
		out.Bench = append(out.Bench, Slot{PlayerID: p.PlayerID, Position: p.Position, Multiplier: benchMultiplier})
	}
	// Replaced starters sit at the end of the bench and never score.
	for _, sub := range out.Substitutions {
		for _, p := range sel.Starters {
			if p.PlayerID == sub.OutPlayerID {
				out.Bench = append(out.Bench, Slot{PlayerID: p.PlayerID, Position: p.Position, SubbedOut: true})
				break
			}
		}
	}

	out.Captaincy = assignCaptaincy(&out, sel, statuses, captainMultiplierFor(sel.Chip, opts))
	return out, nil
}

func substitute(starters []Slot, bench []squad.Pick, statuses Statuses, used []bool) []Substitution {
	formation := formationOfSlots(starters)
	subs := make([]Substitution, 0, len(bench))

	for i, starter := range starters {
		if !statuses.Of(starter.PlayerID).Inactive() {
			continue
		}

		for j, candidate := range bench {
			if used[j] {
				continue
			}
			if isGoalkeeper(starter.Position) != isGoalkeeper(candidate.Position) {
				continue
			}
			next := formation.Swap(starter.Position, candidate.Position)
			if !next.Legal() {
				continue
			}
			candidateStatus := statuses.Of(candidate.PlayerID)
			if candidateStatus.Inactive() {
				continue
			}

			used[j] = true
			formation = next
			starters[i] = Slot{
				PlayerID:   candidate.PlayerID,
				Position:   candidate.Position,
				Multiplier: 1,
				SubbedIn:   true,
			}
			subs = append(subs, Substitution{
				OutPlayerID: starter.PlayerID,
				InPlayerID:  candidate.PlayerID,
				Pending:     !candidateStatus.Played(),
			})
			break
		}
	}

	return subs
}

func assignCaptaincy(lineup *Lineup, sel squad.Selection, statuses Statuses, multiplier int) Captaincy {
	slots := lineup.Scored()

	set := func(playerID int) bool {
		for i := range lineup.Starters {
			if lineup.Starters[i].PlayerID == playerID {
				lineup.Starters[i].Multiplier = multiplier
				return true
			}
		}
		if !lineup.BenchBoost {
			return false
		}
		for i := range lineup.Bench {
			if lineup.Bench[i].PlayerID == playerID {
				lineup.Bench[i].Multiplier = multiplier
				return true
			}
		}
		return false
	}

	if inSlots(slots, sel.CaptainID) && !statuses.Of(sel.CaptainID).Inactive() {
		set(sel.CaptainID)
		return Captaincy{PlayerID: sel.CaptainID, Multiplier: multiplier}
	}
	if inSlots(slots, sel.ViceCaptainID) && !statuses.Of(sel.ViceCaptainID).Inactive() {
		set(sel.ViceCaptainID)
		return Captaincy{PlayerID: sel.ViceCaptainID, Multiplier: multiplier, ViceCaptainPromoted: true}
	}
	return Captaincy{Multiplier: 1}
}

func captainMultiplierFor(chip squad.Chip, opts Options) int {
	multiplier := captainMultiplier
	if chip == squad.ChipTripleCaptain {
		multiplier = tripleCaptainMultiplier
	}
	if opts.CaptainMultiplierCap > 0 && multiplier > opts.CaptainMultiplierCap {
		multiplier = opts.CaptainMultiplierCap
	}
	return multiplier
}

func inSlots(slots []Slot, playerID int) bool {
	for _, s := range slots {
		if s.PlayerID == playerID {
			return true
		}
	}
	return false
}

func formationOfSlots(slots []Slot) squad.Formation {
	var f squad.Formation
	for _, s := range slots {
		f = f.With(s.Position, 1)
	}
	return f
}

func isGoalkeeper(pos player.Position) bool {
	return pos == player.PositionGoalkeeper
}
