package squad

import (
	"fmt"

	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
)

// Formation counts starters per position.
type Formation struct {
	Goalkeepers int
	Defenders   int
	Midfielders int
	Forwards    int
}

func FormationOf(picks []Pick) Formation {
	var f Formation
	for _, p := range picks {
		f = f.With(p.Position, 1)
	}
	return f
}

// With returns the formation after adding delta players of a position.
func (f Formation) With(pos player.Position, delta int) Formation {
	switch pos {
	case player.PositionGoalkeeper:
		f.Goalkeepers += delta
	case player.PositionDefender:
		f.Defenders += delta
	case player.PositionMidfielder:
		f.Midfielders += delta
	case player.PositionForward:
		f.Forwards += delta
	}
	return f
}

// Swap returns the formation after out is replaced by in.
func (f Formation) Swap(out, in player.Position) Formation {
	return f.With(out, -1).With(in, 1)
}

func (f Formation) Total() int {
	return f.Goalkeepers + f.Defenders + f.Midfielders + f.Forwards
}

// Legal reports 1 GK, 3-5 DEF, 2-5 MID, 1-3 FWD and 11 players.
func (f Formation) Legal() bool {
	return f.Goalkeepers == 1 &&
		f.Defenders >= 3 && f.Defenders <= 5 &&
		f.Midfielders >= 2 && f.Midfielders <= 5 &&
		f.Forwards >= 1 && f.Forwards <= 3 &&
		f.Total() == StarterCount
}

func (f Formation) String() string {
	return fmt.Sprintf("%d-%d-%d-%d", f.Goalkeepers, f.Defenders, f.Midfielders, f.Forwards)
}
