package squad

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
)

var (
	ErrInvalidSquadSize      = errors.New("invalid squad size")
	ErrIllegalFormation      = errors.New("starting eleven is not formation legal")
	ErrCaptainNotInSquad     = errors.New("captain is not in the squad")
	ErrViceCaptainNotInSquad = errors.New("vice captain is not in the squad")
	ErrDuplicatePlayer       = errors.New("duplicate player in squad")
	ErrUnknownPosition       = errors.New("unknown player position")
	ErrCaptainIsViceCaptain  = errors.New("captain and vice captain must differ")
)

const (
	StarterCount = 11
	MaxBench     = 4
)

// Chip is the active chip code as FPL reports it.
type Chip string

const (
	ChipNone             Chip = ""
	ChipTripleCaptain    Chip = "3xc"
	ChipBenchBoost       Chip = "bboost"
	ChipFreeHit          Chip = "freehit"
	ChipWildcard         Chip = "wildcard"
	ChipAssistantManager Chip = "manager"
)

var knownChips = map[Chip]struct{}{
	ChipNone:             {},
	ChipTripleCaptain:    {},
	ChipBenchBoost:       {},
	ChipFreeHit:          {},
	ChipWildcard:         {},
	ChipAssistantManager: {},
}

// NormalizeChip maps unknown codes to ChipNone so scoring never branches on them.
func NormalizeChip(raw string) Chip {
	chip := Chip(raw)
	if _, ok := knownChips[chip]; ok {
		return chip
	}
	return ChipNone
}

// Pick is one squad slot.
type Pick struct {
	PlayerID int
	Position player.Position
}

// Selection is a manager's squad for one gameweek.
type Selection struct {
	EntryID       int
	Gameweek      int
	Starters      []Pick
	Bench         []Pick
	CaptainID     int
	ViceCaptainID int
	Chip          Chip
	// TransferCost is the points hit taken this gameweek.
	TransferCost int
}

// PlayerIDs returns starters followed by bench in squad order.
func (s Selection) PlayerIDs() []int {
	out := make([]int, 0, len(s.Starters)+len(s.Bench))
	for _, p := range s.Starters {
		out = append(out, p.PlayerID)
	}
	for _, p := range s.Bench {
		out = append(out, p.PlayerID)
	}
	return out
}

func (s Selection) Contains(playerID int) bool {
	for _, id := range s.PlayerIDs() {
		if id == playerID {
			return true
		}
	}
	return false
}

// Validate checks the invariants the engine relies on.
func (s Selection) Validate() error {
	if len(s.Starters) != StarterCount {
		return fmt.Errorf("%w: expected %d starters, got %d", ErrInvalidSquadSize, StarterCount, len(s.Starters))
	}
	if len(s.Bench) > MaxBench {
		return fmt.Errorf("%w: expected at most %d bench players, got %d", ErrInvalidSquadSize, MaxBench, len(s.Bench))
	}

	seen := make(map[int]struct{}, len(s.Starters)+len(s.Bench))
	for _, p := range append(append([]Pick(nil), s.Starters...), s.Bench...) {
		if _, ok := player.AllPositions[p.Position]; !ok {
			return fmt.Errorf("%w: player=%d position=%q", ErrUnknownPosition, p.PlayerID, p.Position)
		}
		if _, dup := seen[p.PlayerID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicatePlayer, p.PlayerID)
		}
		seen[p.PlayerID] = struct{}{}
	}

	if formation := FormationOf(s.Starters); !formation.Legal() {
		return fmt.Errorf("%w: %s", ErrIllegalFormation, formation)
	}

	if _, ok := seen[s.CaptainID]; !ok {
		return fmt.Errorf("%w: %d", ErrCaptainNotInSquad, s.CaptainID)
	}
	if _, ok := seen[s.ViceCaptainID]; !ok {
		return fmt.Errorf("%w: %d", ErrViceCaptainNotInSquad, s.ViceCaptainID)
	}
	if s.CaptainID == s.ViceCaptainID {
		return fmt.Errorf("%w: %d", ErrCaptainIsViceCaptain, s.CaptainID)
	}

	return nil
}
