package player

import "fmt"

// Position represents the FPL position categories used by formation rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// PositionFromElementType maps the FPL element_type code (1..4) to a Position.
func PositionFromElementType(code int) (Position, error) {
	switch code {
	case 1:
		return PositionGoalkeeper, nil
	case 2:
		return PositionDefender, nil
	case 3:
		return PositionMidfielder, nil
	case 4:
		return PositionForward, nil
	default:
		return "", fmt.Errorf("unknown element type %d", code)
	}
}

// Player is one FPL element from the season bootstrap.
type Player struct {
	ID       int
	TeamID   int
	WebName  string
	Position Position
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id must be greater than zero")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}

// Directory indexes bootstrap players by id.
type Directory map[int]Player

func NewDirectory(players []Player) Directory {
	out := make(Directory, len(players))
	for _, p := range players {
		out[p.ID] = p
	}
	return out
}

// Name returns the display name of a player or "Unknown".
func (d Directory) Name(id int) string {
	if p, ok := d[id]; ok && p.WebName != "" {
		return p.WebName
	}
	return "Unknown"
}
