package h2h

// Result of a head-to-head pairing, seen from side A.
type Result string

const (
	ResultUnresolved Result = ""
	ResultWinA       Result = "A"
	ResultDraw       Result = "D"
	ResultWinB       Result = "B"
)

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

type Side int

const (
	SideA Side = iota
	SideB
)

// Outcome is the resolved result of two scores.
type Outcome struct {
	Result       Result
	Differential int
}

// Resolve compares two live scores. Exactly one result is produced.
func Resolve(a, b int) Outcome {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	switch {
	case a > b:
		return Outcome{Result: ResultWinA, Differential: diff}
	case a < b:
		return Outcome{Result: ResultWinB, Differential: diff}
	default:
		return Outcome{Result: ResultDraw}
	}
}

// LeaguePoints awarded to one side.
func (o Outcome) LeaguePoints(side Side) int {
	switch o.Result {
	case ResultDraw:
		return PointsDraw
	case ResultWinA:
		if side == SideA {
			return PointsWin
		}
	case ResultWinB:
		if side == SideB {
			return PointsWin
		}
	}
	return PointsLoss
}

// Letter returns the W/D/L letter for one side, empty when unresolved.
func (o Outcome) Letter(side Side) string {
	switch o.Result {
	case ResultUnresolved:
		return ""
	case ResultDraw:
		return "D"
	}
	if o.LeaguePoints(side) == PointsWin {
		return "W"
	}
	return "L"
}

// Fixture is one pairing of a gameweek.
type Fixture struct {
	Gameweek int
	EntryA   int
	EntryB   int
	ScoreA   int
	ScoreB   int
	Outcome  Outcome
}

// Involves reports whether the entry plays in the fixture.
func (f Fixture) Involves(entryID int) bool {
	return f.EntryA == entryID || f.EntryB == entryID
}

// SideOf returns the side of an entry in the fixture.
func (f Fixture) SideOf(entryID int) (Side, bool) {
	switch entryID {
	case f.EntryA:
		return SideA, true
	case f.EntryB:
		return SideB, true
	default:
		return SideA, false
	}
}

// Opponent returns the other entry id.
func (f Fixture) Opponent(entryID int) int {
	if f.EntryA == entryID {
		return f.EntryB
	}
	return f.EntryA
}

// Pairing is an unscored fixture.
type Pairing struct {
	EntryA int
	EntryB int
}

// ResolveAll scores every pairing. Entries missing from scores count as zero.
func ResolveAll(gameweek int, pairings []Pairing, scores map[int]int) []Fixture {
	out := make([]Fixture, 0, len(pairings))
	for _, p := range pairings {
		a, b := scores[p.EntryA], scores[p.EntryB]
		out = append(out, Fixture{
			Gameweek: gameweek,
			EntryA:   p.EntryA,
			EntryB:   p.EntryB,
			ScoreA:   a,
			ScoreB:   b,
			Outcome:  Resolve(a, b),
		})
	}
	return out
}
