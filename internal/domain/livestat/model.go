package livestat

// Event is one scoring event identifier of the FPL live feed.
type Event string

const (
	EventGoalsScored           Event = "goals_scored"
	EventAssists               Event = "assists"
	EventCleanSheets           Event = "clean_sheets"
	EventGoalsConceded         Event = "goals_conceded"
	EventOwnGoals              Event = "own_goals"
	EventPenaltiesSaved        Event = "penalties_saved"
	EventPenaltiesMissed       Event = "penalties_missed"
	EventYellowCards           Event = "yellow_cards"
	EventRedCards              Event = "red_cards"
	EventSaves                 Event = "saves"
	EventDefensiveContribution Event = "defensive_contribution"
)

// Stat is one player's raw line in one fixture.
type Stat struct {
	PlayerID  int
	TeamID    int
	FixtureID int
	Minutes   int
	BPS       int
	Events    map[Event]int
	// OfficialBonus is only meaningful once the fixture has its bonus posted.
	OfficialBonus int
}

func (s Stat) Count(event Event) int {
	if s.Events == nil {
		return 0
	}
	return s.Events[event]
}

// Snapshot is every stat line of a gameweek, grouped by player.
type Snapshot struct {
	Gameweek int
	byPlayer map[int][]Stat
}

func NewSnapshot(gameweek int, stats []Stat) Snapshot {
	byPlayer := make(map[int][]Stat, len(stats))
	for _, s := range stats {
		byPlayer[s.PlayerID] = append(byPlayer[s.PlayerID], s)
	}
	return Snapshot{Gameweek: gameweek, byPlayer: byPlayer}
}

// Player returns the stat lines of one player. Missing players return nil.
func (s Snapshot) Player(playerID int) []Stat {
	return s.byPlayer[playerID]
}

// Minutes is the player's total minutes across the gameweek.
func (s Snapshot) Minutes(playerID int) int {
	total := 0
	for _, st := range s.byPlayer[playerID] {
		total += st.Minutes
	}
	return total
}

// ByFixture groups all stat lines per fixture id.
func (s Snapshot) ByFixture() map[int][]Stat {
	out := make(map[int][]Stat)
	for _, lines := range s.byPlayer {
		for _, st := range lines {
			out[st.FixtureID] = append(out[st.FixtureID], st)
		}
	}
	return out
}

func (s Snapshot) Len() int {
	return len(s.byPlayer)
}
