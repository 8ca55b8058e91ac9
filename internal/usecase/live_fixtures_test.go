package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/riskibarqy/fpl-live-league/internal/domain/fixture"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
)

const testGameweek = 20

var testPositions = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender, player.PositionDefender, player.PositionDefender, player.PositionDefender,
	player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder,
	player.PositionForward, player.PositionForward,
	player.PositionGoalkeeper, player.PositionDefender, player.PositionMidfielder, player.PositionForward,
}

// stubFPL serves one finished gameweek where players 1-11 played 90 minutes and
// player 10 scored once.
type stubFPL struct {
	mu         sync.Mutex
	fixtures   []fixture.Fixture
	live       []livestat.Stat
	picks      map[int]ExternalPicks
	matches    []ExternalH2HMatch
	standings  []ExternalStanding
	classic    []ExternalStanding
	picksErr   error
	picksCalls atomic.Int32
	bootCalls  atomic.Int32
	liveCalls  atomic.Int32
	currentGW  int
}

func newStubFPL() *stubFPL {
	live := make([]livestat.Stat, 0, 11)
	for id := 1; id <= 11; id++ {
		stat := livestat.Stat{PlayerID: id, TeamID: 1, FixtureID: 500, Minutes: 90}
		if id == 10 {
			stat.Events = map[livestat.Event]int{livestat.EventGoalsScored: 1}
		}
		live = append(live, stat)
	}

	return &stubFPL{
		currentGW: testGameweek,
		fixtures: []fixture.Fixture{
			{ID: 500, Gameweek: testGameweek, HomeTeamID: 1, AwayTeamID: 2, Status: fixture.StatusFinished, BonusPosted: true},
		},
		live: live,
		picks: map[int]ExternalPicks{
			101: {Selection: testSelection(101, 10, squad.ChipNone, 0), OverallRank: 1200},
			102: {Selection: testSelection(102, 1, squad.ChipNone, 4), OverallRank: 5400},
		},
		matches: []ExternalH2HMatch{
			{Gameweek: testGameweek, EntryA: 101, NameA: "Ann FC", EntryB: 102, NameB: "Ben FC"},
		},
		standings: []ExternalStanding{
			{EntryID: 101, EntryName: "Ann FC", PlayerName: "Ann", Rank: 2, LeaguePoints: 30, TotalPoints: 900, EventTotal: 55},
			{EntryID: 102, EntryName: "Ben FC", PlayerName: "Ben", Rank: 1, LeaguePoints: 33, TotalPoints: 880, EventTotal: 61},
		},
	}
}

func testDirectory() []player.Player {
	out := make([]player.Player, 0, len(testPositions))
	for i, pos := range testPositions {
		out = append(out, player.Player{ID: i + 1, TeamID: 1, WebName: "P" + string(rune('A'+i)), Position: pos})
	}
	return out
}

func testSelection(entryID, captainID int, chip squad.Chip, transferCost int) squad.Selection {
	sel := squad.Selection{
		EntryID:       entryID,
		Gameweek:      testGameweek,
		CaptainID:     captainID,
		ViceCaptainID: 11,
		Chip:          chip,
		TransferCost:  transferCost,
	}
	if captainID == 11 {
		sel.ViceCaptainID = 10
	}
	for i, pos := range testPositions {
		pick := squad.Pick{PlayerID: i + 1, Position: pos}
		if i < squad.StarterCount {
			sel.Starters = append(sel.Starters, pick)
			continue
		}
		sel.Bench = append(sel.Bench, pick)
	}
	return sel
}

func (s *stubFPL) FetchBootstrap(context.Context) (ExternalBootstrap, error) {
	s.bootCalls.Add(1)
	return ExternalBootstrap{CurrentGameweek: s.currentGW, Players: testDirectory()}, nil
}

func (s *stubFPL) FetchLiveStats(context.Context, int) ([]livestat.Stat, error) {
	s.liveCalls.Add(1)
	return s.live, nil
}

func (s *stubFPL) FetchFixtures(context.Context, int) ([]fixture.Fixture, error) {
	return s.fixtures, nil
}

func (s *stubFPL) FetchPicks(_ context.Context, managerID, _ int) (ExternalPicks, error) {
	s.picksCalls.Add(1)
	if s.picksErr != nil {
		return ExternalPicks{}, s.picksErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	picks, ok := s.picks[managerID]
	if !ok {
		return ExternalPicks{}, ErrNotFound
	}
	return picks, nil
}

func (s *stubFPL) FetchH2HMatches(context.Context, int, int) ([]ExternalH2HMatch, error) {
	return s.matches, nil
}

func (s *stubFPL) FetchH2HStandings(context.Context, int) ([]ExternalStanding, error) {
	return s.standings, nil
}

func (s *stubFPL) FetchClassicStandings(context.Context, int) ([]ExternalStanding, error) {
	return s.classic, nil
}

type recordingLiveStore struct {
	mu        sync.Mutex
	published []LiveStandings
	err       error
}

func (r *recordingLiveStore) Publish(_ context.Context, standings LiveStandings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.published = append(r.published, standings)
	return nil
}

func (r *recordingLiveStore) Latest(_ context.Context, leagueID string) (LiveStandings, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.published) - 1; i >= 0; i-- {
		if r.published[i].LeagueID == leagueID {
			return r.published[i], true, nil
		}
	}
	return LiveStandings{}, false, nil
}
