package engine

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/fpl-live-league/internal/domain/entry"
	"github.com/riskibarqy/fpl-live-league/internal/domain/fixture"
	"github.com/riskibarqy/fpl-live-league/internal/domain/h2h"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
	"github.com/riskibarqy/fpl-live-league/internal/domain/points"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
	"github.com/riskibarqy/fpl-live-league/internal/domain/standings"
)

const eventRaw livestat.Event = "raw"

var squadPositions = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender, player.PositionDefender, player.PositionDefender, player.PositionDefender,
	player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder, player.PositionMidfielder,
	player.PositionForward, player.PositionForward,
	player.PositionGoalkeeper, player.PositionDefender, player.PositionMidfielder, player.PositionForward,
}

// flatRules scores appearance points plus one point per raw event.
func flatRules() points.Rules {
	return points.Rules{Common: map[livestat.Event]points.Rule{eventRaw: {Points: 1}}}
}

func directory() player.Directory {
	players := make([]player.Player, 0, len(squadPositions))
	for i, pos := range squadPositions {
		players = append(players, player.Player{ID: i + 1, TeamID: 1, WebName: "P" + string(rune('A'+i)), Position: pos})
	}
	return player.NewDirectory(players)
}

func finishedFixtures() fixture.Set {
	return fixture.Set{{ID: 500, Gameweek: 20, HomeTeamID: 1, AwayTeamID: 2, Status: fixture.StatusFinished, BonusPosted: true}}
}

// played gives a 90 minute line worth total points (2 for appearance).
func played(playerID, total int) livestat.Stat {
	return livestat.Stat{
		PlayerID:  playerID,
		TeamID:    1,
		FixtureID: 500,
		Minutes:   90,
		Events:    map[livestat.Event]int{eventRaw: total - 2},
	}
}

func selection(entryID, captainID int, chip squad.Chip, transferCost int) squad.Selection {
	sel := squad.Selection{
		EntryID:       entryID,
		Gameweek:      20,
		CaptainID:     captainID,
		ViceCaptainID: 11,
		Chip:          chip,
		TransferCost:  transferCost,
	}
	if captainID == 11 {
		sel.ViceCaptainID = 10
	}
	for i, pos := range squadPositions {
		pick := squad.Pick{PlayerID: i + 1, Position: pos}
		if i < squad.StarterCount {
			sel.Starters = append(sel.Starters, pick)
			continue
		}
		sel.Bench = append(sel.Bench, pick)
	}
	return sel
}

func baseLive() []livestat.Stat {
	stats := make([]livestat.Stat, 0, 11)
	for id := 1; id <= 11; id++ {
		total := 4
		if id == 10 {
			total = 10
		}
		stats = append(stats, played(id, total))
	}
	return stats
}

func h2hInput() Input {
	return Input{
		Gameweek: 20,
		Mode:     standings.ModeHeadToHead,
		Rules:    entry.IndividualRules(),
		Scoring:  flatRules(),
		Players:  directory(),
		Fixtures: finishedFixtures(),
		Live:     livestat.NewSnapshot(20, baseLive()),
		Entries: []entry.Entry{
			entry.Individual(101, "Alpha"),
			entry.Individual(102, "Bravo"),
		},
		Selections: map[int]squad.Selection{
			101: selection(101, 10, squad.ChipNone, 0),
			102: selection(102, 1, squad.ChipNone, 4),
		},
		Pairings: []h2h.Pairing{{EntryA: 101, EntryB: 102}},
		Previous: standings.NewSnapshot(19, []standings.PreviousRow{
			{EntryID: 101, Rank: 2, LeaguePoints: 30, TotalPoints: 900},
			{EntryID: 102, Rank: 1, LeaguePoints: 33, TotalPoints: 880},
		}),
	}
}

func TestRun_HeadToHead(t *testing.T) {
	t.Parallel()

	result, err := Run(h2hInput())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := result.Scores[101].Points; got != 60 {
		t.Fatalf("entry 101 points got=%d want=60", got)
	}
	if got := result.Scores[102].Points; got != 50 {
		t.Fatalf("entry 102 points got=%d want=50", got)
	}
	if len(result.Fixtures) != 1 || result.Fixtures[0].Outcome.Result != h2h.ResultWinA {
		t.Fatalf("unexpected fixtures %+v", result.Fixtures)
	}
	if result.Fixtures[0].Outcome.Differential != 10 {
		t.Fatalf("differential got=%d want=10", result.Fixtures[0].Outcome.Differential)
	}

	top := result.Standings[0]
	if top.EntryID != 101 || top.LeaguePoints != 33 || top.TotalPoints != 960 {
		t.Fatalf("unexpected leader %+v", top)
	}
	if top.RankDelta.Value != 1 || top.Result != "W" || top.Captain != "PJ" {
		t.Fatalf("unexpected leader details %+v", top)
	}
	second := result.Standings[1]
	if second.EntryID != 102 || second.RankDelta.Value != -1 || second.Result != "L" {
		t.Fatalf("unexpected second row %+v", second)
	}
	if result.Live {
		t.Fatalf("finished gameweek must not be live")
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	in := h2hInput()
	first, err := Run(in)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := Run(in)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ between identical runs")
	}
}

func TestRun_GoalkeeperSubstitution(t *testing.T) {
	t.Parallel()

	stats := baseLive()[1:]
	stats = append(stats, played(12, 3))

	in := h2hInput()
	in.Live = livestat.NewSnapshot(20, stats)

	result, err := Run(in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	lineup := result.Scores[101].Managers[0].Lineup
	if len(lineup.Substitutions) != 1 {
		t.Fatalf("expected one substitution, got %+v", lineup.Substitutions)
	}
	if sub := lineup.Substitutions[0]; sub.OutPlayerID != 1 || sub.InPlayerID != 12 {
		t.Fatalf("unexpected substitution %+v", sub)
	}
	bench := make([]int, 0, len(lineup.Bench))
	for _, s := range lineup.Bench {
		bench = append(bench, s.PlayerID)
	}
	if !reflect.DeepEqual(bench, []int{13, 14, 15, 1}) {
		t.Fatalf("bench got=%v want=[13 14 15 1]", bench)
	}
	if got := result.Scores[101].Points; got != 59 {
		t.Fatalf("entry 101 points got=%d want=59", got)
	}
}

func TestRun_TeamLeagueCapsTripleCaptain(t *testing.T) {
	t.Parallel()

	live := []livestat.Stat{played(10, 8)}
	in := Input{
		Gameweek: 20,
		Mode:     standings.ModeHeadToHead,
		Rules:    entry.TeamRules(),
		Scoring:  flatRules(),
		Players:  directory(),
		Fixtures: finishedFixtures(),
		Live:     livestat.NewSnapshot(20, live),
		Entries: []entry.Entry{
			{ID: 9001, Name: "Team One", Kind: entry.KindTeam, ManagerIDs: []int{1, 2, 3}},
		},
		Selections: map[int]squad.Selection{
			1: selection(1, 10, squad.ChipTripleCaptain, 0),
			2: selection(2, 10, squad.ChipNone, 0),
			3: selection(3, 10, squad.ChipNone, 0),
		},
	}

	result, err := Run(in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	score := result.Scores[9001]
	if got := score.Managers[0].Result.Total; got != 16 {
		t.Fatalf("triple captain manager got=%d want=16", got)
	}
	if score.Points != 48 {
		t.Fatalf("team points got=%d want=48", score.Points)
	}
	if row := result.Standings[0]; row.Captain != "PJ x3" || !row.RankDelta.New {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestRun_EliminationCutoff(t *testing.T) {
	t.Parallel()

	in := h2hInput()
	in.Mode = standings.ModeElimination
	in.Cutoff = 1
	in.Pairings = nil
	in.Entries = append(in.Entries, entry.Individual(103, "Charlie"))
	in.Selections[103] = selection(103, 11, squad.ChipNone, 4)
	in.Previous = standings.Snapshot{}

	result, err := Run(in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Fixtures) != 0 {
		t.Fatalf("elimination leagues have no fixtures, got %+v", result.Fixtures)
	}

	eliminated := map[int]bool{}
	for _, row := range result.Standings {
		eliminated[row.EntryID] = row.Eliminated
	}
	if eliminated[101] || eliminated[102] != true || eliminated[103] != true {
		t.Fatalf("unexpected elimination %v", eliminated)
	}
}

func TestRun_InvalidSquadFails(t *testing.T) {
	t.Parallel()

	in := h2hInput()
	broken := in.Selections[102]
	broken.Starters = broken.Starters[:10]
	selections := map[int]squad.Selection{101: in.Selections[101], 102: broken}
	in.Selections = selections

	if _, err := Run(in); err == nil {
		t.Fatalf("expected error for invalid squad")
	}
}
