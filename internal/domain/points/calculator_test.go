package points

import (
	"testing"

	"github.com/riskibarqy/fpl-live-league/internal/domain/bonus"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
)

func TestRules_Base_ByPosition(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	gk := livestat.Stat{
		Minutes: 90,
		Events: map[livestat.Event]int{
			livestat.EventCleanSheets:    1,
			livestat.EventSaves:          7,
			livestat.EventPenaltiesSaved: 1,
		},
	}
	// appearance 2 + clean sheet 4 + saves 2 + penalty saved 5 = 13
	if got := rules.Base(gk, player.PositionGoalkeeper); got != 13 {
		t.Fatalf("gk points mismatch: got=%d want=13", got)
	}

	def := livestat.Stat{
		Minutes: 90,
		Events: map[livestat.Event]int{
			livestat.EventGoalsScored:   1,
			livestat.EventGoalsConceded: 3,
			livestat.EventYellowCards:   1,
		},
	}
	// appearance 2 + goal 6 - conceded 1 - yellow 1 = 6
	if got := rules.Base(def, player.PositionDefender); got != 6 {
		t.Fatalf("def points mismatch: got=%d want=6", got)
	}

	mid := livestat.Stat{
		Minutes: 75,
		Events: map[livestat.Event]int{
			livestat.EventGoalsScored: 1,
			livestat.EventAssists:     1,
			livestat.EventCleanSheets: 1,
		},
	}
	// appearance 2 + goal 5 + assist 3 + clean sheet 1 = 11
	if got := rules.Base(mid, player.PositionMidfielder); got != 11 {
		t.Fatalf("mid points mismatch: got=%d want=11", got)
	}

	fwd := livestat.Stat{
		Minutes: 30,
		Events: map[livestat.Event]int{
			livestat.EventGoalsScored:     2,
			livestat.EventCleanSheets:     1,
			livestat.EventPenaltiesMissed: 1,
		},
	}
	// appearance 1 + goals 8 + clean sheet 0 - penalty miss 2 = 7
	if got := rules.Base(fwd, player.PositionForward); got != 7 {
		t.Fatalf("fwd points mismatch: got=%d want=7", got)
	}
}

func TestAppearancePoints(t *testing.T) {
	t.Parallel()

	cases := map[int]int{0: 0, 1: 1, 59: 1, 60: 2, 95: 2}
	for minutes, want := range cases {
		if got := AppearancePoints(minutes); got != want {
			t.Fatalf("appearance points for %d minutes: got=%d want=%d", minutes, got, want)
		}
	}
}

func TestRules_Base_IgnoresUnknownEvents(t *testing.T) {
	t.Parallel()

	stat := livestat.Stat{
		Minutes: 90,
		Events: map[livestat.Event]int{
			livestat.Event("expected_goals_involvement"): 4,
			livestat.Event("mystery"):                    10,
		},
	}
	if got := DefaultRules().Base(stat, player.PositionMidfielder); got != 2 {
		t.Fatalf("unknown events must not score: got=%d want=2", got)
	}
}

func TestRules_Calculate_AddsBonusAndIsDeterministic(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	stats := []livestat.Stat{
		{PlayerID: 5, FixtureID: 1, Minutes: 90, Events: map[livestat.Event]int{livestat.EventGoalsScored: 1}},
		{PlayerID: 5, FixtureID: 2, Minutes: 20, Events: map[livestat.Event]int{livestat.EventAssists: 1}},
	}
	award := bonus.Award{Points: 2}

	first := rules.Calculate(5, stats, player.PositionForward, award)
	second := rules.Calculate(5, stats, player.PositionForward, award)
	if first != second {
		t.Fatalf("calculate is not deterministic: %+v vs %+v", first, second)
	}
	// fixture 1: appearance 2 + goal 4; fixture 2: appearance 1 + assist 3; bonus 2
	if first.Total != 12 {
		t.Fatalf("total mismatch: got=%d want=12", first.Total)
	}
	if first.Minutes != 110 {
		t.Fatalf("minutes mismatch: got=%d want=110", first.Minutes)
	}
}

func TestBuild_MissingPlayerScoresZero(t *testing.T) {
	t.Parallel()

	dir := player.NewDirectory([]player.Player{{ID: 1, TeamID: 1, Position: player.PositionDefender}})
	table := Build(DefaultRules(), dir, livestat.NewSnapshot(1, nil), nil, []int{1, 2})
	if table.Total(1) != 0 || table.Total(2) != 0 {
		t.Fatalf("expected zero totals for players without stats: %+v", table)
	}
}
