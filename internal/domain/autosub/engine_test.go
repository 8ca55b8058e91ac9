package autosub

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
)

var (
	played = Status{Minutes: 90, State: StateDone}
	dnp    = Status{State: StateDone}
)

func selection() squad.Selection {
	return squad.Selection{
		EntryID:  7,
		Gameweek: 20,
		Starters: []squad.Pick{
			{PlayerID: 1, Position: player.PositionGoalkeeper},
			{PlayerID: 2, Position: player.PositionDefender},
			{PlayerID: 3, Position: player.PositionDefender},
			{PlayerID: 4, Position: player.PositionDefender},
			{PlayerID: 5, Position: player.PositionDefender},
			{PlayerID: 6, Position: player.PositionMidfielder},
			{PlayerID: 7, Position: player.PositionMidfielder},
			{PlayerID: 8, Position: player.PositionMidfielder},
			{PlayerID: 9, Position: player.PositionMidfielder},
			{PlayerID: 10, Position: player.PositionForward},
			{PlayerID: 11, Position: player.PositionForward},
		},
		Bench: []squad.Pick{
			{PlayerID: 12, Position: player.PositionGoalkeeper},
			{PlayerID: 13, Position: player.PositionDefender},
			{PlayerID: 14, Position: player.PositionMidfielder},
			{PlayerID: 15, Position: player.PositionForward},
		},
		CaptainID:     9,
		ViceCaptainID: 10,
	}
}

func allPlayed() Statuses {
	out := make(Statuses, 15)
	for id := 1; id <= 15; id++ {
		out[id] = played
	}
	return out
}

func starterIDs(l Lineup) []int {
	out := make([]int, 0, len(l.Starters))
	for _, s := range l.Starters {
		out = append(out, s.PlayerID)
	}
	return out
}

func benchIDs(l Lineup) []int {
	out := make([]int, 0, len(l.Bench))
	for _, s := range l.Bench {
		out = append(out, s.PlayerID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_NoSubstitutionsWhenEveryonePlayed(t *testing.T) {
	t.Parallel()

	lineup, err := Apply(selection(), allPlayed(), Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lineup.Substitutions) != 0 {
		t.Fatalf("unexpected substitutions: %+v", lineup.Substitutions)
	}
	if lineup.Captaincy.PlayerID != 9 || lineup.Captaincy.Multiplier != 2 {
		t.Fatalf("unexpected captaincy: %+v", lineup.Captaincy)
	}
	if lineup.Starters[8].Multiplier != 2 {
		t.Fatalf("captain slot multiplier got=%d want=2", lineup.Starters[8].Multiplier)
	}
	for _, s := range lineup.Bench {
		if s.Multiplier != 0 {
			t.Fatalf("bench player %d should not score, multiplier=%d", s.PlayerID, s.Multiplier)
		}
	}
}

func TestApply_GoalkeeperOnlyReplacedByGoalkeeper(t *testing.T) {
	t.Parallel()

	statuses := allPlayed()
	statuses[1] = dnp

	lineup, err := Apply(selection(), statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lineup.Substitutions) != 1 {
		t.Fatalf("expected one substitution, got %+v", lineup.Substitutions)
	}
	sub := lineup.Substitutions[0]
	if sub.OutPlayerID != 1 || sub.InPlayerID != 12 || sub.Pending {
		t.Fatalf("unexpected substitution: %+v", sub)
	}
	if got := benchIDs(lineup); !equalInts(got, []int{13, 14, 15, 1}) {
		t.Fatalf("bench got=%v want=[13 14 15 1]", got)
	}
}

func TestApply_GoalkeeperStaysWhenBenchKeeperDidNotPlay(t *testing.T) {
	t.Parallel()

	statuses := allPlayed()
	statuses[1] = dnp
	statuses[12] = dnp

	lineup, err := Apply(selection(), statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lineup.Substitutions) != 0 {
		t.Fatalf("outfield players must never replace a goalkeeper: %+v", lineup.Substitutions)
	}
	if lineup.Starters[0].PlayerID != 1 {
		t.Fatalf("goalkeeper slot got=%d want=1", lineup.Starters[0].PlayerID)
	}
}

func TestApply_ReplacedStarterMovesToBench(t *testing.T) {
	t.Parallel()

	statuses := allPlayed()
	statuses[1] = dnp
	statuses[6] = dnp

	lineup, err := Apply(selection(), statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lineup.Substitutions) != 2 {
		t.Fatalf("substitutions got=%d want=2", len(lineup.Substitutions))
	}
	if got := len(lineup.Starters) + len(lineup.Bench); got != 15 {
		t.Fatalf("squad size got=%d want=15", got)
	}
	replaced := lineup.Bench[len(lineup.Bench)-2:]
	for i, want := range []int{1, 6} {
		s := replaced[i]
		if s.PlayerID != want || !s.SubbedOut || s.Multiplier != 0 {
			t.Fatalf("replaced slot got=%+v want player=%d subbed out with multiplier 0", s, want)
		}
	}
	for _, s := range lineup.Scored() {
		if s.PlayerID == 1 || s.PlayerID == 6 {
			t.Fatalf("replaced starter %d must not score", s.PlayerID)
		}
	}
}

func TestApply_BenchOrderRespectsFormation(t *testing.T) {
	t.Parallel()

	sel := selection()
	sel.Starters[4].Position = player.PositionMidfielder // 1-3-5-2
	sel.Bench = []squad.Pick{
		{PlayerID: 12, Position: player.PositionGoalkeeper},
		{PlayerID: 14, Position: player.PositionMidfielder},
		{PlayerID: 15, Position: player.PositionForward},
		{PlayerID: 13, Position: player.PositionDefender},
	}
	statuses := allPlayed()
	statuses[2] = dnp

	lineup, err := Apply(sel, statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lineup.Substitutions) != 1 || lineup.Substitutions[0].InPlayerID != 13 {
		t.Fatalf("expected defender 13 to come on, got %+v", lineup.Substitutions)
	}
	if got := benchIDs(lineup); !equalInts(got, []int{12, 14, 15, 2}) {
		t.Fatalf("bench got=%v want=[12 14 15 2]", got)
	}
}

func TestApply_FirstLegalBenchPlayerWins(t *testing.T) {
	t.Parallel()

	statuses := allPlayed()
	statuses[10] = dnp

	lineup, err := Apply(selection(), statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 13, 11}
	if got := starterIDs(lineup); !equalInts(got, want) {
		t.Fatalf("starters got=%v want=%v", got, want)
	}
	if f := formationOfSlots(lineup.Starters); f.String() != "1-5-4-1" {
		t.Fatalf("formation got=%s want=1-5-4-1", f)
	}
}

func TestApply_PendingBenchPlayerReservesSlot(t *testing.T) {
	t.Parallel()

	statuses := allPlayed()
	statuses[2] = dnp
	delete(statuses, 13)

	lineup, err := Apply(selection(), statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lineup.Substitutions) != 1 {
		t.Fatalf("expected one substitution, got %+v", lineup.Substitutions)
	}
	sub := lineup.Substitutions[0]
	if sub.InPlayerID != 13 || !sub.Pending {
		t.Fatalf("expected pending substitution of 13, got %+v", sub)
	}
	if got := benchIDs(lineup); !equalInts(got, []int{12, 14, 15, 2}) {
		t.Fatalf("bench got=%v want=[12 14 15 2]", got)
	}
}

func TestApply_SkipsBenchPlayerWhoDidNotPlay(t *testing.T) {
	t.Parallel()

	statuses := allPlayed()
	statuses[2] = dnp
	statuses[13] = dnp

	lineup, err := Apply(selection(), statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lineup.Substitutions) != 1 || lineup.Substitutions[0].InPlayerID != 14 {
		t.Fatalf("expected midfielder 14 to come on, got %+v", lineup.Substitutions)
	}
}

func TestApply_StarterStillPlayingIsKept(t *testing.T) {
	t.Parallel()

	statuses := allPlayed()
	statuses[2] = Status{State: StateInProgress}

	lineup, err := Apply(selection(), statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lineup.Substitutions) != 0 {
		t.Fatalf("a starter whose match is not finished must not be replaced: %+v", lineup.Substitutions)
	}
}

func TestApply_ViceCaptainTakesArmband(t *testing.T) {
	t.Parallel()

	statuses := allPlayed()
	statuses[9] = dnp

	lineup, err := Apply(selection(), statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if lineup.Captaincy.PlayerID != 10 || !lineup.Captaincy.ViceCaptainPromoted {
		t.Fatalf("expected vice captain promotion, got %+v", lineup.Captaincy)
	}
	for _, s := range lineup.Starters {
		want := 1
		if s.PlayerID == 10 {
			want = 2
		}
		if s.Multiplier != want {
			t.Fatalf("player %d multiplier got=%d want=%d", s.PlayerID, s.Multiplier, want)
		}
	}
}

func TestApply_NoArmbandWhenCaptainAndViceInactive(t *testing.T) {
	t.Parallel()

	statuses := allPlayed()
	statuses[9] = dnp
	statuses[10] = dnp
	for id := 12; id <= 15; id++ {
		statuses[id] = dnp
	}

	lineup, err := Apply(selection(), statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if lineup.Captaincy.PlayerID != 0 || lineup.Captaincy.Multiplier != 1 {
		t.Fatalf("expected no captaincy, got %+v", lineup.Captaincy)
	}
	for _, s := range lineup.Starters {
		if s.Multiplier != 1 {
			t.Fatalf("player %d multiplier got=%d want=1", s.PlayerID, s.Multiplier)
		}
	}
}

func TestApply_TripleCaptainMultiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want int
	}{
		{name: "uncapped", opts: Options{}, want: 3},
		{name: "capped at double", opts: Options{CaptainMultiplierCap: 2}, want: 2},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sel := selection()
			sel.Chip = squad.ChipTripleCaptain
			lineup, err := Apply(sel, allPlayed(), tc.opts)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if lineup.Captaincy.Multiplier != tc.want {
				t.Fatalf("captain multiplier got=%d want=%d", lineup.Captaincy.Multiplier, tc.want)
			}
		})
	}
}

func TestApply_BenchBoost(t *testing.T) {
	t.Parallel()

	sel := selection()
	sel.Chip = squad.ChipBenchBoost
	statuses := allPlayed()
	statuses[2] = dnp

	lineup, err := Apply(sel, statuses, Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(lineup.Substitutions) != 0 {
		t.Fatalf("bench boost must not substitute: %+v", lineup.Substitutions)
	}
	if got := len(lineup.Scored()); got != 15 {
		t.Fatalf("scored slots got=%d want=15", got)
	}

	ignored, err := Apply(sel, statuses, Options{IgnoreBenchBoost: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if ignored.BenchBoost {
		t.Fatalf("bench boost should be ignored")
	}
	if len(ignored.Substitutions) != 1 {
		t.Fatalf("expected regular substitution when bench boost is ignored, got %+v", ignored.Substitutions)
	}
	if got := len(ignored.Scored()); got != 11 {
		t.Fatalf("scored slots got=%d want=11", got)
	}
}

func TestApply_TransferCost(t *testing.T) {
	t.Parallel()

	sel := selection()
	sel.TransferCost = 8

	kept, err := Apply(sel, allPlayed(), Options{DeductTransferHits: true})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if kept.TransferCost != 8 {
		t.Fatalf("transfer cost got=%d want=8", kept.TransferCost)
	}

	waived, err := Apply(sel, allPlayed(), Options{})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if waived.TransferCost != 0 {
		t.Fatalf("transfer cost got=%d want=0", waived.TransferCost)
	}
}

func TestApply_InvalidSelection(t *testing.T) {
	t.Parallel()

	sel := selection()
	sel.CaptainID = 99

	_, err := Apply(sel, allPlayed(), Options{})
	if !errors.Is(err, squad.ErrCaptainNotInSquad) {
		t.Fatalf("expected ErrCaptainNotInSquad, got %v", err)
	}
}

func TestApply_AlwaysElevenLegalStarters(t *testing.T) {
	t.Parallel()

	for mask := 0; mask < 1<<15; mask++ {
		statuses := make(Statuses, 15)
		for id := 1; id <= 15; id++ {
			if mask&(1<<(id-1)) != 0 {
				statuses[id] = dnp
			} else {
				statuses[id] = played
			}
		}

		lineup, err := Apply(selection(), statuses, Options{})
		if err != nil {
			t.Fatalf("mask=%b apply: %v", mask, err)
		}
		if len(lineup.Starters) != squad.StarterCount {
			t.Fatalf("mask=%b starters got=%d want=11", mask, len(lineup.Starters))
		}
		if f := formationOfSlots(lineup.Starters); !f.Legal() {
			t.Fatalf("mask=%b illegal formation %s", mask, f)
		}
		seen := make(map[int]struct{}, 15)
		for _, s := range append(lineup.Starters, lineup.Bench...) {
			if _, dup := seen[s.PlayerID]; dup {
				t.Fatalf("mask=%b player %d used twice", mask, s.PlayerID)
			}
			seen[s.PlayerID] = struct{}{}
		}
		if len(seen) != 15 {
			t.Fatalf("mask=%b expected 15 distinct players, got %d", mask, len(seen))
		}
	}
}
