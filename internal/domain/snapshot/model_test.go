package snapshot

import (
	"testing"
	"time"

	"github.com/riskibarqy/fpl-live-league/internal/domain/h2h"
	"github.com/riskibarqy/fpl-live-league/internal/domain/standings"
)

func TestFromStandings_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 3, 18, 0, 0, 0, time.UTC)
	rows := []standings.Row{
		{EntryID: 7, Name: "Ann", Rank: 1, LeaguePoints: 30, TotalPoints: 900, GameweekPoints: 71, Result: "W"},
		{EntryID: 9, Name: "Ben", Rank: 2, LeaguePoints: 27, TotalPoints: 880, GameweekPoints: 50, Result: "L"},
	}
	fixtures := []h2h.Fixture{{EntryA: 7, EntryB: 9, ScoreA: 71, ScoreB: 50, Outcome: h2h.Resolve(71, 50)}}

	gw := FromStandings("elite", 12, rows, fixtures, true, now)
	if !gw.IsFinal() {
		t.Fatalf("expected final gameweek")
	}
	if gw.Fixtures[0].Result != h2h.ResultWinA {
		t.Fatalf("fixture result got=%q", gw.Fixtures[0].Result)
	}

	prev := gw.Standings()
	row, ok := prev.Row(9)
	if !ok || row.Rank != 2 || row.LeaguePoints != 27 || row.TotalPoints != 880 {
		t.Fatalf("unexpected previous row %+v ok=%v", row, ok)
	}
	if prev.Gameweek != 12 {
		t.Fatalf("gameweek got=%d want=12", prev.Gameweek)
	}
}

func TestGameweek_IsFinal(t *testing.T) {
	t.Parallel()

	if (Gameweek{}).IsFinal() {
		t.Fatalf("empty gameweek cannot be final")
	}
	gw := Gameweek{Rows: []Row{{Final: true}, {Final: false}}}
	if gw.IsFinal() {
		t.Fatalf("mixed rows cannot be final")
	}
}
