package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/fpl-live-league/internal/domain/fixture"
	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
	"github.com/riskibarqy/fpl-live-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fpl-live-league/internal/platform/logging"
)

func teamLeague() league.League {
	return league.League{
		ID:          "trios",
		Name:        "Trios",
		Type:        league.TypeTeamH2H,
		FPLLeagueID: 77,
		Teams: []league.Team{
			{ID: 1, Name: "Reds", ManagerIDs: []int{101, 102, 103}},
			{ID: 2, Name: "Blues", ManagerIDs: []int{104, 105, 106}},
		},
	}
}

func TestSnapshotService_SeedTeamLeague(t *testing.T) {
	t.Parallel()

	fpl := newStubFPL()
	fpl.standings = []ExternalStanding{
		{EntryID: 101, LeaguePoints: 30, TotalPoints: 900},
		{EntryID: 102, LeaguePoints: 27, TotalPoints: 880},
		{EntryID: 103, LeaguePoints: 12, TotalPoints: 850},
		{EntryID: 104, LeaguePoints: 33, TotalPoints: 910},
		{EntryID: 105, LeaguePoints: 21, TotalPoints: 870},
		{EntryID: 106, LeaguePoints: 18, TotalPoints: 860},
	}
	snapshots := memory.NewSnapshotRepository()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	service := NewSnapshotService(memory.NewLeagueRepository([]league.League{teamLeague()}), snapshots, fpl, nil, clock, logging.NewNop())

	got, err := service.Seed(context.Background(), "trios", 0)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got.Gameweek != testGameweek-1 {
		t.Fatalf("gameweek got=%d want=%d", got.Gameweek, testGameweek-1)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("rows got=%d want=2", len(got.Rows))
	}
	top := got.Rows[0]
	if top.EntryID != 2 || top.LeaguePoints != 72 || top.TotalPoints != 2640 || top.Rank != 1 {
		t.Fatalf("unexpected top row %+v", top)
	}
	if second := got.Rows[1]; second.EntryID != 1 || second.LeaguePoints != 69 || second.Rank != 2 {
		t.Fatalf("unexpected second row %+v", second)
	}
	if !got.IsFinal() {
		t.Fatalf("seeded snapshot must be final")
	}

	stored, ok, _ := snapshots.GetGameweek(context.Background(), "trios", testGameweek-1)
	if !ok || len(stored.Rows) != 2 {
		t.Fatalf("snapshot not stored ok=%v rows=%d", ok, len(stored.Rows))
	}
}

func TestSnapshotService_SeedEliminationMarksCutoff(t *testing.T) {
	t.Parallel()

	fpl := newStubFPL()
	fpl.classic = []ExternalStanding{
		{EntryID: 1, PlayerName: "A", TotalPoints: 500},
		{EntryID: 2, PlayerName: "B", TotalPoints: 400},
		{EntryID: 3, PlayerName: "C", TotalPoints: 300},
		{EntryID: 4, PlayerName: "D", TotalPoints: 300},
		{EntryID: 5, PlayerName: "E", TotalPoints: 200},
	}
	l := league.League{ID: "last-one", Type: league.TypeElimination, FPLLeagueID: 5, Cutoff: 3}
	service := NewSnapshotService(memory.NewLeagueRepository([]league.League{l}), memory.NewSnapshotRepository(), fpl, nil, nil, logging.NewNop())

	got, err := service.Seed(context.Background(), "last-one", 10)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	eliminated := 0
	for _, row := range got.Rows {
		if row.LeaguePoints != row.TotalPoints {
			t.Fatalf("elimination league points must equal total, row %+v", row)
		}
		if row.Eliminated {
			eliminated++
		}
	}
	if eliminated != 1 || !got.Rows[4].Eliminated {
		t.Fatalf("expected only the last entry eliminated, rows %+v", got.Rows)
	}
}

func TestSnapshotService_Finalize(t *testing.T) {
	t.Parallel()

	fpl := newStubFPL()
	live, snapshots := memoryLiveService(t, fpl, eliteLeague())
	service := NewSnapshotService(memory.NewLeagueRepository([]league.League{eliteLeague()}), snapshots, fpl, live, nil, logging.NewNop())

	got, err := service.Finalize(context.Background(), "elite", testGameweek)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !got.IsFinal() || len(got.Rows) != 2 || len(got.Fixtures) != 1 {
		t.Fatalf("unexpected finalized snapshot %+v", got)
	}
}

func TestSnapshotService_FinalizeUnfinishedGameweek(t *testing.T) {
	t.Parallel()

	fpl := newStubFPL()
	fpl.fixtures[0].Status = fixture.StatusLive
	fpl.fixtures[0].BonusPosted = false
	live, snapshots := memoryLiveService(t, fpl, eliteLeague())
	service := NewSnapshotService(memory.NewLeagueRepository([]league.League{eliteLeague()}), snapshots, fpl, live, nil, logging.NewNop())

	if _, err := service.Finalize(context.Background(), "elite", testGameweek); !errors.Is(err, ErrGameweekNotFinished) {
		t.Fatalf("expected ErrGameweekNotFinished, got %v", err)
	}
	if _, err := service.Finalize(context.Background(), "elite", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for gameweek 0, got %v", err)
	}
}

func TestSnapshotService_GetMissing(t *testing.T) {
	t.Parallel()

	service := NewSnapshotService(memory.NewLeagueRepository([]league.League{eliteLeague()}), memory.NewSnapshotRepository(), newStubFPL(), nil, nil, logging.NewNop())
	if _, err := service.Get(context.Background(), "elite", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.Get(context.Background(), "nope", 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown league, got %v", err)
	}
}
