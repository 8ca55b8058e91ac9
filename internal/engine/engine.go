// Package engine runs the live scoring pipeline: bonus, live points, automatic
// substitutions, entry aggregation, head-to-head results and standings.
package engine

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/fpl-live-league/internal/domain/autosub"
	"github.com/riskibarqy/fpl-live-league/internal/domain/bonus"
	"github.com/riskibarqy/fpl-live-league/internal/domain/entry"
	"github.com/riskibarqy/fpl-live-league/internal/domain/fixture"
	"github.com/riskibarqy/fpl-live-league/internal/domain/h2h"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
	"github.com/riskibarqy/fpl-live-league/internal/domain/points"
	"github.com/riskibarqy/fpl-live-league/internal/domain/squad"
	"github.com/riskibarqy/fpl-live-league/internal/domain/standings"
)

// Input is everything one refresh of a league needs. It is never mutated.
type Input struct {
	Gameweek int
	Mode     standings.Mode
	Rules    entry.LeagueRules
	Scoring  points.Rules
	Players  player.Directory
	Fixtures fixture.Set
	Live     livestat.Snapshot
	Entries  []entry.Entry
	// Selections are keyed by FPL manager id.
	Selections map[int]squad.Selection
	Pairings   []h2h.Pairing
	Previous   standings.Snapshot
	// Cutoff is the qualification line of elimination leagues; zero disables it.
	Cutoff       int
	OverallRanks map[int]int
}

// Result is the live state of a league for the gameweek.
type Result struct {
	Gameweek  int
	Live      bool
	Awards    map[int]bonus.Award
	Points    points.Table
	Statuses  autosub.Statuses
	Scores    map[int]entry.Score
	Fixtures  []h2h.Fixture
	Standings []standings.Row
}

// Run computes live standings from scratch. Identical inputs give identical results.
func Run(in Input) (Result, error) {
	playerIDs := squadPlayerIDs(in.Selections)

	awards := bonus.ForGameweek(in.Fixtures, in.Live)
	table := points.Build(in.Scoring, in.Players, in.Live, awards, playerIDs)
	statuses := autosub.StatusesFor(in.Players, in.Fixtures, in.Live, playerIDs)

	scores := make(map[int]entry.Score, len(in.Entries))
	totals := make(map[int]int, len(in.Entries))
	for _, e := range in.Entries {
		score, err := entry.Aggregate(e, in.Selections, statuses, table, in.Rules)
		if err != nil {
			return Result{}, fmt.Errorf("gameweek %d: %w", in.Gameweek, err)
		}
		scores[e.ID] = score
		totals[e.ID] = score.Points
	}

	var fixtures []h2h.Fixture
	if in.Mode == standings.ModeHeadToHead {
		fixtures = h2h.ResolveAll(in.Gameweek, in.Pairings, totals)
	}

	inputs := make([]standings.Input, 0, len(in.Entries))
	for _, e := range in.Entries {
		score := scores[e.ID]
		row := standings.Input{
			EntryID:        e.ID,
			Name:           e.Name,
			GameweekPoints: score.Points,
			OverallRank:    in.OverallRanks[e.ID],
			Chips:          score.Chips(),
			Captain:        entry.JoinNotation(captainNames(in.Players, score)),
		}
		if f, ok := fixtureOf(fixtures, e.ID); ok {
			side, _ := f.SideOf(e.ID)
			row.MatchPoints = f.Outcome.LeaguePoints(side)
			row.Result = f.Outcome.Letter(side)
		}
		inputs = append(inputs, row)
	}

	rows := standings.Build(inputs, in.Previous, in.Mode)
	if in.Mode == standings.ModeElimination {
		rows = standings.ApplyCutoff(rows, in.Cutoff)
	}

	return Result{
		Gameweek:  in.Gameweek,
		Live:      in.Fixtures.Live(),
		Awards:    awards,
		Points:    table,
		Statuses:  statuses,
		Scores:    scores,
		Fixtures:  fixtures,
		Standings: rows,
	}, nil
}

func squadPlayerIDs(selections map[int]squad.Selection) []int {
	seen := make(map[int]struct{})
	for _, sel := range selections {
		for _, id := range sel.PlayerIDs() {
			seen[id] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func captainNames(players player.Directory, score entry.Score) []string {
	ids := score.CaptainIDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, players.Name(id))
	}
	return out
}

func fixtureOf(fixtures []h2h.Fixture, entryID int) (h2h.Fixture, bool) {
	for _, f := range fixtures {
		if f.Involves(entryID) {
			return f, true
		}
	}
	return h2h.Fixture{}, false
}
