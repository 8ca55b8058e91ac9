package points

import (
	"github.com/riskibarqy/fpl-live-league/internal/domain/bonus"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
	"github.com/riskibarqy/fpl-live-league/internal/domain/player"
)

// Score is a player's unmultiplied live total for the gameweek.
type Score struct {
	PlayerID      int
	Base          int
	Bonus         int
	BonusOfficial bool
	Minutes       int
	Total         int
}

// Rule awards Points for every Per occurrences of an event.
type Rule struct {
	Points int
	Per    int
}

func (r Rule) apply(count int) int {
	per := r.Per
	if per <= 0 {
		per = 1
	}
	return (count / per) * r.Points
}

// Rules is the scoring table. Events missing from a position's table score zero.
type Rules struct {
	ByPosition map[player.Position]map[livestat.Event]Rule
	Common     map[livestat.Event]Rule
}

// DefaultRules returns the 2025/26 FPL scoring table.
func DefaultRules() Rules {
	return Rules{
		ByPosition: map[player.Position]map[livestat.Event]Rule{
			player.PositionGoalkeeper: {
				livestat.EventGoalsScored:   {Points: 10},
				livestat.EventCleanSheets:   {Points: 4},
				livestat.EventGoalsConceded: {Points: -1, Per: 2},
				livestat.EventSaves:         {Points: 1, Per: 3},
			},
			player.PositionDefender: {
				livestat.EventGoalsScored:   {Points: 6},
				livestat.EventCleanSheets:   {Points: 4},
				livestat.EventGoalsConceded: {Points: -1, Per: 2},
			},
			player.PositionMidfielder: {
				livestat.EventGoalsScored: {Points: 5},
				livestat.EventCleanSheets: {Points: 1},
			},
			player.PositionForward: {
				livestat.EventGoalsScored: {Points: 4},
			},
		},
		Common: map[livestat.Event]Rule{
			livestat.EventAssists:               {Points: 3},
			livestat.EventPenaltiesSaved:        {Points: 5},
			livestat.EventPenaltiesMissed:       {Points: -2},
			livestat.EventYellowCards:           {Points: -1},
			livestat.EventRedCards:              {Points: -3},
			livestat.EventOwnGoals:              {Points: -2},
			livestat.EventDefensiveContribution: {Points: 2},
		},
	}
}

// AppearancePoints follows the minutes threshold: 1-59 gives 1, 60+ gives 2.
func AppearancePoints(minutes int) int {
	switch {
	case minutes >= 60:
		return 2
	case minutes > 0:
		return 1
	default:
		return 0
	}
}

// Base scores one stat line without bonus.
func (r Rules) Base(stat livestat.Stat, position player.Position) int {
	total := AppearancePoints(stat.Minutes)
	table := r.ByPosition[position]
	for event, count := range stat.Events {
		if count == 0 {
			continue
		}
		if rule, ok := table[event]; ok {
			total += rule.apply(count)
			continue
		}
		if rule, ok := r.Common[event]; ok {
			total += rule.apply(count)
		}
	}
	return total
}

// Calculate combines every stat line of a player with the resolved bonus.
func (r Rules) Calculate(playerID int, stats []livestat.Stat, position player.Position, award bonus.Award) Score {
	out := Score{
		PlayerID:      playerID,
		Bonus:         award.Points,
		BonusOfficial: award.Official,
	}
	for _, stat := range stats {
		out.Base += r.Base(stat, position)
		out.Minutes += stat.Minutes
	}
	out.Total = out.Base + out.Bonus
	return out
}

// Table maps player id to live score.
type Table map[int]Score

func (t Table) Total(playerID int) int {
	return t[playerID].Total
}

// Build scores every squad player the snapshot or directory knows about.
// Players absent from the snapshot score zero rather than failing.
func Build(rules Rules, players player.Directory, snapshot livestat.Snapshot, awards map[int]bonus.Award, playerIDs []int) Table {
	out := make(Table, len(playerIDs))
	for _, id := range playerIDs {
		if _, done := out[id]; done {
			continue
		}
		out[id] = rules.Calculate(id, snapshot.Player(id), players[id].Position, awards[id])
	}
	return out
}
