package scoring

import (
	"github.com/riskibarqy/fpl-live-league/internal/domain/autosub"
	"github.com/riskibarqy/fpl-live-league/internal/domain/points"
)

// SlotScore is one scored slot after the multiplier is applied.
type SlotScore struct {
	PlayerID     int
	Points       int
	Multiplier   int
	Contribution int
}

// Result is the live gameweek score of one manager.
type Result struct {
	EntryID      int
	Gross        int
	TransferCost int
	Total        int
	Slots        []SlotScore
}

// Score sums live points times multiplier over the scored slots and subtracts
// transfer hits. Players missing from the table contribute zero.
func Score(lineup autosub.Lineup, table points.Table) Result {
	scored := lineup.Scored()
	out := Result{
		EntryID:      lineup.EntryID,
		TransferCost: lineup.TransferCost,
		Slots:        make([]SlotScore, 0, len(scored)),
	}
	for _, slot := range scored {
		pts := table.Total(slot.PlayerID)
		contribution := pts * slot.Multiplier
		out.Gross += contribution
		out.Slots = append(out.Slots, SlotScore{
			PlayerID:     slot.PlayerID,
			Points:       pts,
			Multiplier:   slot.Multiplier,
			Contribution: contribution,
		})
	}
	out.Total = out.Gross - out.TransferCost
	return out
}
