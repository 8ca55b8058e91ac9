package differential

import (
	"sort"

	"github.com/riskibarqy/fpl-live-league/internal/domain/autosub"
	"github.com/riskibarqy/fpl-live-league/internal/domain/points"
)

type Status string

const (
	StatusPlayed  Status = "played"
	StatusPending Status = "pending"
	StatusBenched Status = "benched"
)

// Item is a player one side owns more of than the other.
type Item struct {
	PlayerID       int
	Status         Status
	Points         int
	Count          int
	WeightedPoints int
}

// Report lists the differentials of each side of a pairing.
type Report struct {
	SideA []Item
	SideB []Item
}

// Net is the live points swing in favour of side A.
func (r Report) Net() int {
	net := 0
	for _, item := range r.SideA {
		net += item.WeightedPoints
	}
	for _, item := range r.SideB {
		net -= item.WeightedPoints
	}
	return net
}

// Weights expands lineups into player counts: one per scored slot, the captain
// counted once per multiplier.
func Weights(lineups []autosub.Lineup) map[int]int {
	out := make(map[int]int)
	for _, lineup := range lineups {
		for _, slot := range lineup.Scored() {
			if slot.Multiplier <= 0 {
				continue
			}
			out[slot.PlayerID] += slot.Multiplier
		}
	}
	return out
}

// Analyze compares the effective elevens of two sides. Each side may hold several
// lineups, as team entries do.
func Analyze(sideA, sideB []autosub.Lineup, statuses autosub.Statuses, table points.Table) Report {
	weightsA := Weights(sideA)
	weightsB := Weights(sideB)

	return Report{
		SideA: itemsFor(weightsA, weightsB, statuses, table),
		SideB: itemsFor(weightsB, weightsA, statuses, table),
	}
}

func itemsFor(own, other map[int]int, statuses autosub.Statuses, table points.Table) []Item {
	items := make([]Item, 0, len(own))
	for playerID, count := range own {
		diff := count - other[playerID]
		if diff <= 0 {
			continue
		}
		pts := table.Total(playerID)
		items = append(items, Item{
			PlayerID:       playerID,
			Status:         statusOf(statuses.Of(playerID)),
			Points:         pts,
			Count:          diff,
			WeightedPoints: pts * diff,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].WeightedPoints != items[j].WeightedPoints {
			return items[i].WeightedPoints > items[j].WeightedPoints
		}
		return items[i].PlayerID < items[j].PlayerID
	})
	return items
}

func statusOf(s autosub.Status) Status {
	switch {
	case s.Played():
		return StatusPlayed
	case s.Inactive():
		return StatusBenched
	default:
		return StatusPending
	}
}
