package bonus

import (
	"sort"

	"github.com/riskibarqy/fpl-live-league/internal/domain/fixture"
	"github.com/riskibarqy/fpl-live-league/internal/domain/livestat"
)

// tierPoints is indexed by competition rank (1-based).
var tierPoints = [...]int{0, 3, 2, 1}

// Award is the bonus a player holds for the gameweek.
type Award struct {
	Points int
	// Official is true when every contributing fixture has its bonus posted.
	Official bool
}

// Project ranks one fixture's players by BPS and returns provisional bonus per player.
// Ranking uses competition order: tied players share a rank and consume the ranks
// below them, so two tied leaders both get 3 and the next score gets 1.
// Players without minutes are not ranked.
func Project(stats []livestat.Stat) map[int]int {
	ranked := make([]livestat.Stat, 0, len(stats))
	for _, s := range stats {
		if s.Minutes <= 0 {
			continue
		}
		ranked = append(ranked, s)
	}

	out := make(map[int]int, 3)
	if len(ranked) == 0 {
		return out
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].BPS != ranked[j].BPS {
			return ranked[i].BPS > ranked[j].BPS
		}
		return ranked[i].PlayerID < ranked[j].PlayerID
	})

	rank := 1
	for i, s := range ranked {
		if i > 0 && s.BPS != ranked[i-1].BPS {
			rank = i + 1
		}
		if rank >= len(tierPoints) {
			break
		}
		out[s.PlayerID] = tierPoints[rank]
	}

	return out
}

// ForFixture returns the bonus of one fixture: nothing before kick-off, the official
// values once posted on a finished fixture, the projection otherwise.
func ForFixture(f fixture.Fixture, stats []livestat.Stat) (map[int]int, bool) {
	if !f.Status.Started() {
		return map[int]int{}, false
	}
	if f.BonusPosted && f.Status.Done() {
		out := make(map[int]int, 3)
		for _, s := range stats {
			if s.OfficialBonus > 0 {
				out[s.PlayerID] = s.OfficialBonus
			}
		}
		return out, true
	}
	return Project(stats), false
}

// ForGameweek resolves bonus for every player of the snapshot. Players with more than
// one fixture accumulate bonus across them. Stats pointing at unknown fixtures are
// treated as not started.
func ForGameweek(fixtures fixture.Set, snapshot livestat.Snapshot) map[int]Award {
	byID := make(map[int]fixture.Fixture, len(fixtures))
	for _, f := range fixtures {
		byID[f.ID] = f
	}

	out := make(map[int]Award)
	for fixtureID, stats := range snapshot.ByFixture() {
		f, ok := byID[fixtureID]
		if !ok {
			continue
		}
		awarded, official := ForFixture(f, stats)
		for _, s := range stats {
			current, seen := out[s.PlayerID]
			if !seen {
				current.Official = true
			}
			current.Points += awarded[s.PlayerID]
			current.Official = current.Official && official
			out[s.PlayerID] = current
		}
	}

	return out
}
