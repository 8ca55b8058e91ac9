package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fpl-live-league/internal/domain/league"
)

// LeagueRepository serves the league roster loaded at startup.
type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[string]league.League
	orders []string
}

var _ league.Repository = (*LeagueRepository)(nil)

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))

	for _, l := range leagues {
		if _, dup := items[l.ID]; !dup {
			orders = append(orders, l.ID)
		}
		items[l.ID] = cloneLeague(l)
	}

	return &LeagueRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneLeague(r.items[id]))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return cloneLeague(l), true, nil
}

func cloneLeague(l league.League) league.League {
	out := l
	out.Excluded = append([]int(nil), l.Excluded...)
	out.Teams = make([]league.Team, 0, len(l.Teams))
	for _, team := range l.Teams {
		team.ManagerIDs = append([]int(nil), team.ManagerIDs...)
		out.Teams = append(out.Teams, team)
	}
	return out
}
