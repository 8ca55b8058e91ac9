package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fpl-live-league/internal/domain/snapshot"
)

type snapshotKey struct {
	leagueID string
	gameweek int
}

// SnapshotRepository keeps standings snapshots in process memory.
type SnapshotRepository struct {
	mu    sync.RWMutex
	items map[snapshotKey]snapshot.Gameweek
}

var _ snapshot.Repository = (*SnapshotRepository)(nil)

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{items: make(map[snapshotKey]snapshot.Gameweek)}
}

func (r *SnapshotRepository) GetGameweek(_ context.Context, leagueID string, gameweek int) (snapshot.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gw, ok := r.items[snapshotKey{leagueID: leagueID, gameweek: gameweek}]
	if !ok {
		return snapshot.Gameweek{}, false, nil
	}
	return cloneGameweek(gw), true, nil
}

func (r *SnapshotRepository) LatestBefore(_ context.Context, leagueID string, gameweek int) (snapshot.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best := 0
	for key := range r.items {
		if key.leagueID == leagueID && key.gameweek < gameweek && key.gameweek > best {
			best = key.gameweek
		}
	}
	if best == 0 {
		return snapshot.Gameweek{}, false, nil
	}
	return cloneGameweek(r.items[snapshotKey{leagueID: leagueID, gameweek: best}]), true, nil
}

func (r *SnapshotRepository) SaveGameweek(_ context.Context, gw snapshot.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[snapshotKey{leagueID: gw.LeagueID, gameweek: gw.Gameweek}] = cloneGameweek(gw)
	return nil
}

func cloneGameweek(gw snapshot.Gameweek) snapshot.Gameweek {
	out := gw
	out.Rows = append([]snapshot.Row(nil), gw.Rows...)
	out.Fixtures = append([]snapshot.FixtureResult(nil), gw.Fixtures...)
	return out
}
