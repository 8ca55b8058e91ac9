package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/fpl-live-league/internal/domain/snapshot"
	basecache "github.com/riskibarqy/fpl-live-league/internal/platform/cache"
)

type cachedGameweek struct {
	value  snapshot.Gameweek
	exists bool
}

// SnapshotRepository caches snapshot reads. Settled gameweeks never change, so they
// stay cached until the league is written again.
type SnapshotRepository struct {
	next  snapshot.Repository
	cache *basecache.Store[cachedGameweek]
}

var _ snapshot.Repository = (*SnapshotRepository)(nil)

// NewSnapshotRepository caches live gameweeks for ttl and settled ones indefinitely.
func NewSnapshotRepository(next snapshot.Repository, ttl time.Duration, clock clockwork.Clock) *SnapshotRepository {
	return &SnapshotRepository{next: next, cache: basecache.NewStore[cachedGameweek](ttl, clock)}
}

func leaguePrefix(leagueID string) string {
	return "snapshot:" + leagueID + ":"
}

func (r *SnapshotRepository) GetGameweek(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, bool, error) {
	key := leaguePrefix(leagueID) + "gw:" + strconv.Itoa(gameweek)
	return r.load(ctx, key, func(ctx context.Context) (snapshot.Gameweek, bool, error) {
		return r.next.GetGameweek(ctx, leagueID, gameweek)
	})
}

func (r *SnapshotRepository) LatestBefore(ctx context.Context, leagueID string, gameweek int) (snapshot.Gameweek, bool, error) {
	key := leaguePrefix(leagueID) + "before:" + strconv.Itoa(gameweek)
	return r.load(ctx, key, func(ctx context.Context) (snapshot.Gameweek, bool, error) {
		return r.next.LatestBefore(ctx, leagueID, gameweek)
	})
}

func (r *SnapshotRepository) SaveGameweek(ctx context.Context, gw snapshot.Gameweek) error {
	if err := r.next.SaveGameweek(ctx, gw); err != nil {
		return err
	}
	r.cache.DeletePrefix(leaguePrefix(gw.LeagueID))
	return nil
}

func (r *SnapshotRepository) load(ctx context.Context, key string, loader func(context.Context) (snapshot.Gameweek, bool, error)) (snapshot.Gameweek, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedGameweek, error) {
		item, exists, err := loader(ctx)
		if err != nil {
			return cachedGameweek{}, fmt.Errorf("load %s: %w", key, err)
		}
		return cachedGameweek{value: item, exists: exists}, nil
	})
	if err != nil {
		return snapshot.Gameweek{}, false, err
	}
	if v.exists && v.value.IsFinal() {
		r.cache.SetWithTTL(key, v, 0)
	}

	out := v.value
	out.Rows = append([]snapshot.Row(nil), v.value.Rows...)
	out.Fixtures = append([]snapshot.FixtureResult(nil), v.value.Fixtures...)
	return out, v.exists, nil
}
