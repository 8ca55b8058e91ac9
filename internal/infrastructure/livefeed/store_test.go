package livefeed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fpl-live-league/internal/usecase"
)

type fakeRedis struct {
	values  map[string]string
	ttls    map[string]time.Duration
	streams map[string][]*redis.XAddArgs
	setErr  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values:  make(map[string]string),
		ttls:    make(map[string]time.Duration),
		streams: make(map[string][]*redis.XAddArgs),
	}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.streams[a.Stream] = append(f.streams[a.Stream], a)
	return redis.NewStringResult("1-0", nil)
}

func sampleStandings() usecase.LiveStandings {
	return usecase.LiveStandings{
		LeagueID:  "elite",
		Gameweek:  21,
		Live:      true,
		RunID:     "run-1",
		UpdatedAt: time.Date(2026, 1, 10, 15, 0, 0, 0, time.UTC),
		Rows: []usecase.LiveStandingRow{
			{EntryID: 7, Name: "Ann", Rank: 1, RankDelta: 2, LeaguePoints: 33, Chips: []string{"3xc"}},
			{EntryID: 9, Name: "Ben", Rank: 2, IsNew: true, LeaguePoints: 30, Chips: []string{}},
		},
	}
}

func TestRedisStore_PublishThenLatest(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	store := NewRedisStore(client, 5*time.Minute, 100)

	if err := store.Publish(context.Background(), sampleStandings()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := client.ttls["live:league:elite"]; got != 5*time.Minute {
		t.Fatalf("unexpected ttl got=%s want=5m", got)
	}
	updates := client.streams["live:league:elite:updates"]
	if len(updates) != 1 || updates[0].MaxLen != 100 {
		t.Fatalf("unexpected stream writes %+v", updates)
	}

	got, ok, err := store.Latest(context.Background(), "elite")
	if err != nil || !ok {
		t.Fatalf("latest: ok=%v err=%v", ok, err)
	}
	if got.Gameweek != 21 || len(got.Rows) != 2 {
		t.Fatalf("unexpected standings %+v", got)
	}
	if got.Rows[0].RankDelta != 2 || !got.Rows[1].IsNew {
		t.Fatalf("rank deltas lost: %+v", got.Rows)
	}
}

func TestRedisStore_LatestMissing(t *testing.T) {
	t.Parallel()

	store := NewRedisStore(newFakeRedis(), 0, 0)
	_, ok, err := store.Latest(context.Background(), "nope")
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestRedisStore_PublishError(t *testing.T) {
	t.Parallel()

	client := newFakeRedis()
	client.setErr = errors.New("connection refused")
	store := NewRedisStore(client, time.Minute, 10)

	if err := store.Publish(context.Background(), sampleStandings()); !errors.Is(err, client.setErr) {
		t.Fatalf("expected set error, got %v", err)
	}
	if len(client.streams) != 0 {
		t.Fatalf("stream must not be written when set fails")
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if _, ok, _ := store.Latest(context.Background(), "elite"); ok {
		t.Fatalf("expected empty store")
	}
	_ = store.Publish(context.Background(), sampleStandings())
	got, ok, _ := store.Latest(context.Background(), "elite")
	if !ok || got.RunID != "run-1" {
		t.Fatalf("unexpected latest %+v ok=%v", got, ok)
	}
}
