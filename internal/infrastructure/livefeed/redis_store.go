package livefeed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fpl-live-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultTTL       = 10 * time.Minute
	defaultStreamLen = 500
)

// Commander is the subset of *redis.Client the store needs.
type Commander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStore keeps the latest standings under live:league:{id} and appends every
// refresh to the live:league:{id}:updates stream.
type RedisStore struct {
	client    Commander
	ttl       time.Duration
	streamLen int64
}

func NewRedisStore(client Commander, ttl time.Duration, streamLen int64) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if streamLen <= 0 {
		streamLen = defaultStreamLen
	}
	return &RedisStore{client: client, ttl: ttl, streamLen: streamLen}
}

func StandingsKey(leagueID string) string {
	return "live:league:" + leagueID
}

func StreamKey(leagueID string) string {
	return StandingsKey(leagueID) + ":updates"
}

func (s *RedisStore) Publish(ctx context.Context, standings usecase.LiveStandings) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(standings); err != nil {
		return fmt.Errorf("encode live standings: %w", err)
	}
	data := buf.String()

	if err := s.client.Set(ctx, StandingsKey(standings.LeagueID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set live standings league=%s: %w", standings.LeagueID, err)
	}

	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(standings.LeagueID),
		MaxLen: s.streamLen,
		Approx: true,
		Values: map[string]interface{}{
			"run_id":   standings.RunID,
			"gameweek": standings.Gameweek,
			"live":     standings.Live,
			"data":     data,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("append live update league=%s: %w", standings.LeagueID, err)
	}
	return nil
}

func (s *RedisStore) Latest(ctx context.Context, leagueID string) (usecase.LiveStandings, bool, error) {
	data, err := s.client.Get(ctx, StandingsKey(leagueID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return usecase.LiveStandings{}, false, nil
	}
	if err != nil {
		return usecase.LiveStandings{}, false, fmt.Errorf("get live standings league=%s: %w", leagueID, err)
	}

	var out usecase.LiveStandings
	if err := sonic.Unmarshal(data, &out); err != nil {
		return usecase.LiveStandings{}, false, fmt.Errorf("decode live standings league=%s: %w", leagueID, err)
	}
	return out, true, nil
}
