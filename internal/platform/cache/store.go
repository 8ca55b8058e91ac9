package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/fpl-live-league/internal/platform/resilience"
)

var errNilLoader = errors.New("loader is required")

type item[V any] struct {
	value     V
	expiresAt time.Time
	permanent bool
}

// Store is an in-process TTL cache. A zero TTL keeps entries until deleted.
type Store[V any] struct {
	mu     sync.RWMutex
	items  map[string]item[V]
	ttl    time.Duration
	clock  clockwork.Clock
	flight resilience.SingleFlight[V]
}

func NewStore[V any](ttl time.Duration, clock clockwork.Clock) *Store[V] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store[V]{
		items: make(map[string]item[V]),
		ttl:   ttl,
		clock: clock,
	}
}

func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !it.permanent && !it.expiresAt.After(s.clock.Now()) {
		s.Delete(key)
		return zero, false
	}
	return it.value, true
}

func (s *Store[V]) Set(key string, value V) {
	s.SetWithTTL(key, value, s.ttl)
}

// SetWithTTL overrides the store TTL for one entry. A zero TTL never expires.
func (s *Store[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if key == "" {
		return
	}

	it := item[V]{value: value, permanent: ttl <= 0}
	if ttl > 0 {
		it.expiresAt = s.clock.Now().Add(ttl)
	}

	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
}

func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

func (s *Store[V]) DeletePrefix(prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value or loads it once for all concurrent callers.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	if loader == nil {
		var zero V
		return zero, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(key); ok {
		return value, nil
	}

	value, _, err := s.flight.Do(ctx, key, func() (V, error) {
		if cached, ok := s.Get(key); ok {
			return cached, nil
		}
		// The load is shared, so one caller cancelling must not fail the others.
		loaded, err := loader(context.WithoutCancel(ctx))
		if err != nil {
			return loaded, err
		}
		s.Set(key, loaded)
		return loaded, nil
	})
	return value, err
}
