package livefeed

import (
	"context"
	"sync"

	"github.com/riskibarqy/fpl-live-league/internal/usecase"
)

// MemoryStore is used when Redis is disabled.
type MemoryStore struct {
	mu     sync.RWMutex
	latest map[string]usecase.LiveStandings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{latest: make(map[string]usecase.LiveStandings)}
}

func (s *MemoryStore) Publish(_ context.Context, standings usecase.LiveStandings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest[standings.LeagueID] = standings
	return nil
}

func (s *MemoryStore) Latest(_ context.Context, leagueID string) (usecase.LiveStandings, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.latest[leagueID]
	return v, ok, nil
}
