package store

import (
	"sync"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

// MemoryStore keeps a thread-safe copy of the game log in encounter order.
type MemoryStore struct {
	mu    sync.RWMutex
	games []games.GameRecord
	index map[string]int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
	}
}

// ListGames returns a copy of the current log.
func (s *MemoryStore) ListGames() []games.GameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.GameRecord, len(s.games))
	copy(result, s.games)
	return result
}

// GetGame retrieves a game by ID.
func (s *MemoryStore) GetGame(id string) (games.GameRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return games.GameRecord{}, false
	}
	return s.games[i], true
}

// SetGames replaces the log. Records without an ID stay listable but cannot
// be fetched individually; on duplicate IDs the last one wins the lookup.
func (s *MemoryStore) SetGames(log []games.GameRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make([]games.GameRecord, len(log))
	copy(s.games, log)
	s.index = make(map[string]int, len(log))
	for i, g := range s.games {
		if g.ID != "" {
			s.index[g.ID] = i
		}
	}
}

// Len reports how many records are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
