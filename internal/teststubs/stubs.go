package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

// StubProvider is a test double for providers.GameProvider.
type StubProvider struct {
	Games  []games.GameRecord
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context) ([]games.GameRecord, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[games.SeasonKey][]games.GameRecord
	Err     error
}

// WriteSeasons records the log grouped by season for verification in tests.
func (w *StubSnapshotWriter) WriteSeasons(log []games.GameRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	if w.Written == nil {
		w.Written = make(map[games.SeasonKey][]games.GameRecord)
	}
	for _, g := range log {
		w.Written[g.Key()] = append(w.Written[g.Key()], g)
	}
	return nil
}

// Seasons reports how many seasons have been written.
func (w *StubSnapshotWriter) Seasons() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Games   []games.GameRecord
	LoadErr error
}

// LoadAll returns the configured log.
func (s *StubSnapshotStore) LoadAll() ([]games.GameRecord, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return s.Games, nil
}
