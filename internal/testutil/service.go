package testutil

import (
	"github.com/preston-bernstein/league-standings-service/internal/app/games"
	domaingames "github.com/preston-bernstein/league-standings-service/internal/domain/games"
	"github.com/preston-bernstein/league-standings-service/internal/standings"
	"github.com/preston-bernstein/league-standings-service/internal/store"
)

// NewServiceWithGames builds a games service backed by an in-memory store preloaded with log.
func NewServiceWithGames(log []domaingames.GameRecord) *games.Service {
	ms := store.NewMemoryStore()
	if len(log) > 0 {
		ms.SetGames(log)
	}
	return games.NewService(ms, nil, standings.TieBreakHeadToHead)
}
