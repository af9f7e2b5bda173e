package store

import (
	"testing"

	"github.com/preston-bernstein/league-standings-service/internal/domain/games"
)

func TestMemoryStoreSetAndGet(t *testing.T) {
	s := NewMemoryStore()

	s.SetGames([]games.GameRecord{
		{ID: "1", HomeTeam: "Blue"},
		{ID: "2", HomeTeam: "Gold"},
	})

	if got := len(s.ListGames()); got != 2 {
		t.Fatalf("expected 2 games, got %d", got)
	}

	game, ok := s.GetGame("1")
	if !ok {
		t.Fatalf("expected to find game with id 1")
	}
	if game.HomeTeam != "Blue" {
		t.Fatalf("unexpected home team %s", game.HomeTeam)
	}
}

func TestMemoryStorePreservesOrder(t *testing.T) {
	s := NewMemoryStore()
	s.SetGames([]games.GameRecord{{ID: "c"}, {ID: "a"}, {ID: "b"}})

	list := s.ListGames()
	if list[0].ID != "c" || list[1].ID != "a" || list[2].ID != "b" {
		t.Fatalf("expected encounter order preserved, got %+v", list)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.GetGame("missing"); ok {
		t.Fatalf("expected missing id to return false")
	}
}

func TestMemoryStoreSetReplacesLog(t *testing.T) {
	s := NewMemoryStore()
	s.SetGames([]games.GameRecord{{ID: "old"}})

	s.SetGames([]games.GameRecord{{ID: "new"}})

	if _, ok := s.GetGame("old"); ok {
		t.Fatalf("expected old game to be removed after replace")
	}
	if _, ok := s.GetGame("new"); !ok {
		t.Fatalf("expected new game to be present")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 game, got %d", s.Len())
	}
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.SetGames([]games.GameRecord{{ID: "copy", HomeTeam: "original"}})

	list := s.ListGames()
	list[0].HomeTeam = "mutated"

	game, ok := s.GetGame("copy")
	if !ok {
		t.Fatalf("expected to find game")
	}
	if game.HomeTeam != "original" {
		t.Fatalf("expected store to remain unchanged, got %s", game.HomeTeam)
	}
}

func TestMemoryStoreSetCopiesInput(t *testing.T) {
	s := NewMemoryStore()
	input := []games.GameRecord{{ID: "x", HomeTeam: "Blue"}}
	s.SetGames(input)
	input[0].HomeTeam = "changed"

	if g, _ := s.GetGame("x"); g.HomeTeam != "Blue" {
		t.Fatalf("expected store to hold its own copy, got %s", g.HomeTeam)
	}
}
