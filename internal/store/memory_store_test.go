package store

import (
	"testing"

	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
)

func board(ids ...int) domaingames.Board {
	b := domaingames.Board{Metadata: domaingames.Metadata{TotalGames: len(ids)}}
	for _, id := range ids {
		b.Games = append(b.Games, domaingames.Game{ID: id, HomeTeam: "Home"})
	}
	return b
}

func TestMemoryStoreSetAndGet(t *testing.T) {
	s := NewMemoryStore()
	s.SetBoard("2025:fbs", board(1, 2))

	got, ok := s.Board("2025:fbs")
	if !ok {
		t.Fatalf("expected to find board")
	}
	if len(got.Games) != 2 || got.Metadata.TotalGames != 2 {
		t.Fatalf("unexpected board %+v", got)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Board("missing"); ok {
		t.Fatalf("expected missing key to return false")
	}
}

func TestMemoryStoreSetReplacesBoard(t *testing.T) {
	s := NewMemoryStore()
	s.SetBoard("2025:fbs", board(1))
	s.SetBoard("2025:fbs", board(7, 8, 9))

	got, _ := s.Board("2025:fbs")
	if len(got.Games) != 3 || got.Games[0].ID != 7 {
		t.Fatalf("expected replaced board, got %+v", got.Games)
	}
	if keys := s.Keys(); len(keys) != 1 || keys[0] != "2025:fbs" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestMemoryStoreReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.SetBoard("2025:all", board(1))

	got, _ := s.Board("2025:all")
	got.Games[0].HomeTeam = "mutated"

	again, _ := s.Board("2025:all")
	if again.Games[0].HomeTeam != "Home" {
		t.Fatalf("expected store to remain unchanged, got %s", again.Games[0].HomeTeam)
	}
}
