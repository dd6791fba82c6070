package store

import (
	"sort"
	"sync"

	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
)

// MemoryStore keeps thread-safe warmed boards in memory, keyed by season and division.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]domaingames.Board
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		boards: make(map[string]domaingames.Board),
	}
}

// Board returns a copy of the board stored under key.
func (s *MemoryStore) Board(key string) (domaingames.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.boards[key]
	if !ok {
		return domaingames.Board{}, false
	}
	return copyBoard(b), true
}

// SetBoard replaces the board stored under key.
func (s *MemoryStore) SetBoard(key string, board domaingames.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boards[key] = copyBoard(board)
}

// Keys lists stored board keys in sorted order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.boards))
	for k := range s.boards {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyBoard(b domaingames.Board) domaingames.Board {
	out := b
	out.Games = append([]domaingames.Game(nil), b.Games...)
	out.Metadata.UnmatchedTeams = append([]string(nil), b.Metadata.UnmatchedTeams...)
	return out
}
