package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
)

// StubWarmer is a test double for poller.Warmer.
type StubWarmer struct {
	mu     sync.Mutex
	Board  domaingames.Board
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}

	Seasons   []int
	Divisions []string
}

// Warm returns the configured board and error while tracking calls.
func (s *StubWarmer) Warm(ctx context.Context, season int, division string) (domaingames.Board, error) {
	_ = ctx
	s.mu.Lock()
	s.Seasons = append(s.Seasons, season)
	s.Divisions = append(s.Divisions, division)
	board, err := s.Board, s.Err
	s.mu.Unlock()

	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return board, err
}

// SetErr swaps the configured error under lock.
func (s *StubWarmer) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

// StubBoardStore is a test double for games.Store.
type StubBoardStore struct {
	mu     sync.Mutex
	Boards map[string]domaingames.Board
	Sets   int
}

// Board returns the stored board for key.
func (s *StubBoardStore) Board(key string) (domaingames.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Boards[key]
	return b, ok
}

// SetBoard records the board for verification in tests.
func (s *StubBoardStore) SetBoard(key string, board domaingames.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Boards == nil {
		s.Boards = make(map[string]domaingames.Board)
	}
	s.Boards[key] = board
	s.Sets++
}
