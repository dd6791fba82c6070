package games

import (
	"context"

	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
)

// Store defines the contract for keeping warmed boards.
type Store interface {
	Board(key string) (domaingames.Board, bool)
	SetBoard(key string, board domaingames.Board)
}

// Service serves boards, preferring a warmed board for unfiltered season requests.
type Service struct {
	builder *Builder
	store   Store
}

// NewService constructs a Service. store may be nil.
func NewService(builder *Builder, store Store) *Service {
	return &Service{builder: builder, store: store}
}

// Games returns the board for q. A request with neither week nor date is answered from the
// warmed board for that season and division when one exists.
func (s *Service) Games(ctx context.Context, q Query) (domaingames.Board, error) {
	q, err := s.builder.Normalize(q)
	if err != nil {
		return domaingames.Board{}, err
	}
	if s.store != nil && q.Week == 0 && q.Date == "" {
		if board, ok := s.store.Board(BoardKey(q.Season, q.Division)); ok {
			board.Metadata.Cached = true
			return board, nil
		}
	}
	return s.builder.Build(ctx, q)
}

// Warm builds the current-week board for season and division and stores it. An upstream
// failure is returned and the previously warmed board stays in place.
func (s *Service) Warm(ctx context.Context, season int, division string) (domaingames.Board, error) {
	q, err := s.builder.Normalize(Query{Season: season, Division: division})
	if err != nil {
		return domaingames.Board{}, err
	}
	board, err := s.builder.build(ctx, q)
	if err != nil {
		return domaingames.Board{}, err
	}
	if s.store != nil {
		s.store.SetBoard(BoardKey(q.Season, q.Division), board)
	}
	return board, nil
}
