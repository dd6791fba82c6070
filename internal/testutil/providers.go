package testutil

import (
	"context"

	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
	"github.com/preston-bernstein/cfb-data-service/internal/providers/fixture"
)

// ErrProvider serves fixture data except for fixtures, which fail with Err.
type ErrProvider struct {
	*fixture.Provider
	Err error
}

// NewErrProvider wraps the fixture provider with a failing game fetch.
func NewErrProvider(err error) ErrProvider {
	return ErrProvider{Provider: fixture.New(), Err: err}
}

func (p ErrProvider) FetchGames(ctx context.Context, q providers.GameQuery) ([]domaingames.Fixture, error) {
	_ = ctx
	_ = q
	return nil, p.Err
}

// UnavailableProvider fails fixture fetches the way an open breaker does.
func UnavailableProvider() ErrProvider {
	return NewErrProvider(providers.ErrProviderUnavailable)
}
