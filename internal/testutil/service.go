package testutil

import (
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/app/games"
	"github.com/preston-bernstein/cfb-data-service/internal/app/teamstats"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
	"github.com/preston-bernstein/cfb-data-service/internal/store"
)

// FixtureNow sits inside week 1 of the fixture calendar.
var FixtureNow = time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)

// NewGamesService builds a games service over provider with a memory store. When provider
// also serves weather it is used for venue lookups.
func NewGamesService(provider providers.DataProvider) (*games.Service, *store.MemoryStore) {
	var wx providers.WeatherProvider
	if w, ok := provider.(providers.WeatherProvider); ok {
		wx = w
	}
	builder := games.NewBuilder(games.Options{
		Provider: provider,
		Weather:  wx,
		Stats:    teamstats.NewService(provider, nil, nil),
		Now:      NowAt(FixtureNow),
		Location: time.UTC,
	})
	memoryStore := store.NewMemoryStore()
	return games.NewService(builder, memoryStore), memoryStore
}
