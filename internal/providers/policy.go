package providers

import (
	"context"

	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/lines"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/weather"
)

// Call is one upstream operation with its result erased.
type Call func(ctx context.Context) (any, error)

// Policy decorates the call for operation op. Policies are applied outermost first.
type Policy func(op string, next Call) Call

func chain(op string, call Call, policies []Policy) Call {
	for i := len(policies) - 1; i >= 0; i-- {
		if policies[i] != nil {
			call = policies[i](op, call)
		}
	}
	return call
}

func invoke[T any](ctx context.Context, policies []Policy, op string, fn func(context.Context) (T, error)) (T, error) {
	call := chain(op, func(ctx context.Context) (any, error) {
		v, err := fn(ctx)
		return v, err
	}, policies)

	out, err := call(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := out.(T)
	return v, nil
}

// guardedProvider runs every DataProvider call through a policy chain.
type guardedProvider struct {
	next     DataProvider
	policies []Policy
}

// Guard wraps next so each operation passes through policies (outermost first).
func Guard(next DataProvider, policies ...Policy) DataProvider {
	if len(policies) == 0 {
		return next
	}
	return &guardedProvider{next: next, policies: policies}
}

func (g *guardedProvider) FetchGames(ctx context.Context, q GameQuery) ([]games.Fixture, error) {
	return invoke(ctx, g.policies, OpGames, func(ctx context.Context) ([]games.Fixture, error) {
		return g.next.FetchGames(ctx, q)
	})
}

func (g *guardedProvider) FetchRecords(ctx context.Context, year int) ([]teams.SeasonRecord, error) {
	return invoke(ctx, g.policies, OpRecords, func(ctx context.Context) ([]teams.SeasonRecord, error) {
		return g.next.FetchRecords(ctx, year)
	})
}

func (g *guardedProvider) FetchLines(ctx context.Context, q LineQuery) ([]lines.GameLines, error) {
	return invoke(ctx, g.policies, OpLines, func(ctx context.Context) ([]lines.GameLines, error) {
		return g.next.FetchLines(ctx, q)
	})
}

func (g *guardedProvider) FetchRatings(ctx context.Context, year int) ([]teams.Rating, error) {
	return invoke(ctx, g.policies, OpRatings, func(ctx context.Context) ([]teams.Rating, error) {
		return g.next.FetchRatings(ctx, year)
	})
}

func (g *guardedProvider) FetchVenues(ctx context.Context) ([]games.Venue, error) {
	return invoke(ctx, g.policies, OpVenues, func(ctx context.Context) ([]games.Venue, error) {
		return g.next.FetchVenues(ctx)
	})
}

func (g *guardedProvider) FetchCalendar(ctx context.Context, year int) ([]games.CalendarWeek, error) {
	return invoke(ctx, g.policies, OpCalendar, func(ctx context.Context) ([]games.CalendarWeek, error) {
		return g.next.FetchCalendar(ctx, year)
	})
}

func (g *guardedProvider) FetchSeasonStats(ctx context.Context, year int) ([]teams.SeasonStat, error) {
	return invoke(ctx, g.policies, OpSeasonStats, func(ctx context.Context) ([]teams.SeasonStat, error) {
		return g.next.FetchSeasonStats(ctx, year)
	})
}

// Close forwards to the wrapped provider when it holds resources.
func (g *guardedProvider) Close() error {
	if c, ok := g.next.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

type guardedWeather struct {
	next     WeatherProvider
	policies []Policy
}

// GuardWeather wraps a weather provider with policies.
func GuardWeather(next WeatherProvider, policies ...Policy) WeatherProvider {
	if len(policies) == 0 {
		return next
	}
	return &guardedWeather{next: next, policies: policies}
}

func (g *guardedWeather) FetchWeather(ctx context.Context, venue games.Venue) (weather.Snapshot, error) {
	return invoke(ctx, g.policies, OpWeather, func(ctx context.Context) (weather.Snapshot, error) {
		return g.next.FetchWeather(ctx, venue)
	})
}
