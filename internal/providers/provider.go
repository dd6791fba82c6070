package providers

import (
	"context"

	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/lines"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/weather"
)

// Season types accepted upstream.
const (
	SeasonRegular    = "regular"
	SeasonPostseason = "postseason"
	SeasonBoth       = "both"
)

// GameQuery selects games. Zero Week and empty Team mean "any".
type GameQuery struct {
	Year       int
	Week       int
	SeasonType string
	Team       string
}

// LineQuery selects betting lines. Zero Week and empty Team mean "any".
type LineQuery struct {
	Year       int
	Week       int
	SeasonType string
	Team       string
}

// GameProvider fetches fixtures.
type GameProvider interface {
	FetchGames(ctx context.Context, q GameQuery) ([]games.Fixture, error)
}

// RecordProvider fetches season records for every team.
type RecordProvider interface {
	FetchRecords(ctx context.Context, year int) ([]teams.SeasonRecord, error)
}

// LineProvider fetches betting lines grouped per game.
type LineProvider interface {
	FetchLines(ctx context.Context, q LineQuery) ([]lines.GameLines, error)
}

// RatingProvider fetches SP+ ratings.
type RatingProvider interface {
	FetchRatings(ctx context.Context, year int) ([]teams.Rating, error)
}

// VenueProvider fetches stadium locations.
type VenueProvider interface {
	FetchVenues(ctx context.Context) ([]games.Venue, error)
}

// CalendarProvider fetches the season's week calendar.
type CalendarProvider interface {
	FetchCalendar(ctx context.Context, year int) ([]games.CalendarWeek, error)
}

// SeasonStatProvider fetches named season aggregates per team.
type SeasonStatProvider interface {
	FetchSeasonStats(ctx context.Context, year int) ([]teams.SeasonStat, error)
}

// DataProvider combines every football data capability.
type DataProvider interface {
	GameProvider
	RecordProvider
	LineProvider
	RatingProvider
	VenueProvider
	CalendarProvider
	SeasonStatProvider
}

// WeatherProvider fetches current conditions at a venue.
type WeatherProvider interface {
	FetchWeather(ctx context.Context, venue games.Venue) (weather.Snapshot, error)
}

// Operation names used for metrics keys and logs.
const (
	OpGames       = "games"
	OpRecords     = "records"
	OpLines       = "lines"
	OpRatings     = "ratings"
	OpVenues      = "venues"
	OpCalendar    = "calendar"
	OpSeasonStats = "season_stats"
	OpWeather     = "current"
)
