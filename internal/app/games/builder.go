// Package games builds the joined game board: fixtures plus records, lines, weather, SP+
// ratings, and per-team statistics.
package games

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/lines"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/weather"
	"github.com/preston-bernstein/cfb-data-service/internal/fanout"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
	"github.com/preston-bernstein/cfb-data-service/internal/metrics"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
	"github.com/preston-bernstein/cfb-data-service/internal/teamnames"
	"github.com/preston-bernstein/cfb-data-service/internal/timeutil"
)

const defaultTimezone = "America/New_York"

// TeamStats computes a team's season statistics.
type TeamStats interface {
	ForTeam(ctx context.Context, year int, team string, sos domain.Value[teams.StrengthOfSchedule]) (teams.Statistics, error)
	SOSIndex(ratings []teams.Rating) map[string]teams.StrengthOfSchedule
	SOSFor(index map[string]teams.StrengthOfSchedule, team string) domain.Value[teams.StrengthOfSchedule]
}

// Options wires a Builder.
type Options struct {
	Provider        providers.DataProvider
	Weather         providers.WeatherProvider
	Stats           TeamStats
	Pool            *fanout.Pool
	Names           *teamnames.Normalizer
	DefaultDivision string
	Logger          *slog.Logger
	Metrics         *metrics.Recorder
	Now             func() time.Time
	Location        *time.Location
}

// Builder assembles boards. It holds no per-request state and is safe for concurrent use.
type Builder struct {
	provider        providers.DataProvider
	weather         providers.WeatherProvider
	stats           TeamStats
	pool            *fanout.Pool
	names           *teamnames.Normalizer
	defaultDivision string
	logger          *slog.Logger
	metrics         *metrics.Recorder
	now             func() time.Time
	loc             *time.Location
}

// NewBuilder constructs a Builder with defaults for unset options.
func NewBuilder(opts Options) *Builder {
	b := &Builder{
		provider:        opts.Provider,
		weather:         opts.Weather,
		stats:           opts.Stats,
		pool:            opts.Pool,
		names:           opts.Names,
		defaultDivision: opts.DefaultDivision,
		logger:          logging.OrDiscard(opts.Logger),
		metrics:         opts.Metrics,
		now:             opts.Now,
		loc:             opts.Location,
	}
	if b.names == nil {
		b.names = teamnames.Default()
	}
	if b.pool == nil {
		b.pool = fanout.New(3, 6)
	}
	if b.defaultDivision == "" {
		b.defaultDivision = domaingames.DivisionFBS
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.loc == nil {
		b.loc = timeutil.LoadLocation(defaultTimezone, time.UTC)
	}
	return b
}

// Normalize validates q and applies the default division.
func (b *Builder) Normalize(q Query) (Query, error) {
	return q.normalize(b.defaultDivision)
}

// joinInputs is everything fetched alongside the fixtures.
type joinInputs struct {
	records []teams.SeasonRecord
	lines   []lines.GameLines
	ratings []teams.Rating
	venues  []domaingames.Venue
	weather map[string]weather.Snapshot
	stats   map[string]teams.Statistics
}

// Build fetches and joins one board. Every family except the fixtures degrades to
// unavailable fields. An upstream that cannot serve the fixtures yields an empty board, so
// only invalid queries, cancelled callers, and undecodable payloads are errors.
func (b *Builder) Build(ctx context.Context, q Query) (domaingames.Board, error) {
	board, err := b.build(ctx, q)
	if err == nil || ctx.Err() != nil || !providers.IsUpstreamFailure(err) {
		return board, err
	}
	q, _ = b.Normalize(q)
	logging.FromContext(ctx, b.logger).Warn("games unavailable, serving an empty board",
		logging.FieldSeason, q.Season, logging.FieldDivision, q.Division, "error", err)
	return domaingames.Board{
		Games: []domaingames.Game{},
		Metadata: domaingames.Metadata{
			Season:      q.Season,
			Week:        q.Week,
			SeasonType:  q.SeasonType,
			Date:        q.Date,
			Division:    q.Division,
			LastUpdated: b.now().UTC(),
		},
	}, nil
}

// build is Build without the empty-board fallback.
func (b *Builder) build(ctx context.Context, q Query) (domaingames.Board, error) {
	start := b.now()
	q, err := b.Normalize(q)
	if err != nil {
		return domaingames.Board{}, err
	}
	logger := logging.FromContext(ctx, b.logger).With(
		logging.FieldSeason, q.Season, logging.FieldDivision, q.Division)

	q = b.resolveWeek(ctx, logger, q)

	fixtures, err := b.provider.FetchGames(ctx, providers.GameQuery{Year: q.Season, Week: q.Week, SeasonType: q.SeasonType})
	if err != nil {
		b.metrics.RecordBoardBuild(q.Division, 0, 0, time.Since(start), err)
		return domaingames.Board{}, fmt.Errorf("fetch games: %w", err)
	}
	fixtures = filterDate(fixtures, q.Date, b.loc)
	fixtures = FilterDivision(fixtures, q.Division)

	in := b.gather(ctx, logger, q, fixtures)

	unmatched := &teamnames.Unmatched{}
	out := make([]domaingames.Game, 0, len(fixtures))
	j := b.newJoiner(in, unmatched)
	for _, f := range fixtures {
		out = append(out, j.join(f))
	}

	names := unmatched.List()
	if len(names) > 0 {
		logger.Warn("team names missed the record join", "teams", names, logging.FieldCount, len(names))
	}

	elapsed := b.now().Sub(start)
	b.metrics.RecordBoardBuild(q.Division, len(out), len(names), elapsed, nil)
	logger.Info("board built",
		logging.FieldWeek, q.Week,
		logging.FieldCount, len(out),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)

	return domaingames.Board{
		Games: out,
		Metadata: domaingames.Metadata{
			TotalGames:     len(out),
			Season:         q.Season,
			Week:           q.Week,
			SeasonType:     q.SeasonType,
			Date:           q.Date,
			Division:       q.Division,
			LastUpdated:    b.now().UTC(),
			ElapsedMS:      elapsed.Milliseconds(),
			UnmatchedTeams: names,
		},
	}, nil
}

// resolveWeek fills Week and SeasonType from the calendar when the caller gave no week.
// A calendar failure leaves the week open and the whole season is fetched.
func (b *Builder) resolveWeek(ctx context.Context, logger *slog.Logger, q Query) Query {
	if q.Week > 0 {
		return q
	}
	calendar, err := b.provider.FetchCalendar(ctx, q.Season)
	if err != nil {
		logger.Warn("calendar unavailable, fetching full season", "error", err)
		return q
	}

	at := b.now()
	if q.Date != "" {
		day, _ := timeutil.ParseDateIn(q.Date, b.loc)
		at = timeutil.Midday(day)
	}
	if week, ok := resolveWeek(calendar, at); ok {
		q.Week = week.Week
		if q.SeasonType == "" {
			q.SeasonType = week.SeasonType
		}
	}
	return q
}

// gather fetches records, lines, ratings, and venues together, then weather per distinct
// venue and statistics per team.
func (b *Builder) gather(ctx context.Context, logger *slog.Logger, q Query, fixtures []domaingames.Fixture) joinInputs {
	var in joinInputs
	if len(fixtures) == 0 {
		return in
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		in.records = degrade(logger, "records", func() ([]teams.SeasonRecord, error) {
			return b.provider.FetchRecords(ctx, q.Season)
		})
	}()
	go func() {
		defer wg.Done()
		in.lines = degrade(logger, "lines", func() ([]lines.GameLines, error) {
			return b.provider.FetchLines(ctx, providers.LineQuery{Year: q.Season, Week: q.Week, SeasonType: q.SeasonType})
		})
	}()
	go func() {
		defer wg.Done()
		in.ratings = degrade(logger, "ratings", func() ([]teams.Rating, error) {
			return b.provider.FetchRatings(ctx, q.Season)
		})
	}()
	go func() {
		defer wg.Done()
		in.venues = degrade(logger, "venues", func() ([]domaingames.Venue, error) {
			return b.provider.FetchVenues(ctx)
		})
	}()
	wg.Wait()

	wg.Add(2)
	go func() {
		defer wg.Done()
		in.weather = b.fetchWeather(ctx, logger, fixtures, in.venues)
	}()
	go func() {
		defer wg.Done()
		in.stats = b.fetchStats(ctx, logger, q.Season, fixtures, in.ratings)
	}()
	wg.Wait()
	return in
}

func degrade[T any](logger *slog.Logger, family string, fetch func() ([]T, error)) []T {
	out, err := fetch()
	if err != nil {
		logger.Warn("upstream family unavailable", logging.FieldOperation, family, "error", err)
		return nil
	}
	return out
}

// fetchWeather looks up each distinct venue once, tolerating individual failures.
func (b *Builder) fetchWeather(ctx context.Context, logger *slog.Logger, fixtures []domaingames.Fixture, venues []domaingames.Venue) map[string]weather.Snapshot {
	out := map[string]weather.Snapshot{}
	if b.weather == nil {
		return out
	}

	byID := make(map[int]domaingames.Venue, len(venues))
	byName := make(map[string]domaingames.Venue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v
		byName[v.Name] = v
	}

	var targets []domaingames.Venue
	seen := map[string]bool{}
	for _, f := range fixtures {
		if f.Venue == "" || seen[f.Venue] {
			continue
		}
		seen[f.Venue] = true
		v, ok := byID[f.VenueID]
		if !ok {
			v, ok = byName[f.Venue]
		}
		if !ok {
			v = domaingames.Venue{ID: f.VenueID}
		}
		v.Name = f.Venue
		targets = append(targets, v)
	}

	results := fanout.Settle(ctx, targets, b.weather.FetchWeather)
	for i, r := range results {
		if r.Err != nil {
			logger.Warn("venue weather unavailable", logging.FieldVenue, targets[i].Name, "error", r.Err)
			continue
		}
		if !r.Value.Empty() {
			out[targets[i].Name] = r.Value
		}
	}
	return out
}

// fetchStats runs per-team statistics through the bounded pool, keyed by normalized name.
func (b *Builder) fetchStats(ctx context.Context, logger *slog.Logger, season int, fixtures []domaingames.Fixture, ratings []teams.Rating) map[string]teams.Statistics {
	out := map[string]teams.Statistics{}
	if b.stats == nil {
		return out
	}

	var names []string
	seen := map[string]bool{}
	for _, f := range fixtures {
		for _, name := range []string{f.HomeTeam, f.AwayTeam} {
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	sos := b.stats.SOSIndex(ratings)
	results := fanout.Map(ctx, b.pool, names, func(ctx context.Context, team string) (teams.Statistics, error) {
		return b.stats.ForTeam(ctx, season, team, b.stats.SOSFor(sos, team))
	})
	failed := 0
	for i, r := range results {
		if r.Err != nil {
			failed++
			logger.Debug("team stats unavailable", logging.FieldTeam, names[i], "error", r.Err)
			continue
		}
		out[b.names.Key(names[i])] = r.Value
	}
	if failed > 0 {
		logger.Warn("team stats unavailable for some teams", logging.FieldCount, failed)
	}
	return out
}
