// Package analysis builds the tiered matchup report behind the analysis routes and renders
// it as narrative text.
package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/analytics"
	"github.com/preston-bernstein/cfb-data-service/internal/config"
	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/lines"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
	"github.com/preston-bernstein/cfb-data-service/internal/teamnames"
)

// ErrMissingTeam is returned when either side of the matchup is blank.
var ErrMissingTeam = errors.New("homeTeam and awayTeam are required")

// Provider is the upstream surface a matchup report reads.
type Provider interface {
	providers.GameProvider
	providers.RecordProvider
	providers.LineProvider
	providers.RatingProvider
}

// TeamStats computes a team's season statistics.
type TeamStats interface {
	ForTeam(ctx context.Context, year int, team string, sos domain.Value[teams.StrengthOfSchedule]) (teams.Statistics, error)
	SOSIndex(ratings []teams.Rating) map[string]teams.StrengthOfSchedule
	SOSFor(index map[string]teams.StrengthOfSchedule, team string) domain.Value[teams.StrengthOfSchedule]
}

// MatchupRequest names the two sides. Zero Year means the current season; zero Week means
// any week of it.
type MatchupRequest struct {
	HomeTeam string
	AwayTeam string
	Year     int
	Week     int
}

// Service assembles matchup reports.
type Service struct {
	provider Provider
	stats    TeamStats
	names    *teamnames.Normalizer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a Service. A nil normalizer uses the built-in alias table.
func NewService(provider Provider, stats TeamStats, names *teamnames.Normalizer, logger *slog.Logger) *Service {
	if names == nil {
		names = teamnames.Default()
	}
	return &Service{provider: provider, stats: stats, names: names, logger: logging.OrDiscard(logger), now: time.Now}
}

func (s *Service) resolve(req MatchupRequest) (Matchup, error) {
	home := strings.TrimSpace(req.HomeTeam)
	away := strings.TrimSpace(req.AwayTeam)
	if home == "" || away == "" {
		return Matchup{}, ErrMissingTeam
	}
	year := req.Year
	if year <= 0 {
		year = config.DefaultSeason(s.now())
	}
	week := max(req.Week, 0)
	return Matchup{HomeTeam: home, AwayTeam: away, Year: year, Week: week}, nil
}

// inputs is everything one report reads upstream.
type inputs struct {
	records  []teams.SeasonRecord
	ratings  []teams.Rating
	fixtures []games.Fixture
	lines    []lines.GameLines
	home     domain.Value[teams.Statistics]
	away     domain.Value[teams.Statistics]
}

// Analyze builds the report for req. Only a missing team is an error; every upstream family
// degrades to unavailable fields.
func (s *Service) Analyze(ctx context.Context, req MatchupRequest) (Result, error) {
	m, err := s.resolve(req)
	if err != nil {
		return Result{}, err
	}
	logger := logging.FromContext(ctx, s.logger).With(
		"homeTeam", m.HomeTeam, "awayTeam", m.AwayTeam, logging.FieldSeason, m.Year)

	in := s.gather(ctx, logger, m)
	report := s.build(m, in)
	if len(report.UnmatchedTeams) > 0 {
		logger.Warn("matchup teams missed the record join", "teams", report.UnmatchedTeams)
	}
	logger.Info("matchup analyzed",
		"lineStatus", report.Market.Status,
		"valuePlay", report.Model.ValuePlay,
	)
	return Result{Matchup: m, Report: report}, nil
}

// Context returns the report together with its narrative rendering.
func (s *Service) Context(ctx context.Context, req MatchupRequest) (Result, string, error) {
	res, err := s.Analyze(ctx, req)
	if err != nil {
		return Result{}, "", err
	}
	return res, Narrate(res), nil
}

func (s *Service) gather(ctx context.Context, logger *slog.Logger, m Matchup) inputs {
	var in inputs
	seasonType := providers.SeasonBoth
	home := s.names.Canonical(m.HomeTeam)

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		in.records = degrade(logger, "records", func() ([]teams.SeasonRecord, error) {
			return s.provider.FetchRecords(ctx, m.Year)
		})
	}()
	go func() {
		defer wg.Done()
		in.ratings = degrade(logger, "ratings", func() ([]teams.Rating, error) {
			return s.provider.FetchRatings(ctx, m.Year)
		})
	}()
	go func() {
		defer wg.Done()
		in.fixtures = degrade(logger, "games", func() ([]games.Fixture, error) {
			return s.provider.FetchGames(ctx, providers.GameQuery{Year: m.Year, Week: m.Week, SeasonType: seasonType, Team: home})
		})
	}()
	go func() {
		defer wg.Done()
		in.lines = degrade(logger, "lines", func() ([]lines.GameLines, error) {
			return s.provider.FetchLines(ctx, providers.LineQuery{Year: m.Year, Week: m.Week, SeasonType: seasonType, Team: home})
		})
	}()
	wg.Wait()

	in.home = domain.Unavailable[teams.Statistics]()
	in.away = domain.Unavailable[teams.Statistics]()
	if s.stats == nil {
		return in
	}
	sos := s.stats.SOSIndex(in.ratings)
	wg.Add(2)
	go func() {
		defer wg.Done()
		in.home = s.teamStats(ctx, logger, m.Year, home, sos)
	}()
	go func() {
		defer wg.Done()
		in.away = s.teamStats(ctx, logger, m.Year, s.names.Canonical(m.AwayTeam), sos)
	}()
	wg.Wait()
	return in
}

func (s *Service) teamStats(ctx context.Context, logger *slog.Logger, year int, team string, sos map[string]teams.StrengthOfSchedule) domain.Value[teams.Statistics] {
	st, err := s.stats.ForTeam(ctx, year, team, s.stats.SOSFor(sos, team))
	if err != nil {
		logger.Warn("team stats unavailable", logging.FieldTeam, team, "error", err)
		return domain.Unavailable[teams.Statistics]()
	}
	return domain.Observed(st)
}

func degrade[T any](logger *slog.Logger, family string, fetch func() ([]T, error)) []T {
	out, err := fetch()
	if err != nil {
		logger.Warn("upstream family unavailable", logging.FieldOperation, family, "error", err)
		return nil
	}
	return out
}

func (s *Service) build(m Matchup, in inputs) Report {
	var r Report
	unmatched := &teamnames.Unmatched{}

	records := teamnames.Index(s.names, in.records, func(rec teams.SeasonRecord) string { return rec.Team })
	record := func(team string) teams.Record {
		if rec, ok := records[s.names.Key(team)]; ok {
			return rec.Total
		}
		if len(in.records) > 0 {
			unmatched.Add(team)
		}
		return teams.Record{}
	}
	r.Form = Form{
		HomeRecord: record(m.HomeTeam),
		AwayRecord: record(m.AwayTeam),
		HomeLast5:  last5(in.home),
		AwayLast5:  last5(in.away),
	}
	r.Trends = Trends{Home: in.home, Away: in.away}

	game, found := s.findGame(m, in.fixtures)
	r.Game = domain.Unavailable[games.Fixture]()
	if found {
		r.Game = domain.Observed(game)
	}
	r.Market = s.market(m, game, found, in.lines)

	ratings := teamnames.Index(s.names, in.ratings, func(rt teams.Rating) string { return rt.Team })
	rating := func(team string) domain.Value[float64] {
		if rt, ok := ratings[s.names.Key(team)]; ok {
			return domain.Observed(rt.Rating)
		}
		return domain.Unavailable[float64]()
	}
	r.Ratings = Ratings{
		Home:         rating(m.HomeTeam),
		Away:         rating(m.AwayTeam),
		Differential: domain.Unavailable[float64](),
		Confidence:   domain.Unavailable[string](),
	}
	r.Model = Model{Spread: domain.Unavailable[float64](), Discrepancy: domain.Unavailable[float64]()}
	if edge, ok := analytics.Edge(r.Ratings.Home, r.Ratings.Away, r.Market.Spread).Get(); ok {
		r.Ratings.Differential = domain.Observed(edge.Differential)
		r.Ratings.Confidence = domain.Observed(edge.Confidence)
		r.Model = Model{
			Spread:      domain.Observed(edge.ModelSpread),
			Discrepancy: edge.Discrepancy,
			ValuePlay:   edge.ValuePlay,
		}
	}

	r.UnmatchedTeams = unmatched.List()
	return r
}

// findGame picks the fixture between the two teams, either orientation. With several
// meetings the latest one wins.
func (s *Service) findGame(m Matchup, fixtures []games.Fixture) (games.Fixture, bool) {
	home, away := s.names.Key(m.HomeTeam), s.names.Key(m.AwayTeam)
	var (
		best  games.Fixture
		found bool
	)
	for _, f := range fixtures {
		h, a := s.names.Key(f.HomeTeam), s.names.Key(f.AwayTeam)
		if !(h == home && a == away) && !(h == away && a == home) {
			continue
		}
		if !found || f.StartDate.After(best.StartDate) {
			best, found = f, true
		}
	}
	return best, found
}

// market resolves the line by game id, falling back to a team-name match when no fixture
// was found.
func (s *Service) market(m Matchup, game games.Fixture, found bool, all []lines.GameLines) Market {
	out := Market{
		Status:        games.LineUnavailable,
		Spread:        domain.Unavailable[float64](),
		OverUnder:     domain.Unavailable[float64](),
		HomeMoneyline: domain.Unavailable[int](),
		AwayMoneyline: domain.Unavailable[int](),
	}

	var candidates []lines.Line
	if found {
		candidates = lines.ByGameID(all)[game.ID].Lines
	} else {
		home, away := s.names.Key(m.HomeTeam), s.names.Key(m.AwayTeam)
		for _, gl := range all {
			if s.names.Key(gl.HomeTeam) == home && s.names.Key(gl.AwayTeam) == away {
				candidates = gl.Lines
			}
		}
	}

	if line, ok := lines.Select(candidates, lines.PreferredProviders); ok {
		out.Status = games.LineObserved
		out.Provider = line.Provider
		out.Spread = line.Spread
		out.OverUnder = line.OverUnder
		out.HomeMoneyline = line.HomeMoneyline
		out.AwayMoneyline = line.AwayMoneyline
	}
	out.HomeImplied = analytics.ImpliedWinProbability(out.HomeMoneyline)
	out.AwayImplied = analytics.ImpliedWinProbability(out.AwayMoneyline)
	out.HomeFair, out.AwayFair = analytics.FairWinProbabilities(out.HomeMoneyline, out.AwayMoneyline)
	out.HomeWinProbability = analytics.HomeWinProbability(out.HomeMoneyline, out.Spread)
	out.Narrative = analytics.Narrative(out.HomeWinProbability)
	return out
}

func last5(st domain.Value[teams.Statistics]) domain.Value[string] {
	if s, ok := st.Get(); ok {
		return s.Last5
	}
	return domain.Unavailable[string]()
}
