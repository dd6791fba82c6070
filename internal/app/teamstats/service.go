// Package teamstats computes per-team season statistics and the conference standings table.
package teamstats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/preston-bernstein/cfb-data-service/internal/analytics"
	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/logging"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
	"github.com/preston-bernstein/cfb-data-service/internal/teamnames"
)

// Provider is the upstream surface the service reads.
type Provider interface {
	providers.GameProvider
	providers.LineProvider
	providers.RecordProvider
	providers.RatingProvider
	providers.SeasonStatProvider
}

// Service coordinates team statistics lookups.
type Service struct {
	provider Provider
	names    *teamnames.Normalizer
	logger   *slog.Logger
}

// NewService constructs a Service. A nil normalizer uses the bundled alias table.
func NewService(provider Provider, names *teamnames.Normalizer, logger *slog.Logger) *Service {
	if names == nil {
		names = teamnames.Default()
	}
	return &Service{provider: provider, names: names, logger: logging.OrDiscard(logger)}
}

// TableQuery filters the team-stats table. Division accepts a classification (fbs, fcs, all)
// or a conference division name such as "East".
type TableQuery struct {
	Year       int
	Conference string
	Division   string
}

// ForTeam summarizes a team's season from its game log and lines. Missing lines only
// leave the betting figures unavailable; a failed game log is an error.
func (s *Service) ForTeam(ctx context.Context, year int, team string, sos domain.Value[teams.StrengthOfSchedule]) (teams.Statistics, error) {
	fixtures, err := s.provider.FetchGames(ctx, providers.GameQuery{Year: year, Team: team, SeasonType: providers.SeasonBoth})
	if err != nil {
		return teams.Statistics{}, fmt.Errorf("team games %s: %w", team, err)
	}
	gameLines, err := s.provider.FetchLines(ctx, providers.LineQuery{Year: year, Team: team, SeasonType: providers.SeasonBoth})
	if err != nil {
		logging.FromContext(ctx, s.logger).Warn("team lines unavailable",
			logging.FieldTeam, team, logging.FieldSeason, year, "error", err)
		gameLines = nil
	}
	return analytics.SeasonSummary(team, year, fixtures, gameLines, sos), nil
}

// SOSIndex ranks strength of schedule across ratings, keyed by normalized team name.
func (s *Service) SOSIndex(ratings []teams.Rating) map[string]teams.StrengthOfSchedule {
	ranked := analytics.RankStrengthOfSchedule(ratings)
	out := make(map[string]teams.StrengthOfSchedule, len(ranked))
	for team, sos := range ranked {
		out[s.names.Key(team)] = sos
	}
	return out
}

// SOSFor looks a team up in an SOSIndex.
func (s *Service) SOSFor(index map[string]teams.StrengthOfSchedule, team string) domain.Value[teams.StrengthOfSchedule] {
	if sos, ok := index[s.names.Key(team)]; ok {
		return domain.Observed(sos)
	}
	return domain.Unavailable[teams.StrengthOfSchedule]()
}

// Table builds the team-stats table sorted by win percentage, then SP+ rating. Rows come
// from records, so failed records yield an empty table; ratings and season stats degrade to
// unavailable.
func (s *Service) Table(ctx context.Context, q TableQuery) ([]teams.StatRow, error) {
	var (
		wg      sync.WaitGroup
		records []teams.SeasonRecord
		ratings []teams.Rating
		stats   []teams.SeasonStat
	)
	logger := logging.FromContext(ctx, s.logger)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if records, err = s.provider.FetchRecords(ctx, q.Year); err != nil {
			logger.Warn("team records unavailable", logging.FieldSeason, q.Year, "error", err)
			records = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if ratings, err = s.provider.FetchRatings(ctx, q.Year); err != nil {
			logger.Warn("sp ratings unavailable", logging.FieldSeason, q.Year, "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if stats, err = s.provider.FetchSeasonStats(ctx, q.Year); err != nil {
			logger.Warn("season stats unavailable", logging.FieldSeason, q.Year, "error", err)
		}
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ratingIndex := teamnames.Index(s.names, ratings, func(r teams.Rating) string { return r.Team })
	statIndex := make(map[string]map[string]float64)
	for _, st := range stats {
		key := s.names.Key(st.Team)
		if statIndex[key] == nil {
			statIndex[key] = make(map[string]float64)
		}
		statIndex[key][st.StatName] = st.StatValue
	}

	rows := make([]teams.StatRow, 0, len(records))
	for _, r := range records {
		if !matchesConference(r, q.Conference) || !matchesDivision(r, q.Division) {
			continue
		}
		row := teams.StatRow{
			Team:            r.Team,
			TeamID:          r.TeamID,
			Classification:  r.Classification,
			Conference:      r.Conference,
			Division:        r.Division,
			Record:          r.Total,
			ConferenceGames: r.ConferenceGames,
			HomeGames:       r.HomeGames,
			AwayGames:       r.AwayGames,
			WinPct:          round3(r.Total.WinPct()),
			ExpectedWins:    r.ExpectedWins,
			SPRating:        domain.Unavailable[float64](),
			SPRanking:       domain.Unavailable[int](),
			Offense:         domain.Unavailable[float64](),
			Defense:         domain.Unavailable[float64](),
			Stats:           map[string]float64{},
		}
		key := s.names.Key(r.Team)
		if rating, ok := ratingIndex[key]; ok {
			row.SPRating = domain.Observed(rating.Rating)
			row.SPRanking = domain.Observed(rating.Ranking)
			row.Offense = domain.Observed(rating.Offense)
			row.Defense = domain.Observed(rating.Defense)
		}
		if named, ok := statIndex[key]; ok {
			row.Stats = named
		}
		rows = append(rows, row)
	}

	sortTable(rows)
	return rows, nil
}

func sortTable(rows []teams.StatRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.WinPct != b.WinPct {
			return a.WinPct > b.WinPct
		}
		ra, okA := a.SPRating.Get()
		rb, okB := b.SPRating.Get()
		if okA != okB {
			return okA
		}
		if ra != rb {
			return ra > rb
		}
		return a.Team < b.Team
	})
}

func matchesConference(r teams.SeasonRecord, conference string) bool {
	conference = strings.TrimSpace(conference)
	return conference == "" || strings.EqualFold(r.Conference, conference)
}

func matchesDivision(r teams.SeasonRecord, division string) bool {
	division = strings.ToLower(strings.TrimSpace(division))
	switch division {
	case "", games.DivisionAll:
		return true
	case games.DivisionFBS, games.DivisionFCS:
		return strings.EqualFold(r.Classification, division)
	default:
		return strings.EqualFold(r.Division, division)
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
