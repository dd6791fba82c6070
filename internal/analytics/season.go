package analytics

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/lines"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
)

const formLength = 5

// teamResult is one completed game from a single team's point of view.
type teamResult struct {
	fixture   games.Fixture
	pointsFor int
	against   int
	// teamSpread is the line quoted from this team's side (negative = favored).
	teamSpread domain.Value[float64]
	overUnder  domain.Value[float64]
}

func (r teamResult) margin() int {
	return r.pointsFor - r.against
}

// SeasonSummary computes a team's season statistics from its game log and the betting lines
// for those games. Fixtures not involving team, or not completed with both scores, are
// ignored. sos is passed through as-is.
func SeasonSummary(team string, season int, fixtures []games.Fixture, gameLines []lines.GameLines, sos domain.Value[teams.StrengthOfSchedule]) teams.Statistics {
	results := teamResults(team, fixtures, lines.ByGameID(gameLines))
	out := teams.Statistics{
		Team:               team,
		Season:             season,
		GamesPlayed:        len(results),
		StrengthOfSchedule: sos,
		Last5:              lastFive(results),
	}
	if len(results) == 0 {
		return out
	}

	pointsFor := make([]float64, len(results))
	pointsAgainst := make([]float64, len(results))
	margins := make([]float64, len(results))
	var ats, ou, favorite, underdog teams.Record

	for i, r := range results {
		pointsFor[i] = float64(r.pointsFor)
		pointsAgainst[i] = float64(r.against)
		margins[i] = float64(r.margin())

		if spread, ok := r.teamSpread.Get(); ok {
			outcome := coverOutcome(float64(r.margin()) + spread)
			tally(&ats, outcome)
			switch {
			case spread < 0:
				tally(&favorite, outcome)
			case spread > 0:
				tally(&underdog, outcome)
			}
		}
		if total, ok := r.overUnder.Get(); ok {
			tally(&ou, coverOutcome(float64(r.pointsFor+r.against)-total))
		}
	}

	out.PointsForPerGame = round(stat.Mean(pointsFor, nil), 1)
	out.PointsAgainstPerGame = round(stat.Mean(pointsAgainst, nil), 1)
	out.MarginPerGame = round(stat.Mean(margins, nil), 1)
	if len(margins) > 1 {
		out.MarginStdDev = round(stat.StdDev(margins, nil), 1)
	}
	out.ATSRecord = ats
	out.ATSPct = roundValue(ats.DecidedPct())
	out.OverUnderRecord = ou
	out.OverPct = roundValue(ou.DecidedPct())
	out.FavoriteATSPct = roundValue(favorite.DecidedPct())
	out.UnderdogATSPct = roundValue(underdog.DecidedPct())
	return out
}

// lastFive renders the most recent five results oldest-to-newest as W/L/T characters.
func lastFive(results []teamResult) domain.Value[string] {
	if len(results) == 0 {
		return domain.Unavailable[string]()
	}
	start := 0
	if len(results) > formLength {
		start = len(results) - formLength
	}
	var b strings.Builder
	for _, r := range results[start:] {
		switch m := r.margin(); {
		case m > 0:
			b.WriteByte('W')
		case m < 0:
			b.WriteByte('L')
		default:
			b.WriteByte('T')
		}
	}
	return domain.Observed(b.String())
}

// teamResults returns completed games for team in kickoff order.
func teamResults(team string, fixtures []games.Fixture, linesByGame map[int]lines.GameLines) []teamResult {
	var out []teamResult
	for _, f := range fixtures {
		home := strings.EqualFold(f.HomeTeam, team)
		away := strings.EqualFold(f.AwayTeam, team)
		if !home && !away {
			continue
		}
		homePts, okHome := f.HomePoints.Get()
		awayPts, okAway := f.AwayPoints.Get()
		if !f.Completed || !okHome || !okAway {
			continue
		}

		r := teamResult{fixture: f, teamSpread: domain.Unavailable[float64](), overUnder: domain.Unavailable[float64]()}
		if gl, ok := linesByGame[f.ID]; ok {
			if line, ok := lines.Select(gl.Lines, lines.PreferredProviders); ok {
				r.overUnder = line.OverUnder
				if spread, ok := line.Spread.Get(); ok {
					if home {
						r.teamSpread = domain.Observed(spread)
					} else {
						r.teamSpread = domain.Observed(-spread)
					}
				}
			}
		}
		if home {
			r.pointsFor, r.against = homePts, awayPts
		} else {
			r.pointsFor, r.against = awayPts, homePts
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].fixture.StartDate.Before(out[j].fixture.StartDate)
	})
	return out
}

type outcome int

const (
	outcomeWin outcome = iota
	outcomeLoss
	outcomePush
)

func coverOutcome(edge float64) outcome {
	switch {
	case edge > 0:
		return outcomeWin
	case edge < 0:
		return outcomeLoss
	default:
		return outcomePush
	}
}

func tally(r *teams.Record, o outcome) {
	switch o {
	case outcomeWin:
		r.Wins++
	case outcomeLoss:
		r.Losses++
	default:
		r.Ties++
	}
}

func roundValue(v domain.Value[float64]) domain.Value[float64] {
	if f, ok := v.Get(); ok {
		return domain.Observed(round(f, 3))
	}
	return v
}

// RankStrengthOfSchedule ranks every rated team by SOS, hardest first.
func RankStrengthOfSchedule(ratings []teams.Rating) map[string]teams.StrengthOfSchedule {
	sorted := make([]teams.Rating, len(ratings))
	copy(sorted, ratings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SOS > sorted[j].SOS
	})
	out := make(map[string]teams.StrengthOfSchedule, len(sorted))
	for i, r := range sorted {
		out[r.Team] = teams.StrengthOfSchedule{Value: round(r.SOS, 3), Rank: i + 1}
	}
	return out
}
