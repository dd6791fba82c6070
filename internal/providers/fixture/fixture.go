// Package fixture serves a small deterministic season for local runs and tests.
package fixture

import (
	"context"
	"strings"
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/lines"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/weather"
	"github.com/preston-bernstein/cfb-data-service/internal/providers"
)

// Provider returns the same two-week season for any year.
type Provider struct {
	now func() time.Time
}

var (
	_ providers.DataProvider    = (*Provider)(nil)
	_ providers.WeatherProvider = (*Provider)(nil)
)

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

type team struct {
	id             int
	name           string
	conference     string
	classification string
	rating         float64
}

var (
	texas     = team{251, "Texas", "SEC", "fbs", 24.1}
	michigan  = team{130, "Michigan", "Big Ten", "fbs", 12.6}
	ohioState = team{194, "Ohio State", "Big Ten", "fbs", 27.9}
	texasAM   = team{245, "Texas A&M", "SEC", "fbs", 14.3}
	montanaSt = team{149, "Montana State", "Big Sky", "fcs", 0}
	montana   = team{147, "Montana", "Big Sky", "fcs", 0}
)

var venues = []games.Venue{
	{ID: 3622, Name: "Darrell K Royal-Texas Memorial Stadium", City: "Austin", State: "TX", Latitude: 30.2836, Longitude: -97.7325},
	{ID: 3958, Name: "Kyle Field", City: "College Station", State: "TX", Latitude: 30.6101, Longitude: -96.3403},
	{ID: 3627, Name: "Michigan Stadium", City: "Ann Arbor", State: "MI", Latitude: 42.2658, Longitude: -83.7486},
	{ID: 3629, Name: "Ohio Stadium", City: "Columbus", State: "OH", Latitude: 40.0017, Longitude: -83.0197},
	{ID: 3711, Name: "Bobcat Stadium", City: "Bozeman", State: "MT", Latitude: 45.6588, Longitude: -111.0536},
}

type schedule struct {
	id         int
	week       int
	dayOffset  int
	home, away team
	venue      int
	homePts    *int
	awayPts    *int
	lines      []lines.Line
}

func pts(v int) *int { return &v }

func line(provider string, spread, total float64, homeML, awayML int) lines.Line {
	return lines.Line{
		Provider:      provider,
		Spread:        domain.Observed(spread),
		SpreadOpen:    domain.Observed(spread),
		OverUnder:     domain.Observed(total),
		OverUnderOpen: domain.Observed(total),
		HomeMoneyline: domain.Observed(homeML),
		AwayMoneyline: domain.Observed(awayML),
	}
}

var season = []schedule{
	{id: 1001, week: 1, dayOffset: 0, home: michigan, away: texas, venue: 3627, homePts: pts(12), awayPts: pts(31),
		lines: []lines.Line{line("FanDuel", 7.5, 42.5, 250, -310), line("DraftKings", 7, 42.5, 240, -298)}},
	{id: 1002, week: 1, dayOffset: 0, home: ohioState, away: texasAM, venue: 3629, homePts: pts(35), awayPts: pts(14),
		lines: []lines.Line{line("ESPN Bet", -10.5, 51.5, -400, 310)}},
	{id: 1003, week: 1, dayOffset: 1, home: montanaSt, away: montana, venue: 3711, homePts: pts(24), awayPts: pts(20)},
	{id: 1004, week: 2, dayOffset: 0, home: texas, away: texasAM, venue: 3622,
		lines: []lines.Line{line("DraftKings", -6.5, 48.5, -250, 205)}},
	{id: 1005, week: 2, dayOffset: 0, home: ohioState, away: michigan, venue: 3629},
}

// FetchGames returns the fixed fixtures matching the query.
func (p *Provider) FetchGames(ctx context.Context, q providers.GameQuery) ([]games.Fixture, error) {
	_ = ctx
	out := make([]games.Fixture, 0, len(season))
	for _, s := range season {
		if !matches(s, q.Week, q.SeasonType, q.Team) {
			continue
		}
		out = append(out, p.fixture(q.Year, s))
	}
	return out, nil
}

// FetchRecords tallies records from completed fixtures.
func (p *Provider) FetchRecords(ctx context.Context, year int) ([]teams.SeasonRecord, error) {
	_ = ctx
	byTeam := map[int]*teams.SeasonRecord{}
	order := []team{texas, michigan, ohioState, texasAM, montanaSt, montana}
	for _, t := range order {
		byTeam[t.id] = &teams.SeasonRecord{Year: year, TeamID: t.id, Team: t.name, Classification: t.classification, Conference: t.conference}
	}
	for _, s := range season {
		if s.homePts == nil || s.awayPts == nil {
			continue
		}
		home, away := byTeam[s.home.id], byTeam[s.away.id]
		switch {
		case *s.homePts > *s.awayPts:
			home.Total.Wins++
			home.HomeGames.Wins++
			away.Total.Losses++
			away.AwayGames.Losses++
		case *s.homePts < *s.awayPts:
			home.Total.Losses++
			home.HomeGames.Losses++
			away.Total.Wins++
			away.AwayGames.Wins++
		default:
			home.Total.Ties++
			away.Total.Ties++
		}
	}
	out := make([]teams.SeasonRecord, 0, len(order))
	for _, t := range order {
		out = append(out, *byTeam[t.id])
	}
	return out, nil
}

// FetchLines returns the fixed lines matching the query.
func (p *Provider) FetchLines(ctx context.Context, q providers.LineQuery) ([]lines.GameLines, error) {
	_ = ctx
	out := make([]lines.GameLines, 0, len(season))
	for _, s := range season {
		if len(s.lines) == 0 || !matches(s, q.Week, q.SeasonType, q.Team) {
			continue
		}
		out = append(out, lines.GameLines{
			GameID:     s.id,
			Season:     q.Year,
			Week:       s.week,
			SeasonType: providers.SeasonRegular,
			HomeTeam:   s.home.name,
			AwayTeam:   s.away.name,
			HomeScore:  domain.FromPtr(s.homePts),
			AwayScore:  domain.FromPtr(s.awayPts),
			Lines:      append([]lines.Line(nil), s.lines...),
		})
	}
	return out, nil
}

// FetchRatings returns SP+ ratings for the FBS teams.
func (p *Provider) FetchRatings(ctx context.Context, year int) ([]teams.Rating, error) {
	_ = ctx
	fbs := []team{ohioState, texas, texasAM, michigan}
	out := make([]teams.Rating, 0, len(fbs))
	for i, t := range fbs {
		out = append(out, teams.Rating{
			Year:       year,
			Team:       t.name,
			Conference: t.conference,
			Rating:     t.rating,
			Ranking:    i + 1,
			Offense:    t.rating + 20,
			Defense:    20 - t.rating/2,
			SOS:        0.5 + float64(i)/20,
		})
	}
	return out, nil
}

// FetchVenues returns the fixed venues.
func (p *Provider) FetchVenues(ctx context.Context) ([]games.Venue, error) {
	_ = ctx
	return append([]games.Venue(nil), venues...), nil
}

// FetchCalendar returns two regular-season weeks starting the last Saturday of August.
func (p *Provider) FetchCalendar(ctx context.Context, year int) ([]games.CalendarWeek, error) {
	_ = ctx
	start := seasonStart(year)
	return []games.CalendarWeek{
		{Season: year, Week: 1, SeasonType: providers.SeasonRegular, Start: start, End: start.Add(7*24*time.Hour - time.Second)},
		{Season: year, Week: 2, SeasonType: providers.SeasonRegular, Start: start.Add(7 * 24 * time.Hour), End: start.Add(14*24*time.Hour - time.Second)},
	}, nil
}

// FetchSeasonStats returns a couple of named aggregates per FBS team.
func (p *Provider) FetchSeasonStats(ctx context.Context, year int) ([]teams.SeasonStat, error) {
	_ = ctx
	_ = year
	out := []teams.SeasonStat{}
	for _, t := range []team{texas, michigan, ohioState, texasAM} {
		out = append(out,
			teams.SeasonStat{Team: t.name, Conference: t.conference, StatName: "totalYards", StatValue: 400 + t.rating*4},
			teams.SeasonStat{Team: t.name, Conference: t.conference, StatName: "turnovers", StatValue: float64(int(t.rating) % 7)},
		)
	}
	return out, nil
}

// FetchWeather returns mild conditions derived from the venue id.
func (p *Provider) FetchWeather(ctx context.Context, venue games.Venue) (weather.Snapshot, error) {
	_ = ctx
	conditions := []weather.Condition{weather.ConditionClear, weather.ConditionClouds, weather.ConditionRain}
	return weather.Snapshot{
		Venue:       venue.Name,
		Temperature: 60 + float64(venue.ID%25),
		FeelsLike:   58 + float64(venue.ID%25),
		Humidity:    40 + float64(venue.ID%30),
		WindSpeed:   float64(venue.ID % 12),
		Condition:   conditions[venue.ID%len(conditions)],
		ObservedAt:  p.now().UTC().Truncate(time.Hour),
	}, nil
}

func (p *Provider) fixture(year int, s schedule) games.Fixture {
	if year == 0 {
		year = p.now().Year()
	}
	kickoff := seasonStart(year).Add(time.Duration((s.week-1)*7+s.dayOffset)*24*time.Hour + 19*time.Hour)
	venueName := ""
	for _, v := range venues {
		if v.ID == s.venue {
			venueName = v.Name
		}
	}
	return games.Fixture{
		ID:                 s.id,
		Season:             year,
		Week:               s.week,
		SeasonType:         providers.SeasonRegular,
		StartDate:          kickoff,
		Completed:          s.homePts != nil,
		ConferenceGame:     s.home.conference == s.away.conference,
		VenueID:            s.venue,
		Venue:              venueName,
		HomeID:             s.home.id,
		HomeTeam:           s.home.name,
		HomeConference:     s.home.conference,
		HomeClassification: s.home.classification,
		HomePoints:         domain.FromPtr(s.homePts),
		AwayID:             s.away.id,
		AwayTeam:           s.away.name,
		AwayConference:     s.away.conference,
		AwayClassification: s.away.classification,
		AwayPoints:         domain.FromPtr(s.awayPts),
	}
}

func matches(s schedule, week int, seasonType, name string) bool {
	if week > 0 && s.week != week {
		return false
	}
	if seasonType != "" && seasonType != providers.SeasonRegular && seasonType != providers.SeasonBoth {
		return false
	}
	if name = strings.TrimSpace(name); name != "" {
		return strings.EqualFold(s.home.name, name) || strings.EqualFold(s.away.name, name)
	}
	return true
}

// seasonStart is the last Saturday of August, UTC midnight.
func seasonStart(year int) time.Time {
	d := time.Date(year, time.August, 31, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
