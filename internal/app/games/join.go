package games

import (
	"github.com/preston-bernstein/cfb-data-service/internal/analytics"
	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/lines"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/weather"
	"github.com/preston-bernstein/cfb-data-service/internal/teamnames"
)

// joiner holds the lookup tables for one board.
type joiner struct {
	names         *teamnames.Normalizer
	unmatched     *teamnames.Unmatched
	haveRecords   bool
	recordsByID   map[int]teams.SeasonRecord
	recordsByName map[string]teams.SeasonRecord
	linesByGame   map[int]lines.GameLines
	ratings       map[string]teams.Rating
	venuesByID    map[int]domaingames.Venue
	weather       map[string]weather.Snapshot
	stats         map[string]teams.Statistics
}

func (b *Builder) newJoiner(in joinInputs, unmatched *teamnames.Unmatched) *joiner {
	j := &joiner{
		names:         b.names,
		unmatched:     unmatched,
		haveRecords:   len(in.records) > 0,
		recordsByID:   make(map[int]teams.SeasonRecord, len(in.records)),
		recordsByName: teamnames.Index(b.names, in.records, func(r teams.SeasonRecord) string { return r.Team }),
		linesByGame:   lines.ByGameID(in.lines),
		ratings:       teamnames.Index(b.names, in.ratings, func(r teams.Rating) string { return r.Team }),
		venuesByID:    make(map[int]domaingames.Venue, len(in.venues)),
		weather:       in.weather,
		stats:         in.stats,
	}
	for _, r := range in.records {
		if r.TeamID != 0 {
			j.recordsByID[r.TeamID] = r
		}
	}
	for _, v := range in.venues {
		j.venuesByID[v.ID] = v
	}
	return j
}

func (j *joiner) join(f domaingames.Fixture) domaingames.Game {
	g := domaingames.FromFixture(f)

	if v, ok := j.venuesByID[f.VenueID]; ok && f.VenueID != 0 {
		g.VenueCity = v.City
		g.VenueState = v.State
	}

	g.HomeRecord = j.record(f.HomeID, f.HomeTeam)
	g.AwayRecord = j.record(f.AwayID, f.AwayTeam)

	if gl, ok := j.linesByGame[f.ID]; ok {
		if line, ok := lines.Select(gl.Lines, lines.PreferredProviders); ok {
			g.LineStatus = domaingames.LineObserved
			g.LineProvider = line.Provider
			g.Spread = line.Spread
			g.OverUnder = line.OverUnder
			g.HomeMoneyline = line.HomeMoneyline
			g.AwayMoneyline = line.AwayMoneyline
		}
	}
	g.HomeWinProbability = analytics.HomeWinProbability(g.HomeMoneyline, g.Spread)
	g.WinProbabilityNarrative = analytics.Narrative(g.HomeWinProbability)

	if snap, ok := j.weather[f.Venue]; ok {
		g.Temperature = domain.Observed(snap.Temperature)
		g.FeelsLike = domain.Observed(snap.FeelsLike)
		g.Humidity = domain.Observed(snap.Humidity)
		g.WindSpeed = domain.Observed(snap.WindSpeed)
		g.WeatherCondition = domain.Observed(snap.Condition)
	}

	g.SPPlus = analytics.Edge(j.rating(f.HomeTeam), j.rating(f.AwayTeam), g.Spread)

	if s, ok := j.stats[j.names.Key(f.HomeTeam)]; ok {
		g.HomeStats = domain.Observed(s)
	}
	if s, ok := j.stats[j.names.Key(f.AwayTeam)]; ok {
		g.AwayStats = domain.Observed(s)
	}
	return g
}

// record joins by team id, then by normalized name. A miss yields 0-0-0 and is reported
// when records were available at all.
func (j *joiner) record(teamID int, name string) teams.Record {
	if r, ok := j.recordsByID[teamID]; ok && teamID != 0 {
		return r.Total
	}
	if r, ok := j.recordsByName[j.names.Key(name)]; ok {
		return r.Total
	}
	if j.haveRecords {
		j.unmatched.Add(name)
	}
	return teams.Record{}
}

func (j *joiner) rating(name string) domain.Value[float64] {
	if r, ok := j.ratings[j.names.Key(name)]; ok {
		return domain.Observed(r.Rating)
	}
	return domain.Unavailable[float64]()
}
