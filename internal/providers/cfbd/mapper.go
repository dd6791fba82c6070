package cfbd

import (
	"strings"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/lines"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
)

func mapGame(g gameResponse) games.Fixture {
	f := games.Fixture{
		ID:                 g.ID,
		Season:             g.Season,
		Week:               g.Week,
		SeasonType:         g.SeasonType,
		StartDate:          g.StartDate,
		StartTimeTBD:       g.StartTimeTBD,
		Completed:          g.Completed,
		NeutralSite:        g.NeutralSite,
		ConferenceGame:     g.ConferenceGame,
		Venue:              strings.TrimSpace(g.Venue),
		HomeID:             g.HomeID,
		HomeTeam:           strings.TrimSpace(g.HomeTeam),
		HomeConference:     g.HomeConference,
		HomeClassification: strings.ToLower(g.HomeClassification),
		HomePoints:         domain.FromPtr(g.HomePoints),
		AwayID:             g.AwayID,
		AwayTeam:           strings.TrimSpace(g.AwayTeam),
		AwayConference:     g.AwayConference,
		AwayClassification: strings.ToLower(g.AwayClassification),
		AwayPoints:         domain.FromPtr(g.AwayPoints),
	}
	if g.VenueID != nil {
		f.VenueID = *g.VenueID
	}
	return f
}

func mapRecord(r recordResponse) teams.SeasonRecord {
	rec := teams.SeasonRecord{
		Year:            r.Year,
		TeamID:          r.TeamID,
		Team:            strings.TrimSpace(r.Team),
		Classification:  strings.ToLower(r.Classification),
		Conference:      r.Conference,
		Division:        r.Division,
		Total:           mapTotals(r.Total),
		ConferenceGames: mapTotals(r.ConferenceGames),
		HomeGames:       mapTotals(r.HomeGames),
		AwayGames:       mapTotals(r.AwayGames),
	}
	if r.ExpectedWins != nil {
		rec.ExpectedWins = *r.ExpectedWins
	}
	return rec
}

func mapTotals(t recordTotalsBlock) teams.Record {
	return teams.Record{Wins: max(t.Wins, 0), Losses: max(t.Losses, 0), Ties: max(t.Ties, 0)}
}

func mapGameLines(g bettingGameResponse) lines.GameLines {
	out := lines.GameLines{
		GameID:     g.ID,
		Season:     g.Season,
		Week:       g.Week,
		SeasonType: g.SeasonType,
		HomeTeam:   strings.TrimSpace(g.HomeTeam),
		AwayTeam:   strings.TrimSpace(g.AwayTeam),
		HomeScore:  domain.FromPtr(g.HomeScore),
		AwayScore:  domain.FromPtr(g.AwayScore),
		Lines:      make([]lines.Line, 0, len(g.Lines)),
	}
	for _, l := range g.Lines {
		out.Lines = append(out.Lines, lines.Line{
			Provider:        strings.TrimSpace(l.Provider),
			Spread:          domain.FromPtr(l.Spread),
			SpreadOpen:      domain.FromPtr(l.SpreadOpen),
			FormattedSpread: l.FormattedSpread,
			OverUnder:       domain.FromPtr(l.OverUnder),
			OverUnderOpen:   domain.FromPtr(l.OverUnderOpen),
			HomeMoneyline:   domain.FromPtr(l.HomeMoneyline),
			AwayMoneyline:   domain.FromPtr(l.AwayMoneyline),
		})
	}
	return out
}

// mapRating drops rows without a team rating, such as the national averages row.
func mapRating(r spRatingResponse) (teams.Rating, bool) {
	if r.Rating == nil || strings.TrimSpace(r.Team) == "" || strings.EqualFold(r.Team, "nationalAverages") {
		return teams.Rating{}, false
	}
	return teams.Rating{
		Year:         r.Year,
		Team:         strings.TrimSpace(r.Team),
		Conference:   r.Conference,
		Rating:       *r.Rating,
		Ranking:      deref(r.Ranking),
		Offense:      deref(r.Offense.Rating),
		Defense:      deref(r.Defense.Rating),
		SpecialTeams: deref(r.SpecialTeams.Rating),
		SOS:          deref(r.SOS),
	}, true
}

func mapVenue(v venueResponse) games.Venue {
	return games.Venue{
		ID:        v.ID,
		Name:      strings.TrimSpace(v.Name),
		City:      v.City,
		State:     v.State,
		Latitude:  deref(v.Latitude),
		Longitude: deref(v.Longitude),
		Dome:      v.Dome,
	}
}

func mapCalendar(c calendarResponse) games.CalendarWeek {
	return games.CalendarWeek{
		Season:     c.Season,
		Week:       c.Week,
		SeasonType: c.SeasonType,
		Start:      c.StartDate,
		End:        c.EndDate,
	}
}

func mapSeasonStat(s seasonStatResponse) teams.SeasonStat {
	return teams.SeasonStat{
		Team:       strings.TrimSpace(s.Team),
		Conference: s.Conference,
		StatName:   s.StatName,
		StatValue:  s.StatValue,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
