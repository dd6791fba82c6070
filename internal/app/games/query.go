package games

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/timeutil"
)

// ErrInvalidQuery marks a request the caller must fix.
var ErrInvalidQuery = errors.New("invalid query")

// firstSeason is the first college football season on record.
const firstSeason = 1869

// Query selects a board. Zero Week with empty Date means the current calendar week.
type Query struct {
	Season     int
	Week       int
	Date       string
	Division   string
	SeasonType string
}

// normalize validates q and fills the default division.
func (q Query) normalize(defaultDivision string) (Query, error) {
	if q.Season < firstSeason {
		return q, fmt.Errorf("%w: season %d", ErrInvalidQuery, q.Season)
	}
	if q.Week < 0 {
		return q, fmt.Errorf("%w: week %d", ErrInvalidQuery, q.Week)
	}
	q.Date = strings.TrimSpace(q.Date)
	if q.Date != "" {
		if _, err := timeutil.ParseDate(q.Date); err != nil {
			return q, fmt.Errorf("%w: date %q", ErrInvalidQuery, q.Date)
		}
	}
	q.Division = strings.ToLower(strings.TrimSpace(q.Division))
	if q.Division == "" {
		q.Division = defaultDivision
	}
	switch q.Division {
	case domaingames.DivisionFBS, domaingames.DivisionFCS, domaingames.DivisionAll:
	default:
		return q, fmt.Errorf("%w: division %q", ErrInvalidQuery, q.Division)
	}
	return q, nil
}

// BoardKey identifies a warmed board.
func BoardKey(season int, division string) string {
	return fmt.Sprintf("%d:%s", season, division)
}

// matchesDivision keeps a fixture when either side is in the division.
func matchesDivision(f domaingames.Fixture, division string) bool {
	if division == domaingames.DivisionAll {
		return true
	}
	return strings.EqualFold(f.HomeClassification, division) || strings.EqualFold(f.AwayClassification, division)
}

// FilterDivision returns the fixtures in division, preserving order.
func FilterDivision(fixtures []domaingames.Fixture, division string) []domaingames.Fixture {
	out := make([]domaingames.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if matchesDivision(f, division) {
			out = append(out, f)
		}
	}
	return out
}

// filterDate keeps fixtures kicking off on date in loc.
func filterDate(fixtures []domaingames.Fixture, date string, loc *time.Location) []domaingames.Fixture {
	if date == "" {
		return fixtures
	}
	out := make([]domaingames.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if timeutil.FormatDateIn(f.StartDate, loc) == date {
			out = append(out, f)
		}
	}
	return out
}

// resolveWeek picks the calendar week containing at, else the next week to start, else the
// last week of the season. ok is false for an empty calendar.
func resolveWeek(calendar []domaingames.CalendarWeek, at time.Time) (domaingames.CalendarWeek, bool) {
	if len(calendar) == 0 {
		return domaingames.CalendarWeek{}, false
	}
	var next *domaingames.CalendarWeek
	last := calendar[0]
	for i := range calendar {
		w := calendar[i]
		if w.Contains(at) {
			return w, true
		}
		if w.Start.After(at) && (next == nil || w.Start.Before(next.Start)) {
			next = &calendar[i]
		}
		if w.End.After(last.End) {
			last = w
		}
	}
	if next != nil {
		return *next, true
	}
	return last, true
}
