package games

import (
	"time"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/weather"
)

// Classification values reported upstream per team.
const (
	DivisionFBS = "fbs"
	DivisionFCS = "fcs"
	DivisionAll = "all"
)

// LineStatus tells consumers whether market fields came from a real line.
type LineStatus string

const (
	LineObserved    LineStatus = "observed"
	LineUnavailable LineStatus = "unavailable"
)

// Fixture is one upstream game as scheduled or played.
type Fixture struct {
	ID                 int               `json:"id"`
	Season             int               `json:"season"`
	Week               int               `json:"week"`
	SeasonType         string            `json:"seasonType"`
	StartDate          time.Time         `json:"startDate"`
	StartTimeTBD       bool              `json:"startTimeTBD"`
	Completed          bool              `json:"completed"`
	NeutralSite        bool              `json:"neutralSite"`
	ConferenceGame     bool              `json:"conferenceGame"`
	VenueID            int               `json:"venueId"`
	Venue              string            `json:"venue"`
	HomeID             int               `json:"homeId"`
	HomeTeam           string            `json:"homeTeam"`
	HomeConference     string            `json:"homeConference"`
	HomeClassification string            `json:"homeClassification"`
	HomePoints         domain.Value[int] `json:"homePoints"`
	AwayID             int               `json:"awayId"`
	AwayTeam           string            `json:"awayTeam"`
	AwayConference     string            `json:"awayConference"`
	AwayClassification string            `json:"awayClassification"`
	AwayPoints         domain.Value[int] `json:"awayPoints"`
}

// Venue is a stadium with enough location data for a weather lookup.
type Venue struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Dome      bool    `json:"dome"`
}

// HasLocation reports whether the venue can be geolocated.
func (v Venue) HasLocation() bool {
	return v.Latitude != 0 || v.Longitude != 0
}

// CalendarWeek is one week of the season schedule.
type CalendarWeek struct {
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	SeasonType string    `json:"seasonType"`
	Start      time.Time `json:"startDate"`
	End        time.Time `json:"endDate"`
}

// Contains reports whether t falls inside the week (inclusive).
func (w CalendarWeek) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// RatingEdge is the SP+ comparison for a matchup.
type RatingEdge struct {
	HomeRating   float64               `json:"homeRating"`
	AwayRating   float64               `json:"awayRating"`
	Differential float64               `json:"differential"`
	Confidence   string                `json:"confidence"`
	ModelSpread  float64               `json:"modelSpread"`
	Discrepancy  domain.Value[float64] `json:"discrepancy"`
	ValuePlay    bool                  `json:"valuePlay"`
}

// Game is the joined, display-ready view of a fixture. Records are always present;
// every other joined field may be null when upstream had nothing.
type Game struct {
	ID                 int               `json:"id"`
	Season             int               `json:"season"`
	Week               int               `json:"week"`
	SeasonType         string            `json:"seasonType"`
	StartDate          time.Time         `json:"startDate"`
	Completed          bool              `json:"completed"`
	NeutralSite        bool              `json:"neutralSite"`
	ConferenceGame     bool              `json:"conferenceGame"`
	HomeID             int               `json:"homeId"`
	HomeTeam           string            `json:"homeTeam"`
	HomeConference     string            `json:"homeConference"`
	HomeClassification string            `json:"homeClassification"`
	HomePoints         domain.Value[int] `json:"homePoints"`
	AwayID             int               `json:"awayId"`
	AwayTeam           string            `json:"awayTeam"`
	AwayConference     string            `json:"awayConference"`
	AwayClassification string            `json:"awayClassification"`
	AwayPoints         domain.Value[int] `json:"awayPoints"`
	Venue              string            `json:"venue"`
	VenueCity          string            `json:"venueCity"`
	VenueState         string            `json:"venueState"`

	HomeRecord teams.Record `json:"homeRecord"`
	AwayRecord teams.Record `json:"awayRecord"`

	LineStatus    LineStatus            `json:"lineStatus"`
	LineProvider  string                `json:"lineProvider,omitempty"`
	Spread        domain.Value[float64] `json:"spread"`
	OverUnder     domain.Value[float64] `json:"overUnder"`
	HomeMoneyline domain.Value[int]     `json:"homeMoneyline"`
	AwayMoneyline domain.Value[int]     `json:"awayMoneyline"`

	HomeWinProbability      domain.Value[float64] `json:"homeWinProbability"`
	WinProbabilityNarrative domain.Value[string]  `json:"winProbabilityNarrative"`

	Temperature      domain.Value[float64]           `json:"temperature"`
	FeelsLike        domain.Value[float64]           `json:"feelsLike"`
	Humidity         domain.Value[float64]           `json:"humidity"`
	WindSpeed        domain.Value[float64]           `json:"windSpeed"`
	WeatherCondition domain.Value[weather.Condition] `json:"weatherCondition"`

	SPPlus    domain.Value[RatingEdge]       `json:"spPlus"`
	HomeStats domain.Value[teams.Statistics] `json:"homeStats"`
	AwayStats domain.Value[teams.Statistics] `json:"awayStats"`
}

// FromFixture copies the fixture fields into a fresh view with 0-0-0 records and every
// joined field unavailable.
func FromFixture(f Fixture) Game {
	return Game{
		ID:                 f.ID,
		Season:             f.Season,
		Week:               f.Week,
		SeasonType:         f.SeasonType,
		StartDate:          f.StartDate,
		Completed:          f.Completed,
		NeutralSite:        f.NeutralSite,
		ConferenceGame:     f.ConferenceGame,
		HomeID:             f.HomeID,
		HomeTeam:           f.HomeTeam,
		HomeConference:     f.HomeConference,
		HomeClassification: f.HomeClassification,
		HomePoints:         f.HomePoints,
		AwayID:             f.AwayID,
		AwayTeam:           f.AwayTeam,
		AwayConference:     f.AwayConference,
		AwayClassification: f.AwayClassification,
		AwayPoints:         f.AwayPoints,
		Venue:              f.Venue,
		LineStatus:         LineUnavailable,
	}
}

// Metadata accompanies a board of games.
type Metadata struct {
	TotalGames     int       `json:"totalGames"`
	Season         int       `json:"season"`
	Week           int       `json:"week,omitempty"`
	SeasonType     string    `json:"seasonType,omitempty"`
	Date           string    `json:"date,omitempty"`
	Division       string    `json:"division"`
	LastUpdated    time.Time `json:"lastUpdated"`
	ElapsedMS      int64     `json:"elapsedMs"`
	UnmatchedTeams []string  `json:"unmatchedTeams,omitempty"`
	Cached         bool      `json:"cached,omitempty"`
}

// Board is one built set of games plus its metadata.
type Board struct {
	Games    []Game   `json:"games"`
	Metadata Metadata `json:"metadata"`
}
