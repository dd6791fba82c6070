package cfbd

import "time"

type gameResponse struct {
	ID                 int       `json:"id"`
	Season             int       `json:"season"`
	Week               int       `json:"week"`
	SeasonType         string    `json:"seasonType"`
	StartDate          time.Time `json:"startDate"`
	StartTimeTBD       bool      `json:"startTimeTBD"`
	Completed          bool      `json:"completed"`
	NeutralSite        bool      `json:"neutralSite"`
	ConferenceGame     bool      `json:"conferenceGame"`
	VenueID            *int      `json:"venueId"`
	Venue              string    `json:"venue"`
	HomeID             int       `json:"homeId"`
	HomeTeam           string    `json:"homeTeam"`
	HomeConference     string    `json:"homeConference"`
	HomeClassification string    `json:"homeClassification"`
	HomePoints         *int      `json:"homePoints"`
	AwayID             int       `json:"awayId"`
	AwayTeam           string    `json:"awayTeam"`
	AwayConference     string    `json:"awayConference"`
	AwayClassification string    `json:"awayClassification"`
	AwayPoints         *int      `json:"awayPoints"`
}

type recordResponse struct {
	Year            int               `json:"year"`
	TeamID          int               `json:"teamId"`
	Team            string            `json:"team"`
	Classification  string            `json:"classification"`
	Conference      string            `json:"conference"`
	Division        string            `json:"division"`
	ExpectedWins    *float64          `json:"expectedWins"`
	Total           recordTotalsBlock `json:"total"`
	ConferenceGames recordTotalsBlock `json:"conferenceGames"`
	HomeGames       recordTotalsBlock `json:"homeGames"`
	AwayGames       recordTotalsBlock `json:"awayGames"`
}

type recordTotalsBlock struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

type bettingGameResponse struct {
	ID                 int            `json:"id"`
	Season             int            `json:"season"`
	SeasonType         string         `json:"seasonType"`
	Week               int            `json:"week"`
	StartDate          time.Time      `json:"startDate"`
	HomeTeam           string         `json:"homeTeam"`
	HomeConference     string         `json:"homeConference"`
	HomeClassification string         `json:"homeClassification"`
	HomeScore          *int           `json:"homeScore"`
	AwayTeam           string         `json:"awayTeam"`
	AwayConference     string         `json:"awayConference"`
	AwayClassification string         `json:"awayClassification"`
	AwayScore          *int           `json:"awayScore"`
	Lines              []lineResponse `json:"lines"`
}

type lineResponse struct {
	Provider        string   `json:"provider"`
	Spread          *float64 `json:"spread"`
	FormattedSpread string   `json:"formattedSpread"`
	SpreadOpen      *float64 `json:"spreadOpen"`
	OverUnder       *float64 `json:"overUnder"`
	OverUnderOpen   *float64 `json:"overUnderOpen"`
	HomeMoneyline   *int     `json:"homeMoneyline"`
	AwayMoneyline   *int     `json:"awayMoneyline"`
}

type spRatingResponse struct {
	Year         int             `json:"year"`
	Team         string          `json:"team"`
	Conference   string          `json:"conference"`
	Rating       *float64        `json:"rating"`
	Ranking      *int            `json:"ranking"`
	SOS          *float64        `json:"sos"`
	Offense      ratingComponent `json:"offense"`
	Defense      ratingComponent `json:"defense"`
	SpecialTeams ratingComponent `json:"specialTeams"`
}

type ratingComponent struct {
	Rating *float64 `json:"rating"`
}

type venueResponse struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Dome      bool     `json:"dome"`
}

type calendarResponse struct {
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	SeasonType string    `json:"seasonType"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
}

type seasonStatResponse struct {
	Season     int     `json:"season"`
	Team       string  `json:"team"`
	Conference string  `json:"conference"`
	StatName   string  `json:"statName"`
	StatValue  float64 `json:"statValue"`
}
