package cfbd

import "time"

const (
	providerName = "cfbd"

	defaultBaseURL     = "https://api.collegefootballdata.com"
	defaultHTTPTimeout = 10 * time.Second
	// Error bodies are only kept for the log line.
	maxErrorBody = 512
	maxBodyBytes = 16 << 20

	pathGames       = "/games"
	pathRecords     = "/records"
	pathLines       = "/lines"
	pathRatingsSP   = "/ratings/sp"
	pathVenues      = "/venues"
	pathCalendar    = "/calendar"
	pathSeasonStats = "/stats/season"
)
