package analysis

import (
	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
)

// Matchup echoes the resolved request.
type Matchup struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	Year     int    `json:"year"`
	Week     int    `json:"week,omitempty"`
}

// Ratings is the SP+ tier.
type Ratings struct {
	Home         domain.Value[float64] `json:"home"`
	Away         domain.Value[float64] `json:"away"`
	Differential domain.Value[float64] `json:"differential"`
	Confidence   domain.Value[string]  `json:"confidence"`
}

// Market is the sportsbook tier. Probabilities are from the home side unless named.
type Market struct {
	Status             games.LineStatus      `json:"status"`
	Provider           string                `json:"provider,omitempty"`
	Spread             domain.Value[float64] `json:"spread"`
	OverUnder          domain.Value[float64] `json:"overUnder"`
	HomeMoneyline      domain.Value[int]     `json:"homeMoneyline"`
	AwayMoneyline      domain.Value[int]     `json:"awayMoneyline"`
	HomeImplied        domain.Value[float64] `json:"homeImpliedProbability"`
	AwayImplied        domain.Value[float64] `json:"awayImpliedProbability"`
	HomeFair           domain.Value[float64] `json:"homeFairProbability"`
	AwayFair           domain.Value[float64] `json:"awayFairProbability"`
	HomeWinProbability domain.Value[float64] `json:"homeWinProbability"`
	Narrative          domain.Value[string]  `json:"narrative"`
}

// Model compares the SP+ spread with the market.
type Model struct {
	Spread      domain.Value[float64] `json:"spread"`
	Discrepancy domain.Value[float64] `json:"discrepancy"`
	ValuePlay   bool                  `json:"valuePlay"`
}

// Form is season-to-date results.
type Form struct {
	HomeRecord teams.Record         `json:"homeRecord"`
	AwayRecord teams.Record         `json:"awayRecord"`
	HomeLast5  domain.Value[string] `json:"homeLast5"`
	AwayLast5  domain.Value[string] `json:"awayLast5"`
}

// Trends carries each side's season statistics.
type Trends struct {
	Home domain.Value[teams.Statistics] `json:"home"`
	Away domain.Value[teams.Statistics] `json:"away"`
}

// Report is the tiered matchup analysis.
type Report struct {
	Ratings        Ratings                     `json:"ratings"`
	Market         Market                      `json:"market"`
	Model          Model                       `json:"model"`
	Form           Form                        `json:"form"`
	Trends         Trends                      `json:"trends"`
	Game           domain.Value[games.Fixture] `json:"game"`
	UnmatchedTeams []string                    `json:"unmatchedTeams,omitempty"`
}

// Result is a report plus the matchup it describes.
type Result struct {
	Matchup Matchup `json:"matchup"`
	Report  Report  `json:"analysis"`
}
