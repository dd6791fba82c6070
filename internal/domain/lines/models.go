package lines

import (
	"strings"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
)

// PreferredProviders is the fixed sportsbook preference order used when a game carries
// several lines. Anything else falls back to the first line listed.
var PreferredProviders = []string{"DraftKings", "ESPN Bet"}

// Line is one sportsbook's market for a game. Spreads are quoted from the home side.
type Line struct {
	Provider        string                `json:"provider"`
	Spread          domain.Value[float64] `json:"spread"`
	SpreadOpen      domain.Value[float64] `json:"spreadOpen"`
	FormattedSpread string                `json:"formattedSpread,omitempty"`
	OverUnder       domain.Value[float64] `json:"overUnder"`
	OverUnderOpen   domain.Value[float64] `json:"overUnderOpen"`
	HomeMoneyline   domain.Value[int]     `json:"homeMoneyline"`
	AwayMoneyline   domain.Value[int]     `json:"awayMoneyline"`
}

// GameLines groups every provider line for one game.
type GameLines struct {
	GameID     int               `json:"id"`
	Season     int               `json:"season"`
	Week       int               `json:"week"`
	SeasonType string            `json:"seasonType"`
	HomeTeam   string            `json:"homeTeam"`
	AwayTeam   string            `json:"awayTeam"`
	HomeScore  domain.Value[int] `json:"homeScore"`
	AwayScore  domain.Value[int] `json:"awayScore"`
	Lines      []Line            `json:"lines"`
}

// Select picks a line by provider preference, then the first line available.
func Select(candidates []Line, preferred []string) (Line, bool) {
	for _, name := range preferred {
		for _, line := range candidates {
			if strings.EqualFold(strings.TrimSpace(line.Provider), name) {
				return line, true
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}
	return Line{}, false
}

// ByGameID indexes lines by upstream game id. Later entries for the same id win.
func ByGameID(all []GameLines) map[int]GameLines {
	out := make(map[int]GameLines, len(all))
	for _, gl := range all {
		out[gl.GameID] = gl
	}
	return out
}
