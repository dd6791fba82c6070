package teams

import (
	"fmt"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
)

// Record is a wins/losses/ties line. It is also reused for ATS (cover/miss/push) and
// over/under (over/under/push) tallies.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Games returns the number of decided and tied games in the record.
func (r Record) Games() int {
	return r.Wins + r.Losses + r.Ties
}

// WinPct counts ties as half a win. Empty records yield zero.
func (r Record) WinPct() float64 {
	if r.Games() == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(r.Games())
}

// DecidedPct ignores ties (pushes) and is unavailable when nothing was decided.
func (r Record) DecidedPct() domain.Value[float64] {
	decided := r.Wins + r.Losses
	if decided == 0 {
		return domain.Unavailable[float64]()
	}
	return domain.Observed(float64(r.Wins) / float64(decided))
}

func (r Record) String() string {
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// SeasonRecord is a team's season record as reported upstream.
type SeasonRecord struct {
	Year            int     `json:"year"`
	TeamID          int     `json:"teamId"`
	Team            string  `json:"team"`
	Classification  string  `json:"classification"`
	Conference      string  `json:"conference"`
	Division        string  `json:"division"`
	ExpectedWins    float64 `json:"expectedWins"`
	Total           Record  `json:"total"`
	ConferenceGames Record  `json:"conferenceGames"`
	HomeGames       Record  `json:"homeGames"`
	AwayGames       Record  `json:"awayGames"`
}

// Rating is a team's SP+ rating line. The numbers are opaque upstream values.
type Rating struct {
	Year         int     `json:"year"`
	Team         string  `json:"team"`
	Conference   string  `json:"conference"`
	Rating       float64 `json:"rating"`
	Ranking      int     `json:"ranking"`
	Offense      float64 `json:"offense"`
	Defense      float64 `json:"defense"`
	SpecialTeams float64 `json:"specialTeams"`
	SOS          float64 `json:"sos"`
}

// SeasonStat is one named season aggregate (totalYards, turnovers, ...).
type SeasonStat struct {
	Team       string  `json:"team"`
	Conference string  `json:"conference"`
	StatName   string  `json:"statName"`
	StatValue  float64 `json:"statValue"`
}

// StrengthOfSchedule pairs the raw SOS figure with its rank among rated teams.
type StrengthOfSchedule struct {
	Value float64 `json:"value"`
	Rank  int     `json:"rank"`
}

// Statistics is the per-team season summary joined into game cards.
type Statistics struct {
	Team                 string                           `json:"team"`
	Season               int                              `json:"season"`
	GamesPlayed          int                              `json:"gamesPlayed"`
	PointsForPerGame     float64                          `json:"pointsForPerGame"`
	PointsAgainstPerGame float64                          `json:"pointsAgainstPerGame"`
	MarginPerGame        float64                          `json:"marginPerGame"`
	MarginStdDev         float64                          `json:"marginStdDev"`
	ATSRecord            Record                           `json:"atsRecord"`
	ATSPct               domain.Value[float64]            `json:"atsPct"`
	OverUnderRecord      Record                           `json:"overUnderRecord"`
	OverPct              domain.Value[float64]            `json:"overPct"`
	FavoriteATSPct       domain.Value[float64]            `json:"favoriteAtsPct"`
	UnderdogATSPct       domain.Value[float64]            `json:"underdogAtsPct"`
	StrengthOfSchedule   domain.Value[StrengthOfSchedule] `json:"strengthOfSchedule"`
	Last5                domain.Value[string]             `json:"last5"`
}

// StatRow is one line of the team-stats table.
type StatRow struct {
	Team            string                `json:"team"`
	TeamID          int                   `json:"teamId"`
	Classification  string                `json:"classification"`
	Conference      string                `json:"conference"`
	Division        string                `json:"division"`
	Record          Record                `json:"record"`
	ConferenceGames Record                `json:"conferenceRecord"`
	HomeGames       Record                `json:"homeRecord"`
	AwayGames       Record                `json:"awayRecord"`
	WinPct          float64               `json:"winPct"`
	ExpectedWins    float64               `json:"expectedWins"`
	SPRating        domain.Value[float64] `json:"spRating"`
	SPRanking       domain.Value[int]     `json:"spRanking"`
	Offense         domain.Value[float64] `json:"offenseRating"`
	Defense         domain.Value[float64] `json:"defenseRating"`
	Stats           map[string]float64    `json:"stats"`
}
