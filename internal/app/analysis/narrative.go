package analysis

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/teams"
)

// Narrate renders a result as plain prose, one observation per sentence. Unavailable tiers
// are stated as such rather than guessed.
func Narrate(res Result) string {
	m, r := res.Matchup, res.Report
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s) hosts %s (%s)", m.HomeTeam, r.Form.HomeRecord, m.AwayTeam, r.Form.AwayRecord)
	if m.Week > 0 {
		fmt.Fprintf(&b, " in week %d of the %d season.", m.Week, m.Year)
	} else {
		fmt.Fprintf(&b, " in the %d season.", m.Year)
	}

	if g, ok := r.Game.Get(); ok && g.Venue != "" {
		fmt.Fprintf(&b, " The game is played at %s.", g.Venue)
	}

	if diff, ok := r.Ratings.Differential.Get(); ok {
		conf, _ := r.Ratings.Confidence.Get()
		fmt.Fprintf(&b, " SP+ rates %s at %s and %s at %s, a %+.1f differential with %s confidence.",
			m.HomeTeam, describe(r.Ratings.Home, "%.1f"),
			m.AwayTeam, describe(r.Ratings.Away, "%.1f"),
			diff, conf)
	} else {
		b.WriteString(" SP+ ratings are unavailable for this matchup.")
	}

	mk := r.Market
	if spread, ok := mk.Spread.Get(); ok {
		fmt.Fprintf(&b, " %s lists %s at %+.1f", mk.Provider, m.HomeTeam, spread)
		if total, ok := mk.OverUnder.Get(); ok {
			fmt.Fprintf(&b, " with a total of %.1f", total)
		}
		b.WriteString(".")
	} else {
		b.WriteString(" No betting line is available.")
	}
	if p, ok := mk.HomeWinProbability.Get(); ok {
		label, _ := mk.Narrative.Get()
		fmt.Fprintf(&b, " The market gives %s a %.1f%% chance to win (%s).", m.HomeTeam, p*100, strings.ToLower(label))
	}

	if model, ok := r.Model.Spread.Get(); ok {
		fmt.Fprintf(&b, " The SP+ model spread is %+.1f", model)
		if gap, ok := r.Model.Discrepancy.Get(); ok {
			fmt.Fprintf(&b, ", %.1f points off the market", gap)
			if r.Model.ValuePlay {
				b.WriteString(", which flags a value play")
			}
		}
		b.WriteString(".")
	}

	if form := formSentence(m, r.Form); form != "" {
		b.WriteString(" " + form)
	}
	for _, side := range []struct {
		team  string
		stats domain.Value[teams.Statistics]
	}{{m.HomeTeam, r.Trends.Home}, {m.AwayTeam, r.Trends.Away}} {
		if st, ok := side.stats.Get(); ok && st.GamesPlayed > 0 {
			fmt.Fprintf(&b, " %s is %s against the spread and averages a %+.1f margin over %d games.",
				side.team, st.ATSRecord, st.MarginPerGame, st.GamesPlayed)
		}
	}
	return b.String()
}

func formSentence(m Matchup, f Form) string {
	home, okHome := f.HomeLast5.Get()
	away, okAway := f.AwayLast5.Get()
	switch {
	case okHome && okAway:
		return fmt.Sprintf("Recent form: %s %s, %s %s.", m.HomeTeam, home, m.AwayTeam, away)
	case okHome:
		return fmt.Sprintf("Recent form: %s %s.", m.HomeTeam, home)
	case okAway:
		return fmt.Sprintf("Recent form: %s %s.", m.AwayTeam, away)
	}
	return ""
}

func describe(v domain.Value[float64], format string) string {
	if x, ok := v.Get(); ok {
		return fmt.Sprintf(format, x)
	}
	return "n/a"
}
