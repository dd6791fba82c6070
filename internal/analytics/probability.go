package analytics

import (
	"math"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/oddsmath"
)

// spreadLogisticScale maps a point spread onto a logistic win curve; a 7-point home
// favorite lands near 73%.
const spreadLogisticScale = 16.0

// ImpliedWinProbability converts a moneyline into its vig-inclusive implied probability.
func ImpliedWinProbability(moneyline domain.Value[int]) domain.Value[float64] {
	ml, ok := moneyline.Get()
	if !ok {
		return domain.Unavailable[float64]()
	}
	p, err := oddsmath.ImpliedProbability(ml)
	if err != nil {
		return domain.Unavailable[float64]()
	}
	return domain.Observed(round(p, 4))
}

// FairWinProbabilities strips the vig from a two-way moneyline.
func FairWinProbabilities(home, away domain.Value[int]) (domain.Value[float64], domain.Value[float64]) {
	h, okHome := home.Get()
	a, okAway := away.Get()
	if !okHome || !okAway {
		return domain.Unavailable[float64](), domain.Unavailable[float64]()
	}
	fairHome, fairAway, err := oddsmath.NoVigPair(h, a)
	if err != nil {
		return domain.Unavailable[float64](), domain.Unavailable[float64]()
	}
	return domain.Observed(round(fairHome, 4)), domain.Observed(round(fairAway, 4))
}

// SpreadWinProbability estimates the home side's win probability from a home-quoted spread
// when no moneyline exists.
func SpreadWinProbability(spread domain.Value[float64]) domain.Value[float64] {
	s, ok := spread.Get()
	if !ok {
		return domain.Unavailable[float64]()
	}
	p := 1.0 / (1.0 + math.Pow(10, s/spreadLogisticScale))
	return domain.Observed(round(math.Min(0.99, math.Max(0.01, p)), 4))
}

// HomeWinProbability prefers the moneyline and falls back to the spread.
func HomeWinProbability(homeMoneyline domain.Value[int], spread domain.Value[float64]) domain.Value[float64] {
	if p := ImpliedWinProbability(homeMoneyline); p.Available() {
		return p
	}
	return SpreadWinProbability(spread)
}

type bucket struct {
	floor float64
	label string
}

// Ordered high to low; the first floor the probability clears wins.
var narrativeBuckets = []bucket{
	{0.80, "Heavy favorite"},
	{0.65, "Clear favorite"},
	{0.55, "Slight favorite"},
	{0.45, "Toss-up"},
	{0.35, "Slight underdog"},
	{0.20, "Clear underdog"},
}

// Narrative buckets a win probability into a short label.
func Narrative(p domain.Value[float64]) domain.Value[string] {
	prob, ok := p.Get()
	if !ok {
		return domain.Unavailable[string]()
	}
	for _, b := range narrativeBuckets {
		if prob >= b.floor {
			return domain.Observed(b.label)
		}
	}
	return domain.Observed("Heavy underdog")
}
