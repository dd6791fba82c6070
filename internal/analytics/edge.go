// Package analytics holds the pure calculators that annotate game cards and matchup reports.
// Nothing here performs I/O; missing upstream inputs arrive as domain.Value and produce
// unavailable outputs rather than zeros.
package analytics

import (
	"math"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
	"github.com/preston-bernstein/cfb-data-service/internal/domain/games"
)

// Confidence grades how lopsided an SP+ matchup is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

const (
	highConfidenceGap   = 15.0
	mediumConfidenceGap = 8.0

	// ModelSpreadCoefficient scales an SP+ differential into a point spread.
	ModelSpreadCoefficient = 0.3
	// ValueThreshold is the model-vs-market gap that must be exceeded to flag a value play.
	ValueThreshold = 3.0
)

// SPDifferential is home minus away.
func SPDifferential(homeRating, awayRating float64) float64 {
	return homeRating - awayRating
}

// ConfidenceFor buckets the absolute differential: > 15 HIGH, > 8 MEDIUM, else LOW.
func ConfidenceFor(diff float64) Confidence {
	gap := math.Abs(diff)
	switch {
	case gap > highConfidenceGap:
		return ConfidenceHigh
	case gap > mediumConfidenceGap:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ModelSpread converts an SP+ differential into the model's spread estimate.
func ModelSpread(diff float64) float64 {
	return diff * ModelSpreadCoefficient
}

// Discrepancy is |model − market|, unavailable without a market spread.
func Discrepancy(model float64, market domain.Value[float64]) domain.Value[float64] {
	spread, ok := market.Get()
	if !ok {
		return domain.Unavailable[float64]()
	}
	return domain.Observed(math.Abs(model - spread))
}

// IsValue reports a discrepancy strictly above ValueThreshold.
func IsValue(discrepancy domain.Value[float64]) bool {
	gap, ok := discrepancy.Get()
	return ok && gap > ValueThreshold
}

// Edge builds the SP+ comparison for a matchup. It is unavailable unless both ratings exist.
func Edge(home, away domain.Value[float64], market domain.Value[float64]) domain.Value[games.RatingEdge] {
	homeRating, okHome := home.Get()
	awayRating, okAway := away.Get()
	if !okHome || !okAway {
		return domain.Unavailable[games.RatingEdge]()
	}

	diff := SPDifferential(homeRating, awayRating)
	model := ModelSpread(diff)
	discrepancy := Discrepancy(model, market)
	return domain.Observed(games.RatingEdge{
		HomeRating:   homeRating,
		AwayRating:   awayRating,
		Differential: round(diff, 2),
		Confidence:   string(ConfidenceFor(diff)),
		ModelSpread:  round(model, 2),
		Discrepancy:  discrepancy,
		ValuePlay:    IsValue(discrepancy),
	})
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
