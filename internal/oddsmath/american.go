package oddsmath

import (
	"errors"
	"fmt"
)

// ErrInvalidOdds is returned for American odds of zero or a probability outside (0, 1).
var ErrInvalidOdds = errors.New("invalid odds")

// AmericanToDecimal converts American odds to decimal odds.
// +150 → 2.50, -150 → 1.67.
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("%w: american odds cannot be 0", ErrInvalidOdds)
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0, nil
	}
	return 100.0/float64(-american) + 1.0, nil
}

// ImpliedProbability converts American odds to the bookmaker's implied probability
// (vig included). -110 → 0.5238.
func ImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1.0 / decimal, nil
}

// NoVigPair converts a two-way moneyline into fair probabilities that sum to 1 by
// normalizing out the overround.
func NoVigPair(home, away int) (fairHome, fairAway float64, err error) {
	pHome, err := ImpliedProbability(home)
	if err != nil {
		return 0, 0, err
	}
	pAway, err := ImpliedProbability(away)
	if err != nil {
		return 0, 0, err
	}
	total := pHome + pAway
	return pHome / total, pAway / total, nil
}
