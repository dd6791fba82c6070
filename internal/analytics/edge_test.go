package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/cfb-data-service/internal/domain"
)

func TestConfidenceForIsSymmetric(t *testing.T) {
	cases := []struct {
		diff float64
		want Confidence
	}{
		{20, ConfidenceHigh},
		{10, ConfidenceMedium},
		{2, ConfidenceLow},
		{-20, ConfidenceHigh},
		{-10, ConfidenceMedium},
		{15, ConfidenceMedium},
		{8, ConfidenceLow},
		{15.01, ConfidenceHigh},
		{0, ConfidenceLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ConfidenceFor(tc.diff), "diff=%v", tc.diff)
	}
}

func TestValueFlagRequiresStrictlyGreaterGap(t *testing.T) {
	model := ModelSpread(10)
	assert.InDelta(t, 3.0, model, 1e-9)

	atThreshold := Discrepancy(model, domain.Observed(0.0))
	gap, ok := atThreshold.Get()
	require.True(t, ok)
	assert.InDelta(t, 3.0, gap, 1e-9)
	assert.False(t, IsValue(atThreshold))

	beyond := Discrepancy(model, domain.Observed(-1.0))
	gap, _ = beyond.Get()
	assert.InDelta(t, 4.0, gap, 1e-9)
	assert.True(t, IsValue(beyond))
}

func TestDiscrepancyUnavailableWithoutMarket(t *testing.T) {
	d := Discrepancy(3, domain.Unavailable[float64]())
	assert.False(t, d.Available())
	assert.False(t, IsValue(d))
}

func TestEdge(t *testing.T) {
	edge, ok := Edge(domain.Observed(25.4), domain.Observed(5.1), domain.Observed(-3.0)).Get()
	require.True(t, ok)
	assert.InDelta(t, 20.3, edge.Differential, 1e-9)
	assert.Equal(t, string(ConfidenceHigh), edge.Confidence)
	assert.InDelta(t, 6.09, edge.ModelSpread, 1e-9)
	assert.True(t, edge.ValuePlay)

	assert.False(t, Edge(domain.Observed(1.0), domain.Unavailable[float64](), domain.Observed(0.0)).Available())
}
