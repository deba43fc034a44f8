package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZScore(t *testing.T) {
	assert.InDelta(t, 1.645, ZScore(0.90), 1e-3)
	assert.InDelta(t, 1.960, ZScore(0.95), 1e-3)
	assert.InDelta(t, 2.576, ZScore(0.99), 1e-3)
}

func TestBuildInterval(t *testing.T) {
	// Sample standard deviation of {1, 3, 5} is exactly 2.
	residuals := []float64{1, 3, 5}
	forecast := []float64{10, 11, 12, 13}

	ci := BuildInterval(forecast, residuals, 0.95)
	require.Len(t, ci.Upper, 4)
	require.Len(t, ci.Lower, 4)
	assert.Equal(t, 0.95, ci.Confidence)

	assert.InDelta(t, 3.92, ci.Upper[0]-forecast[0], 1e-2)
	assert.InDelta(t, 3.92, forecast[0]-ci.Lower[0], 1e-2)

	prev := 0.0
	for k := range forecast {
		width := ci.Upper[k] - forecast[k]
		assert.Greater(t, width, prev)
		assert.InDelta(t, width, forecast[k]-ci.Lower[k], 1e-12)
		prev = width
	}

	// The caller's slice is left untouched.
	assert.Equal(t, []float64{10, 11, 12, 13}, forecast)
}

func TestBuildIntervalWithoutSpread(t *testing.T) {
	for _, residuals := range [][]float64{nil, {4}, {0, 0, 0}} {
		ci := BuildInterval([]float64{7, 8}, residuals, 0.99)
		assert.Equal(t, []float64{7, 8}, ci.Upper)
		assert.Equal(t, []float64{7, 8}, ci.Lower)
	}
}

func TestHalfWidthsScaleWithSqrtHorizon(t *testing.T) {
	widths := HalfWidths(1, 0.95, 4)
	assert.InDelta(t, widths[0]*2, widths[3], 1e-12)
}
