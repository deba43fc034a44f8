package forecast

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ZScore is the two-sided standard normal quantile for a confidence level,
// e.g. 1.96 for 0.95.
func ZScore(level float64) float64 {
	return distuv.UnitNormal.Quantile((1 + level) / 2)
}

// HalfWidths returns z * sd * sqrt(k) for k = 1..steps.
func HalfWidths(residualStdDev, level float64, steps int) []float64 {
	z := ZScore(level)
	widths := make([]float64, steps)
	for k := range widths {
		widths[k] = z * residualStdDev * math.Sqrt(float64(k+1))
	}
	return widths
}

// BuildInterval widens the forecast by horizon-scaled residual spread. The
// same random-walk scaling is used for every model family. residuals should
// hold only observed one-step errors, without warm-up zeros.
func BuildInterval(forecast, residuals []float64, level float64) *ConfidenceInterval {
	widths := HalfWidths(residualStdDev(residuals), level, len(forecast))

	upper := make([]float64, len(forecast))
	copy(upper, forecast)
	floats.Add(upper, widths)

	lower := make([]float64, len(forecast))
	copy(lower, forecast)
	floats.Sub(lower, widths)

	return &ConfidenceInterval{Upper: upper, Lower: lower, Confidence: level}
}

// residualStdDev is the sample (n-1) standard deviation.
func residualStdDev(residuals []float64) float64 {
	if len(residuals) < 2 {
		return 0
	}
	return stat.StdDev(residuals, nil)
}
