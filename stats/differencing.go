package stats

import (
	"gonum.org/v1/gonum/stat"
)

// SelectDifferencing picks the ARIMA differencing order d. One difference is
// used when it lowers the variance of the series; a series whose differences
// are more variable than its levels is treated as already stationary (d=0).
// Series too short to compare default to d=1.
func SelectDifferencing(values []float64) int {
	if len(values) < 3 {
		return 1
	}
	if variance(diff(values, 1)) < variance(values) {
		return 1
	}
	return 0
}

// SeasonalDifferencingHelps reports whether lag-period differences are less
// variable than both the raw series and its first differences.
func SeasonalDifferencingHelps(values []float64, period int) bool {
	if period < 2 || len(values) < period+2 {
		return false
	}
	seasonal := variance(diff(values, period))
	return seasonal < variance(values) && seasonal < variance(diff(values, 1))
}

func diff(values []float64, lag int) []float64 {
	if len(values) <= lag {
		return nil
	}
	out := make([]float64, len(values)-lag)
	for i := lag; i < len(values); i++ {
		out[i-lag] = values[i] - values[i-lag]
	}
	return out
}

// variance is the sample variance, 0 for fewer than two values.
func variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}
