package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MAPE is the mean absolute percentage error as a fraction (0.1 = 10%).
// Each denominator is max(|actual|, eps) so zero actuals do not divide by zero.
func MAPE(actual, predicted []float64, eps float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return math.NaN()
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i]-predicted[i]) / math.Max(math.Abs(actual[i]), eps)
	}
	return sum / float64(len(actual))
}

// RMSE is the root mean square of the residuals.
func RMSE(residuals []float64) float64 {
	if len(residuals) == 0 {
		return math.NaN()
	}
	return math.Sqrt(floats.Dot(residuals, residuals) / float64(len(residuals)))
}

// NRMSE is RMSE normalized by the range of values, with eps guarding a flat range.
func NRMSE(residuals, values []float64, eps float64) float64 {
	if len(residuals) == 0 || len(values) == 0 {
		return math.NaN()
	}
	return RMSE(residuals) / (floats.Max(values) - floats.Min(values) + eps)
}
