package forecast

import (
	"math"

	"github.com/sartorproj/goforecast/stats"
	"github.com/sartorproj/goforecast/timeseries"
)

// AccuracyMode records how a candidate's accuracy was measured.
type AccuracyMode string

const (
	// AccuracyHoldout is 1 - MAPE on a withheld suffix of the series.
	AccuracyHoldout AccuracyMode = "holdout"
	// AccuracyInSample is 1 - NRMSE of the full fit; used for short series.
	AccuracyInSample AccuracyMode = "in_sample"
	// AccuracyInSampleFallback is AccuracyInSample used because the model
	// could not be fitted on the training split.
	AccuracyInSampleFallback AccuracyMode = "in_sample_fallback"
)

// holdoutSize is min(periods, floor(n*fraction)), at least 1.
func (c Config) holdoutSize(n, periods int) int {
	return max(1, min(periods, int(math.Floor(float64(n)*c.Accuracy.HoldoutFraction))))
}

// evaluate scores a candidate in [0,1]. full is the candidate's fit on the
// whole series, used for the in-sample measure.
func (c Config) evaluate(f fitter, series *timeseries.Series, full *modelFit, periods int) (float64, AccuracyMode) {
	n := series.Len()
	eps := c.Accuracy.Epsilon
	mode := AccuracyInSample

	if n >= c.Accuracy.HoldoutMinPoints {
		h := c.holdoutSize(n, periods)
		train := series.Slice(0, n-h)
		if holdout, err := f.fit(train, h); err == nil {
			mape := stats.MAPE(series.Values[n-h:], holdout.forecast, eps)
			if !math.IsNaN(mape) && !math.IsInf(mape, 0) {
				return clamp01(1 - mape), AccuracyHoldout
			}
		}
		mode = AccuracyInSampleFallback
	}

	nrmse := stats.NRMSE(full.residuals, series.Values, eps)
	if math.IsNaN(nrmse) || math.IsInf(nrmse, 0) {
		return 0, mode
	}
	return clamp01(1 - nrmse), mode
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
