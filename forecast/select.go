package forecast

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goforecast/arima"
	"github.com/sartorproj/goforecast/expsmooth"
	"github.com/sartorproj/goforecast/stats"
	"github.com/sartorproj/goforecast/timeseries"
)

// smoothingVariant picks the exponential smoothing variant for an explicit
// exp_smoothing request: Holt-Winters with a detected period, simple when
// seasonality is switched off, Holt when index and value are strongly
// correlated, simple otherwise.
func (c Config) smoothingVariant(series *timeseries.Series, season stats.Seasonality, override Seasonality) expsmooth.Variant {
	if override == SeasonalityOff {
		return expsmooth.Simple
	}
	if season.Detected {
		return expsmooth.HoltWinters
	}
	if hasTrend(series.Values, c.Smoothing.TrendThreshold) {
		return expsmooth.Holt
	}
	return expsmooth.Simple
}

// hasTrend reports |corr(t, y)| > threshold. A flat series has no trend.
func hasTrend(values []float64, threshold float64) bool {
	if len(values) < 2 {
		return false
	}
	t := make([]float64, len(values))
	floats.Span(t, 0, float64(len(values)-1))
	r := stat.Correlation(t, values, nil)
	return !math.IsNaN(r) && math.Abs(r) > threshold
}

// candidates lists the fitters for a method in a fixed order. Auto fits
// every smoothing variant the seasonality allows so they compete on score.
func (c Config) candidates(method Method, series *timeseries.Series, season stats.Seasonality, override Seasonality) []fitter {
	period := 0
	if season.Detected && override != SeasonalityOff {
		period = season.Period
	}

	smoothing := func(v expsmooth.Variant) fitter {
		return smoothingFitter{variant: v, period: period, params: c.smoothingParams()}
	}
	arimaFit := arimaFitter{
		order:      arima.Order{P: c.ARIMA.P, D: c.ARIMA.D, Q: c.ARIMA.Q},
		autoDiff:   c.ARIMA.AutoDifferencing,
		period:     period,
		iterations: c.ARIMA.MAIterations,
	}

	switch method {
	case MethodLinear:
		return []fitter{linearFitter{}}
	case MethodExpSmoothing:
		return []fitter{smoothing(c.smoothingVariant(series, season, override))}
	case MethodARIMA:
		return []fitter{arimaFit}
	}

	out := []fitter{linearFitter{}, smoothing(expsmooth.Simple), smoothing(expsmooth.Holt)}
	if period > 0 {
		out = append(out, smoothing(expsmooth.HoltWinters))
	}
	return append(out, arimaFit)
}

// scored is a viable candidate with its accuracy.
type scored struct {
	method   ResolvedMethod
	fit      *modelFit
	accuracy float64
	mode     AccuracyMode
}

// rank breaks exact accuracy ties. An ARIMA fit reduced to the drift model
// explains no more than a trend line, so it ranks below linear. A Holt fit
// ending with a zero trend forecasts like simple smoothing and ranks with
// it, so the earlier candidate (simple) wins.
func (s scored) rank() int {
	switch {
	case s.method == ResolvedARIMA && s.fit.drift:
		return -1
	case s.method == ResolvedHolt && s.fit.flat:
		return ResolvedSimple.preference()
	}
	return s.method.preference()
}

// best returns the highest accuracy, then the highest rank. nil when empty.
func best(candidates []scored) *scored {
	var winner *scored
	for i := range candidates {
		c := &candidates[i]
		if winner == nil || c.accuracy > winner.accuracy ||
			(c.accuracy == winner.accuracy && c.rank() > winner.rank()) {
			winner = c
		}
	}
	return winner
}
