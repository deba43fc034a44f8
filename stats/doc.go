// Package stats provides the statistical building blocks of the forecasting
// engine: autocorrelation, seasonality detection, differencing heuristics,
// accuracy metrics and residual diagnostics.
//
// # Autocorrelation
//
//	acf := stats.ACF(series, 20) // lags 0..20, nil for a flat series
//
// # Seasonality Detection
//
// DetectSeasonality looks for the smallest lag (from 2 up to n/2) whose
// autocorrelation exceeds a threshold (0.3 by default) and is a local maximum:
//
//	s := stats.DetectSeasonality(series, stats.SeasonalityOptions{})
//	if s.Detected {
//	    fmt.Println("period", s.Period)
//	}
//
// HintNo skips detection; HintYes accepts the first positive ACF peak when
// nothing clears the threshold. Detection never fails.
//
// # Differencing
//
//	d := stats.SelectDifferencing(series.Values) // 0 or 1
//	seasonal := stats.SeasonalDifferencingHelps(series.Values, 12)
//
// # Accuracy Metrics
//
//	mape := stats.MAPE(actual, predicted, 1e-9)
//	nrmse := stats.NRMSE(residuals, actual, 1e-9)
//
// # Residual Diagnostics
//
//	lb := stats.LjungBox(residuals, 10, p+q)
//	if lb != nil && !lb.Significant(0.05) {
//	    // Residuals look like white noise
//	}
//	dw, ok := stats.DurbinWatson(residuals)
package stats
