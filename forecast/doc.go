// Package forecast is the forecasting engine: it prepares a raw series, fits
// one or more models, scores them, and returns projected values with
// confidence bands.
//
// # Basic Usage
//
//	engine, err := forecast.New(forecast.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw := []timeseries.RawPoint{
//	    {Date: "2024-01-01", Value: 10},
//	    {Date: "2024-01-02", Value: 20},
//	    {Date: "2024-01-03", Value: 30},
//	}
//	opts := forecast.DefaultOptions()
//	opts.Method = forecast.MethodLinear
//	opts.Periods = 2
//
//	result, err := engine.Forecast(ctx, raw, opts)
//	// result.Method.String() == "linear", forecasts 40 and 50
//
// # Method Selection
//
// With MethodAuto the engine fits linear regression, simple and Holt
// exponential smoothing, Holt-Winters when a seasonal period is detected, and
// ARIMA. It scores each and keeps the most accurate. SeasonalityOff drops
// Holt-Winters. Exact accuracy ties prefer Holt-Winters, then ARIMA, Holt,
// simple and linear. An ARIMA fit that reduced to the ARIMA(0,d,0) drift
// model ranks below linear, and a Holt fit ending with a zero trend ranks
// as simple smoothing.
//
// MethodExpSmoothing fits a single variant: Holt-Winters when a seasonal
// period is detected, Holt when index and value correlate above
// Config.Smoothing.TrendThreshold, and simple otherwise. SeasonalityOff
// always selects simple smoothing.
//
// If a candidate cannot be fitted it is dropped from the auto set. An
// explicitly requested method that cannot be fitted fails with
// *NoViableModelError.
//
// # Accuracy
//
// Series with at least Config.Accuracy.HoldoutMinPoints observations (6 by
// default) are scored on a holdout of min(periods, 20% of n) points as
// max(0, 1 - MAPE). Shorter series are scored in-sample as
// max(0, 1 - NRMSE). A model that cannot be fitted on the training split
// falls back to its in-sample score; when other candidates were scored on
// the holdout it is reported with Excluded set and not ranked, since the two
// scores are not on the same scale.
//
// # Confidence Intervals
//
// Bands are forecast +/- z * sd(residuals) * sqrt(k) for step k, for every
// model family:
//
//	ci := forecast.BuildInterval(values, residuals, 0.95)
//
// # Errors
//
// A call fails with exactly one of *InvalidOptionsError, *InsufficientDataError
// or *NoViableModelError (or the context error), and never returns a partial
// Result:
//
//	var invalid *forecast.InvalidOptionsError
//	if errors.As(err, &invalid) {
//	    fmt.Println(invalid.Field)
//	}
//
// # Configuration
//
// Defaults live in Config. LoadConfig overlays a YAML file and the
// GOFORECAST_LOG_LEVEL and GOFORECAST_PARALLEL environment variables:
//
//	log_level: info
//	default_periods: 6
//	smoothing:
//	  optimize: false
//	  alpha: 0.3
//	arima:
//	  p: 2
//	  auto_differencing: true
package forecast
