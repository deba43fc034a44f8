// Package goforecast provides demand forecasting over univariate time series.
//
// GoForecast turns loosely typed (date, value) history into a forecast of
// future values. It fits linear regression, exponential smoothing (simple,
// Holt and additive Holt-Winters) and ARIMA(p,d,q) models, scores each by
// accuracy and returns the best one together with a confidence interval.
//
// # Features
//
//   - Lenient input preparation: mixed date and value types, missing values,
//     duplicate timestamps
//   - Seasonality detection from the autocorrelation function
//   - Linear regression, simple, Holt and Holt-Winters exponential smoothing
//   - ARIMA with automatic differencing and order reduction
//   - Automatic model selection by holdout accuracy
//   - Normal-approximation confidence intervals that widen with the horizon
//   - Run diagnostics, Ljung-Box residual checks and Prometheus metrics
//
// # Quick Start
//
// Forecast with automatic model selection:
//
//	engine, _ := forecast.New(forecast.DefaultConfig())
//	raw := []timeseries.RawPoint{
//	    {Date: "2024-01-01", Value: 120},
//	    {Date: "2024-01-02", Value: "131.5"},
//	    // ...
//	}
//	result, err := engine.Forecast(ctx, raw, forecast.DefaultOptions())
//
// Fit a single model directly:
//
//	series := timeseries.New(values)
//	model := arima.New(1, 1, 1)
//	model.Fit(series)
//	forecasts, _ := model.Predict(10)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - forecast: Engine, options, model selection, results and intervals
//   - timeseries: Series type, input preparation, spacing inference, CSV input
//   - stats: Autocorrelation, seasonality, differencing and accuracy metrics
//   - linear: Least-squares linear trend
//   - expsmooth: Exponential smoothing models
//   - arima: Non-seasonal ARIMA models with optional seasonal differencing
//
// The goforecast command in cmd/goforecast forecasts CSV files from the
// command line.
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Box, G. E. P., & Jenkins, G. M. (1976). Time Series Analysis: Forecasting and Control
package goforecast
