// Package arima implements AutoRegressive Integrated Moving Average (ARIMA) models.
//
// An ARIMA(p,d,q) model combines:
//   - AR(p): AutoRegressive component with p lags
//   - I(d): Integration (differencing) of order d
//   - MA(q): Moving Average component with q lags
//
// # Estimation
//
// Estimation is approximate, not maximum likelihood. AR coefficients come from
// the Yule-Walker equations over the sample autocorrelations of the differenced
// series. MA coefficients come from a fixed number of innovations refinement
// passes over the AR residuals: each pass regresses the residuals on the
// lagged innovations and rebuilds the innovations from the new coefficients.
// MA coefficients are clamped to [-0.99, 0.99]. Expect accuracy below that of
// an exact likelihood fit on short or strongly MA-driven series.
//
// When the data cannot support the requested order (too few observations or a
// singular system), the order is lowered instead of failing: first p, then q,
// then d. Model.Order reports the order actually fitted. A series whose
// differences are constant is fitted as the ARIMA(0,d,0) drift model.
//
// # Basic Usage
//
//	// Create ARIMA(1,1,1) model
//	model := arima.New(1, 1, 1)
//	model.AutoDifferencing = true // pick d from the data
//
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//
//	forecasts, _ := model.Predict(10)
//	fmt.Println(model.Order, model.ARCoeffs, model.MACoeffs)
//
// # Seasonal Differencing
//
// Setting SeasonalPeriod lets the model apply one lag-m difference before the
// regular differences when doing so lowers the variance of the series. The
// seasonal difference is undone after the regular ones on forecast.
//
// # Residual Analysis
//
//	residuals := model.Residuals()
//	lb := stats.LjungBox(model.Residuals(), 10, model.Order.P+model.Order.Q)
package arima
