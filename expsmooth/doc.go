// Package expsmooth implements simple, double (Holt) and additive triple
// (Holt-Winters) exponential smoothing.
//
// # Variants
//
//	simple := expsmooth.NewSimple(expsmooth.DefaultParams())
//	holt := expsmooth.NewHolt(expsmooth.DefaultParams())
//	hw := expsmooth.NewHoltWinters(12, expsmooth.DefaultParams())
//
// Simple smoothing tracks a level and forecasts it flat. Holt adds a trend
// and forecasts L + k*T. Holt-Winters adds one additive seasonal index per
// phase of the period and needs at least two full cycles, which also seed
// its initial level, trend and seasonal indices.
//
// # Parameter Fitting
//
// With Params.Optimize set, the smoothing constants minimize the in-sample
// sum of squared one-step errors over a grid: alpha in 0.01..0.99 by 0.01 for
// simple smoothing; a 0.1 grid refined by 0.02 for Holt; a 0.1 grid refined
// by 0.05 for Holt-Winters. Ties keep the first grid point visited, so fits
// are deterministic. Without Optimize the given constants are used as is.
package expsmooth
