// Package linear fits an ordinary least squares trend line against the
// observation index.
//
// The independent variable is t = 0..n-1 regardless of the timestamps, so
// irregular gaps are not rescaled:
//
//	model := linear.New()
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//	forecasts, _ := model.Predict(6) // intercept + slope*(n-1+k)
package linear
