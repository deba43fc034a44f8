package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// MinLjungBoxPoints is the shortest residual series LjungBox will test.
const MinLjungBoxPoints = 10

// LjungBoxResult is the portmanteau statistic Q for the first Lags
// autocorrelations of a residual series, compared against chi-squared with
// DOF degrees of freedom.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// Significant reports whether the residuals still carry autocorrelation at
// level alpha.
func (r *LjungBoxResult) Significant(alpha float64) bool {
	return r.PValue < alpha
}

// LjungBox tests residuals for leftover autocorrelation up to lags. fitdf is
// the number of estimated parameters subtracted from the degrees of freedom
// (never below 1). It returns nil for fewer than MinLjungBoxPoints residuals,
// a non-positive lag count or residuals with no variance.
func LjungBox(residuals []float64, lags, fitdf int) *LjungBoxResult {
	n := len(residuals)
	if n < MinLjungBoxPoints || lags < 1 {
		return nil
	}
	lags = min(lags, n-1)

	acf := Autocorrelations(residuals, lags)
	if acf == nil {
		return nil
	}

	var q float64
	for k := 1; k <= lags; k++ {
		q += acf[k] * acf[k] / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := max(1, lags-fitdf)
	return &LjungBoxResult{
		Statistic: q,
		PValue:    distuv.ChiSquared{K: float64(dof)}.Survival(q),
		Lags:      lags,
		DOF:       dof,
	}
}

// DurbinWatson is sum((e_t - e_{t-1})^2) / sum(e_t^2). Values near 2 mean no
// first-order autocorrelation; it is undefined (false) for all-zero residuals.
func DurbinWatson(residuals []float64) (float64, bool) {
	n := len(residuals)
	if n < 2 {
		return 0, false
	}
	ss := floats.Dot(residuals, residuals)
	if ss == 0 {
		return 0, false
	}

	steps := make([]float64, n-1)
	floats.SubTo(steps, residuals[1:], residuals[:n-1])
	return floats.Dot(steps, steps) / ss, true
}
