package arima

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	errSingular = errors.New("singular system")
	errTooShort = errors.New("series too short for order")
)

// Estimators used by Fit. Tests swap them to force order reduction.
var (
	estimateAR = yuleWalker
	estimateMA = refineMA
)

// maBound keeps MA estimates inside the invertible region.
const maBound = 0.99

// yuleWalker estimates AR coefficients from the Toeplitz system R phi = r
// built from the autocorrelations.
func yuleWalker(acf []float64, order int) ([]float64, error) {
	if order <= 0 || len(acf) <= order {
		return nil, errTooShort
	}

	R := mat.NewSymDense(order, nil)
	r := mat.NewVecDense(order, nil)
	for i := 0; i < order; i++ {
		r.SetVec(i, acf[i+1])
		for j := i; j < order; j++ {
			R.SetSym(i, j, acf[j-i])
		}
	}

	var phi mat.VecDense
	if err := phi.SolveVec(R, r); err != nil {
		return nil, errSingular
	}

	coeffs := make([]float64, order)
	for i := range coeffs {
		coeffs[i] = phi.AtVec(i)
	}
	if !allFinite(coeffs) {
		return nil, errSingular
	}
	return coeffs, nil
}

// refineMA estimates q MA coefficients from the AR residuals e by repeated
// least squares: regress e_t on the lagged innovations, then rebuild the
// innovations from the new coefficients. Residuals before start are taken
// as innovations unchanged.
func refineMA(e []float64, start, q, iterations int) ([]float64, []float64, error) {
	n := len(e)
	first := start + q
	rows := n - first
	if rows < q+1 {
		return nil, nil, errTooShort
	}

	a := make([]float64, n)
	copy(a, e)
	theta := make([]float64, q)

	X := mat.NewDense(rows, q, nil)
	y := mat.NewVecDense(rows, nil)
	for r := 0; r < rows; r++ {
		y.SetVec(r, e[first+r])
	}

	for iter := 0; iter < iterations; iter++ {
		for r := 0; r < rows; r++ {
			t := first + r
			for j := 0; j < q; j++ {
				X.Set(r, j, a[t-j-1])
			}
		}

		var sol mat.VecDense
		if err := sol.SolveVec(X, y); err != nil {
			return nil, nil, errSingular
		}
		for j := range theta {
			theta[j] = math.Max(-maBound, math.Min(maBound, sol.AtVec(j)))
		}

		for t := start; t < n; t++ {
			a[t] = e[t]
			for j := 0; j < q && t-j-1 >= 0; j++ {
				a[t] -= theta[j] * a[t-j-1]
			}
		}
	}

	if !allFinite(theta) || !allFinite(a) {
		return nil, nil, errSingular
	}
	return theta, a, nil
}
