package expsmooth

import (
	"gonum.org/v1/gonum/stat"
)

// state is the outcome of one smoothing pass.
type state struct {
	level     float64
	trend     float64
	seasonals []float64
	fitted    []float64
	residuals []float64
	sse       float64
}

func newState(n int) state {
	return state{fitted: make([]float64, n), residuals: make([]float64, n)}
}

func (s *state) observe(t int, y, pred float64) {
	s.fitted[t] = pred
	s.residuals[t] = y - pred
	s.sse += s.residuals[t] * s.residuals[t]
}

// simple starts at L0 = y0; the first observation has no prediction error.
func simple(y []float64, alpha float64) state {
	st := newState(len(y))
	st.level = y[0]
	st.fitted[0] = y[0]
	for t := 1; t < len(y); t++ {
		st.observe(t, y[t], st.level)
		st.level = alpha*y[t] + (1-alpha)*st.level
	}
	return st
}

// holt starts at L0 = y0, T0 = y1 - y0.
func holt(y []float64, alpha, beta float64) state {
	st := newState(len(y))
	st.level = y[0]
	st.trend = y[1] - y[0]
	st.fitted[0] = y[0]
	for t := 1; t < len(y); t++ {
		st.observe(t, y[t], st.level+st.trend)
		prev := st.level
		st.level = alpha*y[t] + (1-alpha)*(prev+st.trend)
		st.trend = beta*(st.level-prev) + (1-beta)*st.trend
	}
	return st
}

// holtWinters is the additive variant. The first two cycles give the initial
// trend (difference of cycle means per step), the level one step before the
// series starts, and the seasonal indices as trend-adjusted deviations
// averaged across both cycles.
func holtWinters(y []float64, m int, alpha, beta, gamma float64) state {
	st := newState(len(y))

	mean1 := stat.Mean(y[:m], nil)
	mean2 := stat.Mean(y[m:2*m], nil)
	st.trend = (mean2 - mean1) / float64(m)
	st.level = mean1 - st.trend*float64(m+1)/2

	st.seasonals = make([]float64, m)
	for i := 0; i < m; i++ {
		for c := 0; c < 2; c++ {
			t := c*m + i
			st.seasonals[i] += y[t] - (st.level + st.trend*float64(t+1))
		}
		st.seasonals[i] /= 2
	}

	for t := range y {
		phase := t % m
		season := st.seasonals[phase]
		st.observe(t, y[t], st.level+st.trend+season)
		prev := st.level
		st.level = alpha*(y[t]-season) + (1-alpha)*(prev+st.trend)
		st.trend = beta*(st.level-prev) + (1-beta)*st.trend
		st.seasonals[phase] = gamma*(y[t]-st.level) + (1-gamma)*season
	}
	return st
}
