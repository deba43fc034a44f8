package arima

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goforecast/stats"
	"github.com/sartorproj/goforecast/timeseries"
)

// ErrNotViable is returned when no order down to ARIMA(0,0,0) produces a finite fit.
var ErrNotViable = errors.New("arima: no viable order")

// DefaultMAIterations is the number of innovations refinement passes used
// to estimate the MA coefficients.
const DefaultMAIterations = 20

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int // AR order (number of autoregressive terms)
	D int // Differencing order
	Q int // MA order (number of moving average terms)
}

// String formats the order as ARIMA(p,d,q).
func (o Order) String() string {
	return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q)
}

// Model represents an ARIMA model.
//
// Order holds the order actually fitted, which can be lower than Requested
// when the data cannot support it.
type Model struct {
	Order     Order
	Requested Order

	// AutoDifferencing replaces Requested.D with stats.SelectDifferencing.
	AutoDifferencing bool
	// SeasonalPeriod enables one lag-m difference when it lowers variance.
	SeasonalPeriod int
	// MAIterations defaults to DefaultMAIterations.
	MAIterations int

	SeasonalDiff bool // true when a seasonal difference was applied
	ARCoeffs     []float64
	MACoeffs     []float64
	Intercept    float64 // mean of the differenced series
	Variance     float64 // residual variance

	fitted      bool
	data        *timeseries.Series
	levels      [][]float64 // levels[k] is the series after k regular differences
	innovations []float64
	residuals   []float64
	fittedVals  []float64
}

// New creates a new ARIMA model with the specified order.
func New(p, d, q int) *Model {
	o := Order{P: max(p, 0), D: max(d, 0), Q: max(q, 0)}
	return &Model{Order: o, Requested: o}
}

// Fit fits the model, lowering p, then q, then d whenever the series is too
// short or the estimation system is singular.
func (m *Model) Fit(series *timeseries.Series) error {
	m.fitted = false
	values := series.Values
	n := len(values)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 observations, got %d", ErrNotViable, n)
	}

	base := values
	m.SeasonalDiff = false
	if period := m.SeasonalPeriod; period >= 2 && n-period >= 2 && stats.SeasonalDifferencingHelps(values, period) {
		base = difference(values, period)
		m.SeasonalDiff = true
	}

	d := m.Requested.D
	if m.AutoDifferencing {
		d = stats.SelectDifferencing(base)
	}

	m.levels = [][]float64{base}
	for len(m.levels) <= d {
		next := difference(m.levels[len(m.levels)-1], 1)
		if len(next) == 0 {
			break
		}
		m.levels = append(m.levels, next)
	}
	d = len(m.levels) - 1
	w := m.levels[d]

	p, q := m.Requested.P, m.Requested.Q
	if variance(w) == 0 {
		// Only the drift model can describe a flat differenced series.
		p, q = 0, 0
	}

	mu := stat.Mean(w, nil)
	var phi []float64
	for ; p > 0; p-- {
		if len(w) <= 2*p {
			continue
		}
		coeffs, err := estimateAR(stats.Autocorrelations(w, p), p)
		if err == nil {
			phi = coeffs
			break
		}
	}

	e := arResiduals(w, mu, phi)

	iterations := m.MAIterations
	if iterations <= 0 {
		iterations = DefaultMAIterations
	}
	var theta []float64
	innovations := e
	for ; q > 0; q-- {
		th, a, err := estimateMA(e, p, q, iterations)
		if err == nil {
			theta, innovations = th, a
			break
		}
	}

	offset := n - len(w)
	residuals := make([]float64, n)
	fittedVals := make([]float64, n)
	copy(fittedVals, values)
	sse := 0.0
	for t, a := range innovations {
		residuals[offset+t] = a
		fittedVals[offset+t] = values[offset+t] - a
		sse += a * a
	}
	if !allFinite(fittedVals) || !allFinite(phi) || !allFinite(theta) || math.IsNaN(mu) {
		return fmt.Errorf("%w: non-finite estimates for %s", ErrNotViable, Order{P: p, D: d, Q: q})
	}

	m.Order = Order{P: p, D: d, Q: q}
	m.ARCoeffs = phi
	m.MACoeffs = theta
	m.Intercept = mu
	if dof := len(innovations) - p - q - 1; dof > 0 {
		m.Variance = sse / float64(dof)
	} else {
		m.Variance = sse / float64(len(innovations))
	}
	m.data = series
	m.innovations = innovations
	m.residuals = residuals
	m.fittedVals = fittedVals
	m.fitted = true
	return nil
}

// arResiduals returns w - mu with the AR part removed from t >= len(phi).
func arResiduals(w []float64, mu float64, phi []float64) []float64 {
	e := make([]float64, len(w))
	for t := range w {
		e[t] = w[t] - mu
		if t < len(phi) {
			continue
		}
		for i, c := range phi {
			e[t] -= c * (w[t-i-1] - mu)
		}
	}
	return e
}

// Predict generates forecasts for the specified number of steps ahead.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("model must be fitted before prediction")
	}

	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}

	w := m.levels[m.Order.D]
	n := len(w)

	ext := make([]float64, n+steps)
	copy(ext, w)

	// Future innovations have expectation zero.
	for h := 0; h < steps; h++ {
		t := n + h
		pred := m.Intercept
		for i, c := range m.ARCoeffs {
			if t-i-1 >= 0 {
				pred += c * (ext[t-i-1] - m.Intercept)
			}
		}
		for j, c := range m.MACoeffs {
			if k := t - j - 1; k >= 0 && k < n {
				pred += c * m.innovations[k]
			}
		}
		ext[t] = pred
	}

	forecasts := ext[n:]
	for k := m.Order.D; k > 0; k-- {
		forecasts = integrate(m.levels[k-1], forecasts)
	}
	if m.SeasonalDiff {
		forecasts = integrateSeasonal(m.data.Values, forecasts, m.SeasonalPeriod)
	}

	if !allFinite(forecasts) {
		return nil, fmt.Errorf("%w: non-finite forecast", ErrNotViable)
	}
	return forecasts, nil
}

// integrate undoes one difference, anchored on the last value of the level below.
func integrate(level, forecasts []float64) []float64 {
	result := make([]float64, len(forecasts))
	prev := level[len(level)-1]
	for i, f := range forecasts {
		prev += f
		result[i] = prev
	}
	return result
}

func integrateSeasonal(history, forecasts []float64, period int) []float64 {
	n := len(history)
	ext := make([]float64, n+len(forecasts))
	copy(ext, history)
	for i, f := range forecasts {
		ext[n+i] = f + ext[n+i-period]
	}
	return ext[n:]
}

// Residuals returns the one-step residuals on the original scale. Observations
// consumed by differencing have a residual of zero.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// Warmup returns the number of leading observations consumed by regular and
// seasonal differencing. Their residuals are zero.
func (m *Model) Warmup() int {
	return len(m.residuals) - len(m.innovations)
}

// FittedValues returns the fitted values.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

func difference(values []float64, lag int) []float64 {
	if len(values) <= lag {
		return nil
	}
	out := make([]float64, len(values)-lag)
	for i := lag; i < len(values); i++ {
		out[i-lag] = values[i] - values[i-lag]
	}
	return out
}

func variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.Variance(values, nil)
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
