package linear

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goforecast/timeseries"
)

// ErrInsufficientData is returned when fewer than two observations are given.
var ErrInsufficientData = errors.New("linear: need at least 2 observations")

// Model is a fitted trend line y = Intercept + Slope*t.
type Model struct {
	Slope     float64
	Intercept float64
	RSquared  float64

	fitted     bool
	n          int
	residuals  []float64
	fittedVals []float64
}

// New creates an unfitted linear trend model.
func New() *Model {
	return &Model{}
}

// Fit estimates slope and intercept by closed-form OLS.
func (m *Model) Fit(series *timeseries.Series) error {
	m.fitted = false
	n := series.Len()
	if n < 2 {
		return fmt.Errorf("%w: got %d", ErrInsufficientData, n)
	}

	t := make([]float64, n)
	floats.Span(t, 0, float64(n-1))
	y := series.Values

	m.Intercept, m.Slope = stat.LinearRegression(t, y, nil, false)
	m.n = n

	m.fittedVals = make([]float64, n)
	m.residuals = make([]float64, n)
	for i := range y {
		m.fittedVals[i] = m.Intercept + m.Slope*t[i]
		m.residuals[i] = y[i] - m.fittedVals[i]
	}

	// A flat series is explained perfectly by a flat line.
	if series.Variance() == 0 {
		m.RSquared = 1
	} else {
		m.RSquared = stat.RSquaredFrom(m.fittedVals, y, nil)
	}

	m.fitted = true
	return nil
}

// Predict extrapolates the line steps points past the last observation.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("model must be fitted before prediction")
	}
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}

	forecasts := make([]float64, steps)
	for k := 1; k <= steps; k++ {
		forecasts[k-1] = m.Intercept + m.Slope*float64(m.n-1+k)
	}
	return forecasts, nil
}

// Residuals returns y - fitted for every observation.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.residuals))
	copy(out, m.residuals)
	return out
}

// FittedValues returns the in-sample line.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.fittedVals))
	copy(out, m.fittedVals)
	return out
}
