package expsmooth

import (
	"errors"
	"fmt"

	"github.com/sartorproj/goforecast/timeseries"
)

var (
	// ErrInsufficientData is returned when the series is too short for the variant.
	ErrInsufficientData = errors.New("expsmooth: insufficient data")
	// ErrNoSeasonalPeriod is returned when Holt-Winters has no usable period.
	ErrNoSeasonalPeriod = errors.New("expsmooth: seasonal period required")
)

// Variant selects the smoothing equations.
type Variant int

const (
	// Simple smooths the level only and forecasts flat.
	Simple Variant = iota
	// Holt adds a linear trend.
	Holt
	// HoltWinters adds additive seasonal indices to Holt.
	HoltWinters
)

// String returns the variant tag: simple, holt or holt_winters.
func (v Variant) String() string {
	switch v {
	case Simple:
		return "simple"
	case Holt:
		return "holt"
	case HoltWinters:
		return "holt_winters"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Params are the smoothing constants. Beta is used by Holt and Holt-Winters,
// Gamma by Holt-Winters only.
type Params struct {
	Alpha    float64
	Beta     float64
	Gamma    float64
	Optimize bool
}

// DefaultParams returns alpha=0.2, beta=0.1, gamma=0.1 with grid optimization on.
func DefaultParams() Params {
	return Params{Alpha: 0.2, Beta: 0.1, Gamma: 0.1, Optimize: true}
}

// Model is an exponential smoothing model of one variant.
type Model struct {
	Variant Variant
	Period  int // seasonal period, Holt-Winters only

	// Fitted smoothing constants.
	Alpha float64
	Beta  float64
	Gamma float64
	SSE   float64

	params Params
	fitted bool
	n      int
	state  state
}

// NewSimple creates a simple exponential smoothing model.
func NewSimple(p Params) *Model {
	return &Model{Variant: Simple, params: p}
}

// NewHolt creates a double exponential smoothing model.
func NewHolt(p Params) *Model {
	return &Model{Variant: Holt, params: p}
}

// NewHoltWinters creates an additive triple exponential smoothing model.
func NewHoltWinters(period int, p Params) *Model {
	return &Model{Variant: HoltWinters, Period: period, params: p}
}

// Fit smooths the series, choosing the constants by grid search when
// Params.Optimize is set.
func (m *Model) Fit(series *timeseries.Series) error {
	m.fitted = false
	y := series.Values
	n := len(y)

	if n < 2 {
		return fmt.Errorf("%w: %s needs at least 2 observations, got %d", ErrInsufficientData, m.Variant, n)
	}
	if m.Variant == HoltWinters {
		if m.Period < 2 {
			return fmt.Errorf("%w: got %d", ErrNoSeasonalPeriod, m.Period)
		}
		if n < 2*m.Period {
			return fmt.Errorf("%w: holt_winters with period %d needs %d observations, got %d",
				ErrInsufficientData, m.Period, 2*m.Period, n)
		}
	}

	p := m.params
	if p.Optimize {
		p = m.optimize(y)
	} else if err := p.validate(m.Variant); err != nil {
		return err
	}

	st := m.run(y, p.Alpha, p.Beta, p.Gamma)
	m.Alpha, m.Beta, m.Gamma = p.Alpha, 0, 0
	switch m.Variant {
	case Holt:
		m.Beta = p.Beta
	case HoltWinters:
		m.Beta, m.Gamma = p.Beta, p.Gamma
	}
	m.SSE = st.sse
	m.state = st
	m.n = n
	m.fitted = true
	return nil
}

func (p Params) validate(v Variant) error {
	check := func(name string, x float64) error {
		if x <= 0 || x >= 1 {
			return fmt.Errorf("expsmooth: %s must be in (0,1), got %v", name, x)
		}
		return nil
	}
	if err := check("alpha", p.Alpha); err != nil {
		return err
	}
	if v == Simple {
		return nil
	}
	if err := check("beta", p.Beta); err != nil {
		return err
	}
	if v == Holt {
		return nil
	}
	return check("gamma", p.Gamma)
}

func (m *Model) run(y []float64, alpha, beta, gamma float64) state {
	switch m.Variant {
	case Holt:
		return holt(y, alpha, beta)
	case HoltWinters:
		return holtWinters(y, m.Period, alpha, beta, gamma)
	}
	return simple(y, alpha)
}

// Predict generates forecasts for the specified number of steps ahead.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("model must be fitted before prediction")
	}
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}

	st := m.state
	forecasts := make([]float64, steps)
	for k := 1; k <= steps; k++ {
		switch m.Variant {
		case Simple:
			forecasts[k-1] = st.level
		case Holt:
			forecasts[k-1] = st.level + float64(k)*st.trend
		case HoltWinters:
			forecasts[k-1] = st.level + float64(k)*st.trend + st.seasonals[(m.n-1+k)%m.Period]
		}
	}
	return forecasts, nil
}

// Residuals returns y - fitted for every observation.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.state.residuals))
	copy(out, m.state.residuals)
	return out
}

// FittedValues returns the one-step-ahead in-sample predictions.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.state.fitted))
	copy(out, m.state.fitted)
	return out
}

// Level returns the final smoothed level.
func (m *Model) Level() float64 { return m.state.level }

// Trend returns the final smoothed trend, 0 for simple smoothing.
func (m *Model) Trend() float64 { return m.state.trend }

// Seasonals returns the final seasonal indices by phase (t mod Period).
func (m *Model) Seasonals() []float64 {
	out := make([]float64, len(m.state.seasonals))
	copy(out, m.state.seasonals)
	return out
}
