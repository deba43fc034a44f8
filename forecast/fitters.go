package forecast

import (
	"github.com/sartorproj/goforecast/arima"
	"github.com/sartorproj/goforecast/expsmooth"
	"github.com/sartorproj/goforecast/linear"
	"github.com/sartorproj/goforecast/timeseries"
)

// modelFit is one fitted candidate.
type modelFit struct {
	params    Parameters
	fitted    []float64
	residuals []float64
	forecast  []float64
	fitdf     int  // estimated parameters, for residual tests
	warmup    int  // leading residuals fixed at zero by initialisation
	drift     bool // ARIMA reduced to ARIMA(0,d,0)
	flat      bool // Holt ending with a zero trend
}

// observed returns the residuals after the warm-up positions.
func (f *modelFit) observed() []float64 {
	return f.residuals[min(f.warmup, len(f.residuals)):]
}

// fitter builds a fresh model on every call so holdout and full fits never
// share state.
type fitter interface {
	method() ResolvedMethod
	fit(series *timeseries.Series, horizon int) (*modelFit, error)
}

type linearFitter struct{}

func (linearFitter) method() ResolvedMethod { return ResolvedLinear }

func (linearFitter) fit(series *timeseries.Series, horizon int) (*modelFit, error) {
	model := linear.New()
	if err := model.Fit(series); err != nil {
		return nil, err
	}
	forecast, err := model.Predict(horizon)
	if err != nil {
		return nil, err
	}
	return &modelFit{
		params:    LinearParameters{Slope: model.Slope, Intercept: model.Intercept},
		fitted:    model.FittedValues(),
		residuals: model.Residuals(),
		forecast:  forecast,
		fitdf:     2,
	}, nil
}

type smoothingFitter struct {
	variant expsmooth.Variant
	period  int
	params  expsmooth.Params
}

func (f smoothingFitter) method() ResolvedMethod {
	return ResolvedMethod{Family: MethodExpSmoothing, Variant: f.variant}
}

func (f smoothingFitter) fit(series *timeseries.Series, horizon int) (*modelFit, error) {
	var model *expsmooth.Model
	switch f.variant {
	case expsmooth.Holt:
		model = expsmooth.NewHolt(f.params)
	case expsmooth.HoltWinters:
		model = expsmooth.NewHoltWinters(f.period, f.params)
	default:
		model = expsmooth.NewSimple(f.params)
	}
	if err := model.Fit(series); err != nil {
		return nil, err
	}
	forecast, err := model.Predict(horizon)
	if err != nil {
		return nil, err
	}

	params := SmoothingParameters{Variant: f.variant.String(), Alpha: model.Alpha}
	fitdf, warmup := 1, 1
	switch f.variant {
	case expsmooth.Holt:
		params.Beta = ptr(model.Beta)
		fitdf = 2
	case expsmooth.HoltWinters:
		params.Beta = ptr(model.Beta)
		params.Gamma = ptr(model.Gamma)
		params.SeasonalPeriod = f.period
		fitdf, warmup = 3, 0
	}

	return &modelFit{
		params:    params,
		fitted:    model.FittedValues(),
		residuals: model.Residuals(),
		forecast:  forecast,
		fitdf:     fitdf,
		warmup:    warmup,
		flat:      f.variant == expsmooth.Holt && model.Trend() == 0,
	}, nil
}

type arimaFitter struct {
	order      arima.Order
	autoDiff   bool
	period     int
	iterations int
}

func (arimaFitter) method() ResolvedMethod { return ResolvedARIMA }

func (f arimaFitter) fit(series *timeseries.Series, horizon int) (*modelFit, error) {
	model := arima.New(f.order.P, f.order.D, f.order.Q)
	model.AutoDifferencing = f.autoDiff
	model.SeasonalPeriod = f.period
	model.MAIterations = f.iterations
	if err := model.Fit(series); err != nil {
		return nil, err
	}
	forecast, err := model.Predict(horizon)
	if err != nil {
		return nil, err
	}

	params := ARIMAParameters{
		P:              model.Order.P,
		D:              model.Order.D,
		Q:              model.Order.Q,
		ARCoefficients: nonNil(model.ARCoeffs),
		MACoefficients: nonNil(model.MACoeffs),
		Intercept:      model.Intercept,
	}
	if model.SeasonalDiff {
		params.SeasonalPeriod = model.SeasonalPeriod
	}

	return &modelFit{
		params:    params,
		fitted:    model.FittedValues(),
		residuals: model.Residuals(),
		forecast:  forecast,
		fitdf:     model.Order.P + model.Order.Q,
		warmup:    model.Warmup(),
		drift:     model.Order.P == 0 && model.Order.Q == 0,
	}, nil
}

func ptr(v float64) *float64 { return &v }

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
