package arima

import (
	"errors"
	"math"
	"testing"

	"github.com/sartorproj/goforecast/timeseries"
)

func TestNewARIMA(t *testing.T) {
	model := New(2, 1, 1)

	if model.Order.P != 2 {
		t.Errorf("Expected P=2, got %d", model.Order.P)
	}
	if model.Order.D != 1 {
		t.Errorf("Expected D=1, got %d", model.Order.D)
	}
	if model.Order.Q != 1 {
		t.Errorf("Expected Q=1, got %d", model.Order.Q)
	}
	if model.Requested != model.Order {
		t.Errorf("Expected requested order %v, got %v", model.Order, model.Requested)
	}
}

func TestARIMAFitAR1(t *testing.T) {
	// Generate AR(1) data
	n := 200
	phi := 0.7
	values := make([]float64, n)
	values[0] = 100
	for i := 1; i < n; i++ {
		innovation := float64(i%7-3) / 3
		values[i] = phi*(values[i-1]-100) + 100 + innovation
	}

	model := New(1, 0, 0)
	if err := model.Fit(timeseries.New(values)); err != nil {
		t.Fatalf("Failed to fit AR(1) model: %v", err)
	}

	if len(model.ARCoeffs) != 1 {
		t.Fatalf("Expected 1 AR coefficient, got %d", len(model.ARCoeffs))
	}
	if math.Abs(model.ARCoeffs[0]) >= 1 {
		t.Errorf("Yule-Walker AR(1) estimate should be stationary, got %f", model.ARCoeffs[0])
	}
	t.Logf("True AR coeff: %f, Estimated: %f", phi, model.ARCoeffs[0])

	if len(model.Residuals()) != n {
		t.Errorf("Expected %d residuals, got %d", n, len(model.Residuals()))
	}
}

func TestARIMAFitMA1(t *testing.T) {
	// Generate MA(1) data (approximately)
	n := 200
	innovations := make([]float64, n)
	for i := 0; i < n; i++ {
		innovations[i] = float64(i%7-3) / 3
	}

	theta := 0.5
	values := make([]float64, n)
	values[0] = innovations[0] + 100
	for i := 1; i < n; i++ {
		values[i] = innovations[i] + theta*innovations[i-1] + 100
	}

	model := New(0, 0, 1)
	if err := model.Fit(timeseries.New(values)); err != nil {
		t.Fatalf("Failed to fit MA(1) model: %v", err)
	}

	if model.Order.Q != 1 || len(model.MACoeffs) != 1 {
		t.Fatalf("Expected MA(1) to survive, got %v", model.Order)
	}
	if math.Abs(model.MACoeffs[0]) > maBound {
		t.Errorf("MA coefficient %f outside the invertible bound", model.MACoeffs[0])
	}
	t.Logf("True MA coeff: %f, Estimated: %f", theta, model.MACoeffs[0])
}

func TestARIMALinearDrift(t *testing.T) {
	model := New(1, 1, 1)
	model.AutoDifferencing = true

	if err := model.Fit(timeseries.New([]float64{10, 20, 30})); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	if want := (Order{P: 0, D: 1, Q: 0}); model.Order != want {
		t.Errorf("Expected order %v, got %v", want, model.Order)
	}

	forecasts, err := model.Predict(2)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	for i, want := range []float64{40, 50} {
		if math.Abs(forecasts[i]-want) > 1e-9 {
			t.Errorf("Forecast %d: expected %f, got %f", i, want, forecasts[i])
		}
	}
}

func TestARIMAConstantSeries(t *testing.T) {
	model := New(1, 1, 1)
	model.AutoDifferencing = true

	if err := model.Fit(timeseries.New([]float64{5, 5, 5, 5})); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	if model.Order.P != 0 || model.Order.Q != 0 {
		t.Errorf("Expected p=q=0 for a flat series, got %v", model.Order)
	}

	forecasts, err := model.Predict(3)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	for i, f := range forecasts {
		if math.Abs(f-5) > 1e-12 {
			t.Errorf("Forecast %d: expected 5, got %f", i, f)
		}
	}
	for i, r := range model.Residuals() {
		if r != 0 {
			t.Errorf("Residual %d: expected 0, got %f", i, r)
		}
	}
}

func TestARIMATwoPoints(t *testing.T) {
	model := New(1, 1, 1)
	if err := model.Fit(timeseries.New([]float64{3, 7})); err != nil {
		t.Fatalf("Two points should reduce to a drift model: %v", err)
	}

	forecasts, err := model.Predict(2)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if forecasts[0] != 11 || forecasts[1] != 15 {
		t.Errorf("Expected [11 15], got %v", forecasts)
	}
}

func TestARIMASecondDifference(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = float64(i * i)
	}

	model := New(0, 2, 0)
	if err := model.Fit(timeseries.New(values)); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}

	forecasts, err := model.Predict(2)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	if math.Abs(forecasts[0]-100) > 1e-9 || math.Abs(forecasts[1]-121) > 1e-9 {
		t.Errorf("Expected [100 121], got %v", forecasts)
	}
}

func TestARIMASeasonalDifferencing(t *testing.T) {
	pattern := []float64{0, 5, -3, 2}
	n := 24
	values := make([]float64, n)
	for i := range values {
		values[i] = pattern[i%4] + float64(i)
	}

	model := New(0, 0, 0)
	model.SeasonalPeriod = 4
	if err := model.Fit(timeseries.New(values)); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	if !model.SeasonalDiff {
		t.Fatal("Expected the seasonal difference to be applied")
	}

	forecasts, err := model.Predict(6)
	if err != nil {
		t.Fatalf("Failed to predict: %v", err)
	}
	for h, f := range forecasts {
		want := pattern[(n+h)%4] + float64(n+h)
		if math.Abs(f-want) > 1e-9 {
			t.Errorf("Forecast %d: expected %f, got %f", h, want, f)
		}
	}
}

func TestARIMAFittedValues(t *testing.T) {
	n := 100
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = float64(i) + float64(i%5-2)/2
	}

	model := New(1, 1, 1)
	if err := model.Fit(timeseries.New(values)); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}

	fitted := model.FittedValues()
	residuals := model.Residuals()
	if len(fitted) != n || len(residuals) != n {
		t.Fatalf("Expected %d fitted values and residuals, got %d and %d", n, len(fitted), len(residuals))
	}
	if residuals[0] != 0 {
		t.Errorf("Observation consumed by differencing should have zero residual, got %f", residuals[0])
	}
	for i := range values {
		if math.Abs(fitted[i]+residuals[i]-values[i]) > 1e-9 {
			t.Fatalf("fitted + residual != value at %d", i)
		}
	}
}

func TestARIMAInsufficientData(t *testing.T) {
	model := New(5, 2, 5)

	err := model.Fit(timeseries.New([]float64{1}))
	if !errors.Is(err, ErrNotViable) {
		t.Errorf("Expected ErrNotViable, got %v", err)
	}
}

func TestARIMAPredictErrors(t *testing.T) {
	model := New(1, 0, 0)
	if _, err := model.Predict(3); err == nil {
		t.Error("Expected error predicting before fit")
	}
	if model.Residuals() != nil || model.FittedValues() != nil {
		t.Error("Unfitted model should return nil residuals and fitted values")
	}

	if err := model.Fit(timeseries.New([]float64{1, 3, 2, 4, 3, 5, 4, 6})); err != nil {
		t.Fatalf("Failed to fit: %v", err)
	}
	if _, err := model.Predict(0); err == nil {
		t.Error("Expected error for zero steps")
	}
}

func TestYuleWalker(t *testing.T) {
	// ACF of an AR(1) process with phi=0.6
	acf := []float64{1.0, 0.6, 0.36, 0.216, 0.13}

	coeffs, err := yuleWalker(acf, 2)
	if err != nil {
		t.Fatalf("yuleWalker failed: %v", err)
	}
	if math.Abs(coeffs[0]-0.6) > 1e-9 || math.Abs(coeffs[1]) > 1e-9 {
		t.Errorf("Expected [0.6 0], got %v", coeffs)
	}

	if _, err := yuleWalker([]float64{1, 1, 1}, 2); err == nil {
		t.Error("Expected singular system error")
	}
	if _, err := yuleWalker([]float64{1, 0.5}, 2); err == nil {
		t.Error("Expected error for too few autocorrelations")
	}
}

func TestARIMAWhiteNoise(t *testing.T) {
	n := 200
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = float64(i%7-3) / 3
	}

	series := timeseries.New(values)
	model := New(0, 0, 0) // Just constant model

	if err := model.Fit(series); err != nil {
		t.Fatalf("Failed to fit white noise: %v", err)
	}

	if math.Abs(model.Intercept-series.Mean()) > 1e-12 {
		t.Errorf("Intercept should equal the mean: got %f, expected %f", model.Intercept, series.Mean())
	}
}

func TestARIMAMultipleOrders(t *testing.T) {
	tests := []struct {
		name    string
		p, d, q int
	}{
		{"AR1", 1, 0, 0},
		{"AR2", 2, 0, 0},
		{"MA1", 0, 0, 1},
		{"MA2", 0, 0, 2},
		{"ARMA11", 1, 0, 1},
		{"ARIMA110", 1, 1, 0},
		{"ARIMA011", 0, 1, 1},
		{"ARIMA111", 1, 1, 1},
		{"ARIMA211", 2, 1, 1},
		{"ARIMA212", 2, 1, 2},
	}

	n := 150
	values := make([]float64, n)
	values[0] = 100
	for i := 1; i < n; i++ {
		values[i] = 0.6*(values[i-1]-100) + 100 + float64(i%7-3)/3
	}

	series := timeseries.New(values)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := New(tt.p, tt.d, tt.q)
			if err := model.Fit(series); err != nil {
				t.Fatalf("Model %s failed to fit: %v", tt.name, err)
			}

			forecasts, err := model.Predict(3)
			if err != nil {
				t.Fatalf("Prediction failed: %v", err)
			}
			if len(forecasts) != 3 {
				t.Errorf("Expected 3 forecasts, got %d", len(forecasts))
			}

			t.Logf("%s fitted as %v, forecasts: %v", tt.name, model.Order, forecasts)
		})
	}
}

func ar1Series(n int) *timeseries.Series {
	values := make([]float64, n)
	values[0] = 100
	for i := 1; i < n; i++ {
		values[i] = 0.6*(values[i-1]-100) + 100 + float64(i%7-3)/3
	}
	return timeseries.New(values)
}

// swapEstimators replaces the AR and MA estimators for one test.
func swapEstimators(t *testing.T, ar func([]float64, int) ([]float64, error), ma func([]float64, int, int, int) ([]float64, []float64, error)) {
	t.Helper()
	origAR, origMA := estimateAR, estimateMA
	t.Cleanup(func() { estimateAR, estimateMA = origAR, origMA })
	if ar != nil {
		estimateAR = ar
	}
	if ma != nil {
		estimateMA = ma
	}
}

func TestFitLowersAROrderOnSingularSystem(t *testing.T) {
	swapEstimators(t, func(acf []float64, order int) ([]float64, error) {
		if order > 1 {
			return nil, errSingular
		}
		return yuleWalker(acf, order)
	}, nil)

	model := New(2, 0, 0)
	if err := model.Fit(ar1Series(150)); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if model.Requested.P != 2 {
		t.Errorf("Requested order changed: %s", model.Requested)
	}
	if model.Order.P != 1 || len(model.ARCoeffs) != 1 {
		t.Errorf("Expected effective p=1, got %s with %v", model.Order, model.ARCoeffs)
	}
}

func TestFitLowersMAOrderWhenRefinementFails(t *testing.T) {
	swapEstimators(t, nil, func(e []float64, start, q, iterations int) ([]float64, []float64, error) {
		if q > 1 {
			return nil, nil, errSingular
		}
		return refineMA(e, start, q, iterations)
	})

	model := New(1, 0, 2)
	if err := model.Fit(ar1Series(150)); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if model.Order.P != 1 || model.Order.Q != 1 || len(model.MACoeffs) != 1 {
		t.Errorf("Expected ARIMA(1,0,1), got %s", model.Order)
	}
}

func TestFitFallsBackToDriftModel(t *testing.T) {
	swapEstimators(t,
		func([]float64, int) ([]float64, error) { return nil, errSingular },
		func([]float64, int, int, int) ([]float64, []float64, error) { return nil, nil, errSingular },
	)

	model := New(2, 1, 2)
	if err := model.Fit(ar1Series(60)); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if model.Order.P != 0 || model.Order.Q != 0 || model.Order.D != 1 {
		t.Errorf("Expected ARIMA(0,1,0), got %s", model.Order)
	}
	if _, err := model.Predict(3); err != nil {
		t.Errorf("Predict failed: %v", err)
	}
}

func TestFitLowersAROrderOnShortSeries(t *testing.T) {
	model := New(3, 0, 0)
	if err := model.Fit(timeseries.New([]float64{1, 3, 2, 5, 4, 6})); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if model.Order.P != 2 {
		t.Errorf("Expected p reduced to 2 for 6 observations, got %s", model.Order)
	}
}

func TestWarmup(t *testing.T) {
	model := New(1, 1, 0)
	if err := model.Fit(ar1Series(40)); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if model.Warmup() != 1 {
		t.Errorf("Expected one observation consumed by differencing, got %d", model.Warmup())
	}
	if r := model.Residuals(); r[0] != 0 {
		t.Errorf("Expected zero residual at the warm-up position, got %v", r[0])
	}
}
