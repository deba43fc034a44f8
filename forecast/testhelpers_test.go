package forecast

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goforecast/timeseries"
)

var day0 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, mutate ...func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	engine, err := New(cfg, WithLogger(logger))
	require.NoError(t, err)
	return engine
}

func daily(values ...float64) []timeseries.RawPoint {
	raw := make([]timeseries.RawPoint, len(values))
	for i, v := range values {
		raw[i] = timeseries.RawPoint{Date: day0.AddDate(0, 0, i), Value: v}
	}
	return raw
}

func monthly(values ...float64) []timeseries.RawPoint {
	raw := make([]timeseries.RawPoint, len(values))
	for i, v := range values {
		raw[i] = timeseries.RawPoint{Date: day0.AddDate(0, i, 0).Format("2006-01-02"), Value: v}
	}
	return raw
}

func weeklySine(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 100 + 10*math.Sin(2*math.Pi*float64(i)/7)
	}
	return values
}

func noisyTrend(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 50 + 0.8*float64(i) + float64(i%5-2)
	}
	return values
}
