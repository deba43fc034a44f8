package forecast

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine metrics, registered with the default Prometheus registry.
var (
	// ForecastsTotal counts forecast calls by resolved method and status
	ForecastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goforecast_forecasts_total",
			Help: "Total number of forecast calls",
		},
		[]string{"method", "status"},
	)

	// ForecastDuration tracks end-to-end forecast latency
	ForecastDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goforecast_forecast_duration_seconds",
			Help:    "Duration of forecast calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// CandidateFitsTotal counts candidate model fits by viability
	CandidateFitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goforecast_candidate_fits_total",
			Help: "Total number of candidate model fits",
		},
		[]string{"method", "viable"},
	)

	// CandidateAccuracy tracks the accuracy score of viable candidates
	CandidateAccuracy = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goforecast_candidate_accuracy",
			Help:    "Accuracy score of viable candidate models",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
		[]string{"method"},
	)
)

// RecordForecast records a finished forecast call. method is the resolved
// tag on success and the requested method on failure.
func RecordForecast(method string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ForecastsTotal.WithLabelValues(method, status).Inc()
	ForecastDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordCandidate records one candidate fit.
func RecordCandidate(method string, viable bool, accuracy float64) {
	CandidateFitsTotal.WithLabelValues(method, strconv.FormatBool(viable)).Inc()
	if viable {
		CandidateAccuracy.WithLabelValues(method).Observe(accuracy)
	}
}
