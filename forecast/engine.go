package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/goforecast/stats"
	"github.com/sartorproj/goforecast/timeseries"
)

// Stage is a step of a forecast run.
type Stage string

// Run stages in the order they are entered. StageScoring only occurs in
// auto mode; StageDone and StageFailed are terminal.
const (
	// StageIdle is the state before any work.
	StageIdle Stage = "idle"
	// StagePreparing validates options and prepares the series.
	StagePreparing Stage = "preparing"
	// StageFitting fits every candidate on the full series.
	StageFitting Stage = "fitting"
	// StageScoring measures candidate accuracy.
	StageScoring Stage = "scoring"
	// StageBuildingIntervals assembles the result and its interval.
	StageBuildingIntervals Stage = "building_intervals"
	// StageDone marks a successful run.
	StageDone Stage = "done"
	// StageFailed marks a run that returned an error.
	StageFailed Stage = "failed"
)

// CandidateReport describes one candidate model of a run.
type CandidateReport struct {
	Method       string        `json:"method"`
	Viable       bool          `json:"viable"`
	Accuracy     float64       `json:"accuracy"`
	AccuracyMode AccuracyMode  `json:"accuracy_mode,omitempty"`
	Excluded     bool          `json:"excluded,omitempty"` // in-sample score withheld from a holdout ranking
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration_ns"`
}

// ResidualTest is the Ljung-Box test of the selected model's residuals.
type ResidualTest struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
	Lags      int     `json:"lags"`

	// Autocorrelated is true when the test rejects white noise at 5%.
	Autocorrelated bool `json:"autocorrelated"`
}

// Diagnostics is the internal record of a run. It is returned alongside
// errors, with the stage trace ending in StageFailed.
type Diagnostics struct {
	RunID                   string            `json:"run_id"`
	Method                  Method            `json:"requested_method"`
	Stages                  []Stage           `json:"stages"`
	Points                  int               `json:"points"`
	Step                    string            `json:"step,omitempty"`
	SeasonalityDetected     bool              `json:"seasonality_detected"`
	SeasonalPeriod          int               `json:"seasonal_period,omitempty"`
	SeasonalAutocorrelation float64           `json:"seasonal_autocorrelation,omitempty"`
	Candidates              []CandidateReport `json:"candidates"`
	Selected                string            `json:"selected,omitempty"`
	ResidualStdDev          float64           `json:"residual_std_dev"`
	LjungBox                *ResidualTest     `json:"ljung_box,omitempty"`
	DurbinWatson            *float64          `json:"durbin_watson,omitempty"`
	Duration                time.Duration     `json:"duration_ns"`
}

func (d *Diagnostics) enter(stage Stage, log *logrus.Entry) {
	d.Stages = append(d.Stages, stage)
	log.WithField("stage", stage).Debug("Stage transition")
}

// Engine runs forecasts. It holds only configuration and a logger, so one
// Engine may serve concurrent calls.
type Engine struct {
	cfg Config
	log *logrus.Entry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger replaces the default stderr logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.log = logger.WithField("component", "forecast")
		}
	}
}

// New creates an Engine from a validated configuration.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	e := &Engine{
		cfg: cfg,
		log: cfg.newLogger().WithField("component", "forecast"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// DefaultOptions returns DefaultOptions with the configured default periods.
func (e *Engine) DefaultOptions() Options {
	opts := DefaultOptions()
	opts.Periods = e.cfg.DefaultPeriods
	return opts
}

// Forecast prepares raw pairs and forecasts them.
func (e *Engine) Forecast(ctx context.Context, raw []timeseries.RawPoint, opts Options) (*Result, error) {
	result, _, err := e.Run(ctx, raw, opts)
	return result, err
}

// ForecastPoints forecasts already-typed points.
func (e *Engine) ForecastPoints(ctx context.Context, points []timeseries.Point, opts Options) (*Result, error) {
	result, _, err := e.run(ctx, func() (*timeseries.Series, error) {
		return timeseries.PreparePoints(points)
	}, opts)
	return result, err
}

// Run is Forecast that also returns the run's diagnostics. ctx is checked
// between stages; a fit in progress is not interrupted.
func (e *Engine) Run(ctx context.Context, raw []timeseries.RawPoint, opts Options) (*Result, *Diagnostics, error) {
	return e.run(ctx, func() (*timeseries.Series, error) {
		return timeseries.Prepare(raw)
	}, opts)
}

func (e *Engine) run(ctx context.Context, prepare func() (*timeseries.Series, error), opts Options) (*Result, *Diagnostics, error) {
	start := time.Now()
	if opts.Method == "" {
		opts.Method = MethodAuto
	}
	diag := &Diagnostics{
		RunID:  uuid.NewString(),
		Method: opts.Method,
		Stages: []Stage{StageIdle},
	}
	log := e.log.WithField("run_id", diag.RunID)

	result, err := e.execute(ctx, prepare, opts, diag, log)
	diag.Duration = time.Since(start)
	if err != nil {
		diag.enter(StageFailed, log)
		RecordForecast(string(opts.Method), diag.Duration, err)
		log.WithError(err).Info("Forecast failed")
		return nil, diag, err
	}

	diag.enter(StageDone, log)
	RecordForecast(result.Method.String(), diag.Duration, nil)
	log.WithFields(logrus.Fields{
		"method":   result.Method.String(),
		"accuracy": result.Accuracy,
		"periods":  len(result.ForecastData),
		"duration": diag.Duration,
	}).Info("Forecast complete")
	return result, diag, nil
}

func (e *Engine) execute(ctx context.Context, prepare func() (*timeseries.Series, error), opts Options, diag *Diagnostics, log *logrus.Entry) (*Result, error) {
	diag.enter(StagePreparing, log)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	series, err := prepare()
	if err != nil {
		return nil, err
	}
	diag.Points = series.Len()

	step := timeseries.InferStep(series.Timestamps)
	season := stats.DetectSeasonality(series, stats.SeasonalityOptions{
		Hint:      opts.Seasonality.Hint(),
		Threshold: e.cfg.Seasonality.Threshold,
		MinLag:    e.cfg.Seasonality.MinLag,
	})
	diag.Step = step.String()
	diag.SeasonalityDetected = season.Detected
	diag.SeasonalPeriod = season.Period
	diag.SeasonalAutocorrelation = season.Autocorrelation

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fitters := e.cfg.candidates(opts.Method, series, season, opts.Seasonality)
	winner, err := e.selectModel(ctx, series, fitters, opts, diag, log)
	if err != nil {
		return nil, err
	}
	diag.Selected = winner.method.String()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	diag.enter(StageBuildingIntervals, log)
	result := &Result{
		Method:       winner.method,
		Accuracy:     winner.accuracy,
		Parameters:   winner.fit.params,
		OriginalData: series.Points(),
		ForecastData: forecastPoints(series, step, winner.fit.forecast),
	}
	if opts.ConfidenceInterval {
		result.ConfidenceInterval = BuildInterval(winner.fit.forecast, winner.fit.observed(), opts.ConfidenceLevel)
	}

	residualDiagnostics(diag, winner.fit)
	return result, nil
}

// selectModel fits and scores the candidates and returns the winner. When
// some candidates are scored on the holdout, those that fell back to their
// in-sample score are reported but not ranked.
func (e *Engine) selectModel(ctx context.Context, series *timeseries.Series, fitters []fitter, opts Options, diag *Diagnostics, log *logrus.Entry) (*scored, error) {
	diag.enter(StageFitting, log)
	fits := make([]*modelFit, len(fitters))
	errs := make([]error, len(fitters))
	durations := make([]time.Duration, len(fitters))
	e.each(len(fitters), func(i int) {
		began := time.Now()
		fits[i], errs[i] = fitters[i].fit(series, opts.Periods)
		durations[i] = time.Since(began)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Method == MethodAuto {
		diag.enter(StageScoring, log)
	}
	candidates := make([]scored, len(fitters))
	e.each(len(fitters), func(i int) {
		if errs[i] != nil {
			return
		}
		began := time.Now()
		accuracy, mode := e.cfg.evaluate(fitters[i], series, fits[i], opts.Periods)
		candidates[i] = scored{method: fitters[i].method(), fit: fits[i], accuracy: accuracy, mode: mode}
		durations[i] += time.Since(began)
	})

	holdout := false
	for i := range candidates {
		if errs[i] == nil && candidates[i].mode == AccuracyHoldout {
			holdout = true
		}
	}

	var ranked []scored
	var causes []error
	for i, f := range fitters {
		report := CandidateReport{Method: f.method().String(), Duration: durations[i]}
		switch {
		case errs[i] != nil:
			report.Error = errs[i].Error()
			causes = append(causes, fmt.Errorf("%s: %w", report.Method, errs[i]))
			log.WithError(errs[i]).WithField("method", report.Method).Debug("Candidate not viable")
		default:
			report.Viable = true
			report.Accuracy = candidates[i].accuracy
			report.AccuracyMode = candidates[i].mode
			report.Excluded = holdout && candidates[i].mode == AccuracyInSampleFallback
			if !report.Excluded {
				ranked = append(ranked, candidates[i])
			}
			log.WithFields(logrus.Fields{
				"method":        report.Method,
				"accuracy":      report.Accuracy,
				"accuracy_mode": report.AccuracyMode,
				"excluded":      report.Excluded,
				"duration":      report.Duration,
			}).Debug("Candidate scored")
		}
		RecordCandidate(report.Method, report.Viable, report.Accuracy)
		diag.Candidates = append(diag.Candidates, report)
	}

	winner := best(ranked)
	if winner == nil {
		return nil, &NoViableModelError{Method: opts.Method, Causes: causes}
	}
	return winner, nil
}

// each runs fn for 0..n-1, concurrently when configured. Every call writes
// only its own index, so the outcome does not depend on scheduling.
func (e *Engine) each(n int, fn func(i int)) {
	if !e.cfg.Parallel || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func forecastPoints(series *timeseries.Series, step timeseries.Step, values []float64) []timeseries.Point {
	last := series.Timestamps[series.Len()-1]
	points := make([]timeseries.Point, len(values))
	for k, v := range values {
		points[k] = timeseries.Point{Timestamp: step.Next(last, k+1), Value: v}
	}
	return points
}

func residualDiagnostics(diag *Diagnostics, fit *modelFit) {
	residuals := fit.observed()
	diag.ResidualStdDev = residualStdDev(residuals)

	lags := min(10, len(residuals)/5)
	if lb := stats.LjungBox(residuals, lags, fit.fitdf); lb != nil {
		diag.LjungBox = &ResidualTest{
			Statistic:      lb.Statistic,
			PValue:         lb.PValue,
			Lags:           lb.Lags,
			Autocorrelated: lb.Significant(0.05),
		}
	}
	if dw, ok := stats.DurbinWatson(residuals); ok {
		diag.DurbinWatson = &dw
	}
}
