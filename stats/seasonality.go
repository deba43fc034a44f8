package stats

import (
	"github.com/sartorproj/goforecast/timeseries"
)

// Hint is a caller override for seasonality detection.
type Hint int

const (
	// HintUnset runs detection normally.
	HintUnset Hint = iota
	// HintYes runs detection and, when no lag clears the threshold, accepts
	// the first positive local maximum of the ACF.
	HintYes
	// HintNo skips detection entirely.
	HintNo
)

// Default detection parameters.
const (
	DefaultSeasonalityThreshold = 0.3
	DefaultMinSeasonalLag       = 2
)

// SeasonalityOptions tunes DetectSeasonality. Zero values take the defaults.
type SeasonalityOptions struct {
	Hint      Hint
	Threshold float64
	MinLag    int
}

// Seasonality is the outcome of seasonality detection.
type Seasonality struct {
	Detected        bool
	Period          int
	Autocorrelation float64 // ACF at Period
}

// DetectSeasonality estimates the dominant period of a series from its
// autocorrelation function. A lag qualifies when its autocorrelation exceeds
// the threshold and is a local maximum; the smallest qualifying lag wins.
// Periods that do not fit at least two full cycles are rejected.
func DetectSeasonality(series *timeseries.Series, opts SeasonalityOptions) Seasonality {
	if opts.Hint == HintNo {
		return Seasonality{}
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultSeasonalityThreshold
	}
	if opts.MinLag < 2 {
		opts.MinLag = DefaultMinSeasonalLag
	}

	n := series.Len()
	maxLag := n / 2
	if maxLag < opts.MinLag {
		return Seasonality{}
	}

	acf := ACF(series, maxLag)
	if acf == nil {
		return Seasonality{}
	}

	period := firstPeak(acf, opts.MinLag, opts.Threshold)
	if period == 0 && opts.Hint == HintYes {
		period = firstPeak(acf, opts.MinLag, 0)
	}
	if period == 0 || n < 2*period {
		return Seasonality{}
	}

	return Seasonality{Detected: true, Period: period, Autocorrelation: acf[period]}
}

// firstPeak returns the smallest lag >= minLag whose autocorrelation exceeds
// threshold and is a local maximum, or 0. The last lag has no right
// neighbour and never counts as a peak.
func firstPeak(acf []float64, minLag int, threshold float64) int {
	last := len(acf) - 1
	for k := max(minLag, 1); k < last; k++ {
		if acf[k] <= threshold || acf[k] <= acf[k-1] || acf[k] < acf[k+1] {
			continue
		}
		return k
	}
	return 0
}
