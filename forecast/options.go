package forecast

import (
	"fmt"
	"math"
	"strings"

	"github.com/sartorproj/goforecast/stats"
)

// Method is a requested forecasting method.
type Method string

const (
	MethodAuto         Method = "auto"
	MethodLinear       Method = "linear"
	MethodExpSmoothing Method = "exp_smoothing"
	MethodARIMA        Method = "arima"
)

// ParseMethod maps a method tag to a Method. An empty tag means auto.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MethodAuto, nil
	case MethodAuto, MethodLinear, MethodExpSmoothing, MethodARIMA:
		return m, nil
	}
	return "", &InvalidOptionsError{Field: "method", Reason: fmt.Sprintf("unknown method %q", s)}
}

// Seasonality is the caller's seasonality override.
type Seasonality int

const (
	SeasonalityAuto Seasonality = iota
	SeasonalityOn
	SeasonalityOff
)

// String returns auto, yes or no.
func (s Seasonality) String() string {
	switch s {
	case SeasonalityOn:
		return "yes"
	case SeasonalityOff:
		return "no"
	}
	return "auto"
}

// ParseSeasonality accepts auto, yes/on/true and no/off/false.
func ParseSeasonality(s string) (Seasonality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return SeasonalityAuto, nil
	case "yes", "on", "true":
		return SeasonalityOn, nil
	case "no", "off", "false":
		return SeasonalityOff, nil
	}
	return SeasonalityAuto, &InvalidOptionsError{Field: "seasonality", Reason: fmt.Sprintf("unknown value %q", s)}
}

// Hint maps the override onto the detector's hint.
func (s Seasonality) Hint() stats.Hint {
	switch s {
	case SeasonalityOn:
		return stats.HintYes
	case SeasonalityOff:
		return stats.HintNo
	}
	return stats.HintUnset
}

// Options controls a single forecast call.
type Options struct {
	Method             Method
	Periods            int
	ConfidenceInterval bool
	ConfidenceLevel    float64
	Seasonality        Seasonality
}

// DefaultOptions returns auto method, 12 periods and a 95% interval.
func DefaultOptions() Options {
	return Options{
		Method:             MethodAuto,
		Periods:            12,
		ConfidenceInterval: true,
		ConfidenceLevel:    0.95,
		Seasonality:        SeasonalityAuto,
	}
}

// Validate checks the options before any data is touched. An empty Method
// means auto, as with ParseMethod.
func (o Options) Validate() error {
	switch o.Method {
	case "", MethodAuto, MethodLinear, MethodExpSmoothing, MethodARIMA:
	default:
		return &InvalidOptionsError{Field: "method", Reason: fmt.Sprintf("unknown method %q", string(o.Method))}
	}
	if o.Periods <= 0 {
		return &InvalidOptionsError{Field: "periods", Reason: fmt.Sprintf("must be positive, got %d", o.Periods)}
	}
	if math.IsNaN(o.ConfidenceLevel) || o.ConfidenceLevel <= 0 || o.ConfidenceLevel >= 1 {
		return &InvalidOptionsError{Field: "confidenceLevel", Reason: fmt.Sprintf("must be in (0,1), got %v", o.ConfidenceLevel)}
	}
	switch o.Seasonality {
	case SeasonalityAuto, SeasonalityOn, SeasonalityOff:
	default:
		return &InvalidOptionsError{Field: "seasonality", Reason: fmt.Sprintf("unknown override %d", int(o.Seasonality))}
	}
	return nil
}
