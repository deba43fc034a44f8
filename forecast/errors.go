package forecast

import (
	"errors"
	"fmt"

	"github.com/sartorproj/goforecast/timeseries"
)

// InsufficientDataError is returned when fewer than two valid points survive
// preparation.
type InsufficientDataError = timeseries.InsufficientDataError

// InvalidOptionsError reports a rejected ForecastOptions field.
type InvalidOptionsError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("invalid options: %s: %s", e.Field, e.Reason)
}

// NoViableModelError is returned when every candidate for the requested
// method failed to fit.
type NoViableModelError struct {
	Method Method
	Causes []error
}

// Error implements error.
func (e *NoViableModelError) Error() string {
	if len(e.Causes) == 0 {
		return fmt.Sprintf("no viable model for method %s", e.Method)
	}
	return fmt.Sprintf("no viable model for method %s: %v", e.Method, errors.Join(e.Causes...))
}

// Unwrap exposes the per-candidate causes to errors.Is and errors.As.
func (e *NoViableModelError) Unwrap() []error {
	return e.Causes
}
