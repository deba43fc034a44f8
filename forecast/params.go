package forecast

// Parameters are the fitted parameters of the selected model. The concrete
// type is one of LinearParameters, SmoothingParameters or ARIMAParameters.
type Parameters interface {
	Family() Method
}

// LinearParameters describe y = intercept + slope*t over the observation index.
type LinearParameters struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Family implements Parameters.
func (LinearParameters) Family() Method { return MethodLinear }

// SmoothingParameters are the fitted smoothing constants. Beta is set for
// Holt and Holt-Winters, Gamma and SeasonalPeriod for Holt-Winters only.
type SmoothingParameters struct {
	Variant        string   `json:"variant"`
	Alpha          float64  `json:"alpha"`
	Beta           *float64 `json:"beta,omitempty"`
	Gamma          *float64 `json:"gamma,omitempty"`
	SeasonalPeriod int      `json:"seasonalPeriod,omitempty"`
}

// Family implements Parameters.
func (SmoothingParameters) Family() Method { return MethodExpSmoothing }

// ARIMAParameters report the order actually fitted. SeasonalPeriod is set
// when a seasonal difference was applied.
type ARIMAParameters struct {
	P              int       `json:"p"`
	D              int       `json:"d"`
	Q              int       `json:"q"`
	ARCoefficients []float64 `json:"ar_coefficients"`
	MACoefficients []float64 `json:"ma_coefficients"`
	Intercept      float64   `json:"intercept"`
	SeasonalPeriod int       `json:"seasonalPeriod,omitempty"`
}

// Family implements Parameters.
func (ARIMAParameters) Family() Method { return MethodARIMA }
