package forecast

import (
	"encoding/json"
	"fmt"

	"github.com/sartorproj/goforecast/timeseries"
)

// ConfidenceInterval holds per-step bounds aligned with Result.ForecastData.
type ConfidenceInterval struct {
	Upper      []float64 `json:"upper"`
	Lower      []float64 `json:"lower"`
	Confidence float64   `json:"confidence"`
}

// Result is the outcome of one forecast call. ConfidenceInterval is nil when
// intervals were not requested.
type Result struct {
	Method             ResolvedMethod
	Accuracy           float64
	Parameters         Parameters
	OriginalData       []timeseries.Point
	ForecastData       []timeseries.Point
	ConfidenceInterval *ConfidenceInterval
}

type resultJSON struct {
	Method             string              `json:"method"`
	Accuracy           float64             `json:"accuracy"`
	Parameters         json.RawMessage     `json:"parameters"`
	OriginalData       []timeseries.Point  `json:"originalData"`
	ForecastData       []timeseries.Point  `json:"forecastData"`
	ConfidenceInterval *ConfidenceInterval `json:"confidenceInterval,omitempty"`
}

// MarshalJSON encodes timestamps as RFC 3339 (ISO-8601) strings and the
// method as its tag.
func (r Result) MarshalJSON() ([]byte, error) {
	params, err := json.Marshal(r.Parameters)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resultJSON{
		Method:             r.Method.String(),
		Accuracy:           r.Accuracy,
		Parameters:         params,
		OriginalData:       r.OriginalData,
		ForecastData:       r.ForecastData,
		ConfidenceInterval: r.ConfidenceInterval,
	})
}

// UnmarshalJSON restores a Result, decoding the parameters by method family.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	method, err := ParseResolvedMethod(raw.Method)
	if err != nil {
		return err
	}

	var params Parameters
	switch method.Family {
	case MethodLinear:
		var p LinearParameters
		err = json.Unmarshal(raw.Parameters, &p)
		params = p
	case MethodExpSmoothing:
		var p SmoothingParameters
		err = json.Unmarshal(raw.Parameters, &p)
		params = p
	case MethodARIMA:
		var p ARIMAParameters
		err = json.Unmarshal(raw.Parameters, &p)
		params = p
	}
	if err != nil {
		return fmt.Errorf("decode %s parameters: %w", method, err)
	}

	*r = Result{
		Method:             method,
		Accuracy:           raw.Accuracy,
		Parameters:         params,
		OriginalData:       raw.OriginalData,
		ForecastData:       raw.ForecastData,
		ConfidenceInterval: raw.ConfidenceInterval,
	}
	return nil
}
