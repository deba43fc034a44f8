package forecast

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goforecast/expsmooth"
	"github.com/sartorproj/goforecast/stats"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"", MethodAuto},
		{"auto", MethodAuto},
		{" Linear ", MethodLinear},
		{"exp_smoothing", MethodExpSmoothing},
		{"ARIMA", MethodARIMA},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseMethod("holt")
	var invalid *InvalidOptionsError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "method", invalid.Field)
}

func TestParseSeasonality(t *testing.T) {
	for in, want := range map[string]Seasonality{
		"":     SeasonalityAuto,
		"auto": SeasonalityAuto,
		"yes":  SeasonalityOn,
		"on":   SeasonalityOn,
		"no":   SeasonalityOff,
		"OFF":  SeasonalityOff,
	} {
		got, err := ParseSeasonality(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSeasonality("maybe")
	assert.Error(t, err)

	assert.Equal(t, stats.HintNo, SeasonalityOff.Hint())
	assert.Equal(t, stats.HintYes, SeasonalityOn.Hint())
	assert.Equal(t, stats.HintUnset, SeasonalityAuto.Hint())
	assert.Equal(t, "no", SeasonalityOff.String())
}

func TestDefaultOptionsAreValid(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())
	assert.Equal(t, MethodAuto, opts.Method)
	assert.True(t, opts.ConfidenceInterval)
	assert.Equal(t, 0.95, opts.ConfidenceLevel)
	assert.Equal(t, SeasonalityAuto, opts.Seasonality)
}

func TestEmptyMethodMeansAuto(t *testing.T) {
	parsed, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, MethodAuto, parsed)

	opts := Options{Periods: 3, ConfidenceLevel: 0.9}
	assert.NoError(t, opts.Validate())

	engine := newTestEngine(t)
	_, diag, err := engine.Run(context.Background(), daily(noisyTrend(12)...), opts)
	require.NoError(t, err)
	assert.Equal(t, MethodAuto, diag.Method)
	assert.Contains(t, diag.Stages, StageScoring)
	assert.Greater(t, len(diag.Candidates), 1)
}

func TestResolvedMethodTags(t *testing.T) {
	tests := []struct {
		method ResolvedMethod
		tag    string
	}{
		{ResolvedLinear, "linear"},
		{ResolvedSimple, "exp_smoothing_simple"},
		{ResolvedHolt, "exp_smoothing_holt"},
		{ResolvedHoltWinters, "exp_smoothing_holt_winters"},
		{ResolvedARIMA, "arima"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tag, tt.method.String())
		parsed, err := ParseResolvedMethod(tt.tag)
		require.NoError(t, err)
		assert.Equal(t, tt.method, parsed)
	}

	_, err := ParseResolvedMethod("exp_smoothing")
	assert.Error(t, err, "prefixes are not tags")
	assert.Equal(t, expsmooth.HoltWinters, ResolvedHoltWinters.Variant)
}

func TestNoViableModelErrorUnwraps(t *testing.T) {
	cause := errors.New("singular")
	err := error(&NoViableModelError{Method: MethodARIMA, Causes: []error{cause}})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "arima")
}
