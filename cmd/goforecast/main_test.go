package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goforecast/forecast"
	"github.com/sartorproj/goforecast/timeseries"
)

const salesCSV = `date,sales
2024-01-01,10
2024-01-02,20
2024-01-03,30
2024-01-04,40
`

func TestDetect(t *testing.T) {
	raw, err := timeseries.ReadCSV(strings.NewReader(salesCSV), nil)
	require.NoError(t, err)

	report, err := detect(raw, forecast.DefaultConfig(), forecast.SeasonalityAuto)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Points)
	assert.Equal(t, "24h0m0s", report.Step)
	assert.False(t, report.Seasonal)
	assert.Equal(t, 1, report.Differencing)
}

func TestRunCommandWritesResult(t *testing.T) {
	dir := t.TempDir()
	csvFile = filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte(salesCSV), 0o600))
	t.Cleanup(func() { csvFile = "" })

	cmd := runCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--method", "linear", "--periods", "2", "--no-interval"})
	require.NoError(t, cmd.Execute())

	var result forecast.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, forecast.ResolvedLinear, result.Method)
	require.Len(t, result.ForecastData, 2)
	assert.InDelta(t, 50, result.ForecastData[0].Value, 1e-9)
	assert.Nil(t, result.ConfidenceInterval)
}

func TestRunCommandRejectsBadMethod(t *testing.T) {
	dir := t.TempDir()
	csvFile = filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte(salesCSV), 0o600))
	t.Cleanup(func() { csvFile = "" })

	cmd := runCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--method", "prophet"})
	assert.Error(t, cmd.Execute())
}

func TestRunCommandWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	csvFile = filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(csvFile, []byte(salesCSV), 0o600))
	t.Cleanup(func() { csvFile = "" })
	out := filepath.Join(dir, "result.json")

	cmd := runCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--method", "linear", "--periods", "1", "--output", out, "--diagnostics"})
	require.NoError(t, cmd.Execute())
	assert.Zero(t, stdout.Len())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var payload struct {
		Result      forecast.Result      `json:"result"`
		Diagnostics forecast.Diagnostics `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, forecast.ResolvedLinear, payload.Result.Method)
	assert.Equal(t, "linear", payload.Diagnostics.Selected)

	cmd = runCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--output", filepath.Join(dir, "missing", "result.json")})
	assert.Error(t, cmd.Execute())
}
