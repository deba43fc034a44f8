// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type and the preparation step that turns
// loosely typed (date, value) pairs into a clean, strictly ordered series.
//
// # Preparing Raw Data
//
// Collaborators hand over pairs whose dates and values may be strings,
// numbers or time.Time values:
//
//	raw := []timeseries.RawPoint{
//	    {Date: "2024-01-01", Value: "120"},
//	    {Date: "2024-01-02", Value: 131.5},
//	    {Date: "garbage", Value: 99}, // dropped
//	}
//	series, err := timeseries.Prepare(raw)
//
// Prepare sorts by timestamp, keeps the later value for duplicate timestamps
// and fails with *InsufficientDataError when fewer than two points remain.
//
// # Spacing
//
// InferStep finds the dominant spacing of a series so forecasts can be placed
// on the same grid:
//
//	step := timeseries.InferStep(series.Timestamps)
//	next := step.Next(series.Timestamps[series.Len()-1], 1)
//
// Monthly data sampled on the same day of the month steps in calendar months.
//
// # Loading from CSV
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.DateColumn = "order_date"
//	opts.ValueColumn = "units"
//	raw, err := timeseries.LoadCSV("sales.csv", opts)
//
// # Transformations
//
//	diff := series.Diff()            // First difference
//	diff2 := series.DiffN(2)         // Second difference
//	sdiff := series.SeasonalDiff(12) // Seasonal difference
//	subset := series.Slice(10, 50)
package timeseries
