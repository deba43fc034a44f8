package timeseries

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// MinPoints is the smallest number of valid observations a prepared series may have.
const MinPoints = 2

// RawPoint is an uncoerced (date, value) pair as handed over by a collaborator.
// Date may be a time.Time, *time.Time, a date string or Unix seconds.
// Value may be any numeric type or a numeric string.
type RawPoint struct {
	Date  any
	Value any
}

// InsufficientDataError is returned when fewer than MinPoints valid
// observations survive preparation.
type InsufficientDataError struct {
	Valid    int
	Required int
}

// Error implements error.
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d valid points, need at least %d", e.Valid, e.Required)
}

// dateLayouts are tried before falling back to cast's own layout list.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"2006-01",
}

var missingValues = map[string]bool{"": true, "NA": true, "N/A": true, "NaN": true, "nan": true, "null": true}

// Prepare coerces, orders and deduplicates raw pairs into a clean series.
// Pairs whose date or value cannot be coerced are dropped. When two pairs share
// a timestamp the later one in input order wins.
func Prepare(raw []RawPoint) (*Series, error) {
	points := make([]Point, 0, len(raw))
	for _, r := range raw {
		ts, ok := coerceTime(r.Date)
		if !ok {
			continue
		}
		v, ok := coerceValue(r.Value)
		if !ok {
			continue
		}
		points = append(points, Point{Timestamp: ts, Value: v})
	}
	return fromPoints(points)
}

// PreparePoints validates already-typed points the same way Prepare does.
func PreparePoints(points []Point) (*Series, error) {
	valid := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Timestamp.IsZero() || !isFinite(p.Value) {
			continue
		}
		valid = append(valid, p)
	}
	return fromPoints(valid)
}

func fromPoints(points []Point) (*Series, error) {
	// Stable so equal timestamps keep input order; the last of each run survives.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	deduped := points[:0]
	for _, p := range points {
		if n := len(deduped); n > 0 && deduped[n-1].Timestamp.Equal(p.Timestamp) {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}

	if len(deduped) < MinPoints {
		return nil, &InsufficientDataError{Valid: len(deduped), Required: MinPoints}
	}

	s := &Series{
		Timestamps: make([]time.Time, len(deduped)),
		Values:     make([]float64, len(deduped)),
	}
	for i, p := range deduped {
		s.Timestamps[i] = p.Timestamp
		s.Values[i] = p.Value
	}
	return s, nil
}

func coerceTime(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil, bool:
		return time.Time{}, false
	case time.Time:
		return d, !d.IsZero()
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, false
		}
		return *d, true
	case string:
		s := strings.TrimSpace(strings.Trim(d, "\""))
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		ts, err := cast.ToTimeE(s)
		return ts, err == nil && !ts.IsZero()
	}
	ts, err := cast.ToTimeE(v)
	return ts, err == nil && !ts.IsZero()
}

func coerceValue(v any) (float64, bool) {
	switch x := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		s := strings.TrimSpace(strings.Trim(x, "\""))
		if missingValues[s] {
			return 0, false
		}
		v = strings.ReplaceAll(s, ",", "")
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
