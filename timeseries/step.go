package timeseries

import (
	"fmt"
	"time"
)

// Step is the spacing between consecutive observations. A series sampled on
// the same day of each month steps in calendar months; everything else steps
// by a fixed duration.
type Step struct {
	Months   int
	Duration time.Duration
}

// Next returns the timestamp k steps after last.
func (s Step) Next(last time.Time, k int) time.Time {
	if s.Months > 0 {
		return last.AddDate(0, s.Months*k, 0)
	}
	return last.Add(time.Duration(k) * s.Duration)
}

// String describes the step, e.g. "1 month(s)" or "24h0m0s".
func (s Step) String() string {
	if s.Months > 0 {
		return fmt.Sprintf("%d month(s)", s.Months)
	}
	return s.Duration.String()
}

// InferStep returns the dominant spacing of strictly increasing timestamps.
// The most frequent gap wins; equal counts resolve to the shorter gap.
func InferStep(timestamps []time.Time) Step {
	if len(timestamps) < 2 {
		return Step{Duration: 24 * time.Hour}
	}

	if months, ok := monthlyStep(timestamps); ok {
		return Step{Months: months}
	}

	counts := make(map[time.Duration]int)
	for i := 1; i < len(timestamps); i++ {
		counts[timestamps[i].Sub(timestamps[i-1])]++
	}

	var best time.Duration
	bestCount := 0
	for d, c := range counts {
		if c > bestCount || (c == bestCount && d < best) {
			best, bestCount = d, c
		}
	}
	return Step{Duration: best}
}

// monthlyStep reports the month count when every gap is a whole number of
// calendar months landing on the same day and clock time. The most frequent
// month gap is returned.
func monthlyStep(timestamps []time.Time) (int, bool) {
	first := timestamps[0]
	counts := make(map[int]int)
	for i := 1; i < len(timestamps); i++ {
		prev, cur := timestamps[i-1], timestamps[i]
		if cur.Day() != first.Day() || cur.Location() != first.Location() {
			return 0, false
		}
		ph, pm, ps := prev.Clock()
		ch, cm, cs := cur.Clock()
		if ph != ch || pm != cm || ps != cs || prev.Nanosecond() != cur.Nanosecond() {
			return 0, false
		}
		months := (cur.Year()-prev.Year())*12 + int(cur.Month()-prev.Month())
		if months <= 0 {
			return 0, false
		}
		counts[months]++
	}

	best, bestCount := 0, 0
	for m, c := range counts {
		if c > bestCount || (c == bestCount && m < best) {
			best, bestCount = m, c
		}
	}
	return best, true
}
