package expsmooth

import (
	"math"
)

const (
	minConstant = 0.01
	maxConstant = 0.99
)

// optimize grid-searches the smoothing constants for the model's variant.
// The returned params carry the fixed constants for unused slots.
func (m *Model) optimize(y []float64) Params {
	best := m.params
	bestSSE := math.Inf(1)
	try := func(a, b, g float64) {
		if sse := m.run(y, a, b, g).sse; sse < bestSSE {
			bestSSE = sse
			best.Alpha, best.Beta, best.Gamma = a, b, g
		}
	}

	switch m.Variant {
	case Simple:
		for i := 1; i <= 99; i++ {
			try(float64(i)/100, 0, 0)
		}

	case Holt:
		for i := 1; i <= 9; i++ {
			for j := 1; j <= 9; j++ {
				try(float64(i)/10, float64(j)/10, 0)
			}
		}
		a0, b0 := best.Alpha, best.Beta
		for i := -5; i <= 5; i++ {
			for j := -5; j <= 5; j++ {
				try(clamp(a0+0.02*float64(i)), clamp(b0+0.02*float64(j)), 0)
			}
		}

	case HoltWinters:
		for i := 1; i <= 9; i++ {
			for j := 1; j <= 9; j++ {
				for k := 1; k <= 9; k++ {
					try(float64(i)/10, float64(j)/10, float64(k)/10)
				}
			}
		}
		a0, b0, g0 := best.Alpha, best.Beta, best.Gamma
		for i := -2; i <= 2; i++ {
			for j := -2; j <= 2; j++ {
				for k := -2; k <= 2; k++ {
					try(clamp(a0+0.05*float64(i)), clamp(b0+0.05*float64(j)), clamp(g0+0.05*float64(k)))
				}
			}
		}
	}

	return best
}

func clamp(x float64) float64 {
	return math.Max(minConstant, math.Min(maxConstant, x))
}
