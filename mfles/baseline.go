package mfles

import "github.com/flowforge/tsforecast/numerics"

// baseline computes the initial cumulative fit: either the global median
// replicated across all n points, or a trailing moving-window median with
// window w = 2*maxSeasonalPeriod (falling back to the global median for
// the first w-1 points, where no full window exists yet).
func baseline(y []float64, moving bool, window int) []float64 {
	n := len(y)
	out := make([]float64, n)
	if !moving || window < 2 {
		m := numerics.Median(y)
		for i := range out {
			out[i] = m
		}
		return out
	}

	globalMedian := numerics.Median(y)
	for i := 0; i < n; i++ {
		lo := i - window + 1
		if lo < 0 {
			out[i] = globalMedian
			continue
		}
		out[i] = numerics.Median(y[lo : i+1])
	}
	return out
}

// baselineExtrapolate extends the baseline forward by h steps: the moving
// median case holds the last window's median constant, matching the
// spec's treatment of the baseline as a slowly varying level rather than a
// forecastable trend in its own right.
func baselineExtrapolate(y []float64, moving bool, window int, h int) []float64 {
	out := make([]float64, h)
	var last float64
	if !moving || window < 2 {
		last = numerics.Median(y)
	} else {
		lo := len(y) - window
		if lo < 0 {
			lo = 0
		}
		last = numerics.Median(y[lo:])
	}
	for i := range out {
		out[i] = last
	}
	return out
}
