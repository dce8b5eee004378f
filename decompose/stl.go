package decompose

import "math"

// STLResult holds an additive decomposition of a series into trend,
// per-period seasonal components, and remainder.
type STLResult struct {
	Trend     []float64
	Seasonal  map[int][]float64 // period -> seasonal component
	Remainder []float64
}

// STLOptions configures the iterative LOESS decomposition.
type STLOptions struct {
	Periods            []int
	TrendWindow        int // LOESS window for the trend smoother; defaults to 2x largest period
	RobustIterations   int // re-weighting passes by remainder magnitude
}

// DefaultSTLOptions fills sensible defaults derived from the dominant
// seasonal period.
func DefaultSTLOptions(periods []int) STLOptions {
	maxPeriod := 0
	for _, p := range periods {
		if p > maxPeriod {
			maxPeriod = p
		}
	}
	window := maxPeriod * 2
	if window < 3 {
		window = 3
	}
	return STLOptions{Periods: periods, TrendWindow: window, RobustIterations: 1}
}

// Decompose performs an STL-style additive decomposition: a trend LOESS
// pass, followed by one seasonal LOESS-smoothed cycle-subseries pass per
// period (largest period first so shorter periods refine the remainder left
// behind), followed by optional robustness re-weighting by remainder
// magnitude. Deterministic given its parameters (no randomness).
func Decompose(y []float64, opt STLOptions) STLResult {
	n := len(y)
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}

	var trend []float64
	seasonal := make(map[int][]float64, len(opt.Periods))

	periods := append([]int(nil), opt.Periods...)
	sortDesc(periods)

	iterations := opt.RobustIterations
	if iterations < 1 {
		iterations = 1
	}

	deseasonalized := make([]float64, n)
	copy(deseasonalized, y)

	for iter := 0; iter < iterations; iter++ {
		working := make([]float64, n)
		copy(working, y)
		for _, p := range periods {
			if s, ok := seasonal[p]; ok {
				for i := range working {
					working[i] -= s[i]
				}
			}
		}

		trend = loess(working, opt.TrendWindow, weights)

		detrended := make([]float64, n)
		for i := range detrended {
			detrended[i] = y[i] - trend[i]
		}

		for _, p := range periods {
			remainderForSeason := make([]float64, n)
			copy(remainderForSeason, detrended)
			for _, other := range periods {
				if other == p {
					continue
				}
				if s, ok := seasonal[other]; ok {
					for i := range remainderForSeason {
						remainderForSeason[i] -= s[i]
					}
				}
			}
			seasonal[p] = smoothSeasonalCycle(remainderForSeason, p, weights)
		}

		remainder := make([]float64, n)
		copy(remainder, y)
		for i := range remainder {
			remainder[i] -= trend[i]
			for _, p := range periods {
				remainder[i] -= seasonal[p][i]
			}
		}

		if iter < iterations-1 {
			weights = robustWeights(remainder)
		} else {
			deseasonalized = remainder
		}
	}

	return STLResult{Trend: trend, Seasonal: seasonal, Remainder: deseasonalized}
}

// smoothSeasonalCycle averages each phase of the period (cycle-subseries
// smoothing, simplified to a weighted mean per phase rather than a full
// LOESS per subseries — sufficient for the seasonal components MFLES and
// the ETS/ARIMA diagnostics consume) and centers the result to have zero
// mean so it does not absorb level.
func smoothSeasonalCycle(x []float64, period int, weights []float64) []float64 {
	n := len(x)
	if period <= 0 {
		return make([]float64, n)
	}
	sums := make([]float64, period)
	wsums := make([]float64, period)
	for i, v := range x {
		idx := i % period
		w := weights[i]
		sums[idx] += v * w
		wsums[idx] += w
	}
	pattern := make([]float64, period)
	for i := range pattern {
		if wsums[i] > 0 {
			pattern[i] = sums[i] / wsums[i]
		}
	}
	mean := 0.0
	for _, v := range pattern {
		mean += v
	}
	mean /= float64(period)
	for i := range pattern {
		pattern[i] -= mean
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = pattern[i%period]
	}
	return out
}

// loess is a simplified locally-weighted linear smoother: within a sliding
// window of the given width, fit a weighted linear regression (tricube
// kernel weights on top of the caller-supplied robustness weights) and
// evaluate at the window center point.
func loess(y []float64, window int, robustWeights []float64) []float64 {
	n := len(y)
	out := make([]float64, n)
	if window < 3 {
		window = 3
	}
	half := window / 2

	for i := 0; i < n; i++ {
		lo := i - half
		hi := i + half
		if lo < 0 {
			lo = 0
		}
		if hi >= n {
			hi = n - 1
		}

		var sw, swx, swy, swxx, swxy float64
		for j := lo; j <= hi; j++ {
			dist := math.Abs(float64(j-i)) / (float64(half) + 1)
			tricube := math.Pow(1-math.Min(dist, 1), 3)
			if tricube < 0 {
				tricube = 0
			}
			w := tricube * robustWeights[j]
			x := float64(j - i)
			sw += w
			swx += w * x
			swy += w * y[j]
			swxx += w * x * x
			swxy += w * x * y[j]
		}

		denom := sw*swxx - swx*swx
		if sw <= 0 || math.Abs(denom) < 1e-12 {
			out[i] = weightedMeanFallback(y, lo, hi, robustWeights)
			continue
		}
		b := (sw*swxy - swx*swy) / denom
		a := (swy - b*swx) / sw
		out[i] = a // evaluated at x=0, i.e. the window center
	}
	return out
}

func weightedMeanFallback(y []float64, lo, hi int, w []float64) float64 {
	var sw, swy float64
	for j := lo; j <= hi; j++ {
		sw += w[j]
		swy += w[j] * y[j]
	}
	if sw == 0 {
		return 0
	}
	return swy / sw
}

// robustWeights re-weights observations by their remainder magnitude using
// Tukey's bisquare function scaled by 6*median(|remainder|), matching STL's
// classical robustness step.
func robustWeights(remainder []float64) []float64 {
	n := len(remainder)
	abs := make([]float64, n)
	for i, r := range remainder {
		abs[i] = math.Abs(r)
	}
	scale := 6 * medianOf(abs)
	w := make([]float64, n)
	for i := range w {
		if scale <= 0 {
			w[i] = 1
			continue
		}
		u := abs[i] / scale
		if u >= 1 {
			w[i] = 0
			continue
		}
		w[i] = (1 - u*u) * (1 - u*u)
	}
	return w
}

func medianOf(x []float64) float64 {
	cp := append([]float64(nil), x...)
	// simple insertion sort rather than a selection algorithm, since callers only hit this
	// on remainder-sized slices once per robustness iteration.
	for i := 1; i < len(cp); i++ {
		v := cp[i]
		j := i - 1
		for j >= 0 && cp[j] > v {
			cp[j+1] = cp[j]
			j--
		}
		cp[j+1] = v
	}
	if len(cp) == 0 {
		return 0
	}
	mid := len(cp) / 2
	if len(cp)%2 == 0 {
		return (cp[mid-1] + cp[mid]) / 2
	}
	return cp[mid]
}

func sortDesc(x []int) {
	for i := 1; i < len(x); i++ {
		v := x[i]
		j := i - 1
		for j >= 0 && x[j] < v {
			x[j+1] = x[j]
			j--
		}
		x[j+1] = v
	}
}
