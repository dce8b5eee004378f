package numerics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns Quantile(x, 0.5). It fully sorts a copy of x
// (sort.Float64s, O(n log n)); no linear-time selection is used. For an
// even-length x the result is one of the two middle values, not their
// mean.
func Median(x []float64) float64 {
	return Quantile(x, 0.5)
}

// Quantile returns the empirical q-quantile (q in [0,1]) of x via
// gonum/stat's Empirical method: always an observed value of x, with no
// interpolation between ranks.
func Quantile(x []float64, q float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	cp := make([]float64, len(x))
	copy(cp, x)
	sort.Float64s(cp)
	return stat.Quantile(q, stat.Empirical, cp, nil)
}

// Autocorrelation returns the population autocovariance at the given lag
// over the sample variance. Lag 0 always returns 1.
func Autocorrelation(x []float64, lag int) float64 {
	n := len(x)
	if n == 0 || lag < 0 || lag >= n {
		return math.NaN()
	}
	if lag == 0 {
		return 1
	}

	mean := stat.Mean(x, nil)
	var variance float64
	for _, v := range x {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	if variance == 0 {
		return math.NaN()
	}

	var cov float64
	for i := 0; i < n-lag; i++ {
		cov += (x[i] - mean) * (x[i+lag] - mean)
	}
	cov /= float64(n)

	return cov / variance
}

// SeasonalStrength is max(0, 1 - Var(remainder) / Var(remainder+seasonal))
// clamped to [0,1]; used as the WLS weight for a seasonal Fourier block in
// the MFLES boosting rounds.
func SeasonalStrength(remainder, seasonal []float64) float64 {
	n := len(remainder)
	if n == 0 || len(seasonal) != n {
		return 0
	}
	combined := make([]float64, n)
	for i := range combined {
		combined[i] = remainder[i] + seasonal[i]
	}
	varRemainder := variance(remainder)
	varCombined := variance(combined)
	if varCombined <= 0 {
		return 0
	}
	strength := 1 - varRemainder/varCombined
	return clamp01(strength)
}

func variance(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	mean := stat.Mean(x, nil)
	var v float64
	for _, xi := range x {
		d := xi - mean
		v += d * d
	}
	return v / float64(len(x))
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
