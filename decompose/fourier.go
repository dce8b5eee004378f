// Package decompose implements the structural decomposition primitives
// shared by the MFLES and state-space model families: an STL-style LOESS
// decomposition, piecewise-linear trend fitting, Fourier seasonal basis
// construction, and the Box-Cox transform. Seasonal terms are plain
// numeric basis matrices rather than a per-timestamp labeled design
// matrix, since this module forecasts by decomposition rather than by
// one large regularized regression.
package decompose

import "math"

// DefaultMaxFourierOrder is the default cap on Fourier order K when the
// caller does not supply one explicitly.
const DefaultMaxFourierOrder = 10

// FourierOrder returns the Fourier order to use for a seasonal period,
// capped at floor(period/2) and at maxOrder (DefaultMaxFourierOrder when
// maxOrder <= 0).
func FourierOrder(period int, maxOrder int) int {
	if maxOrder <= 0 {
		maxOrder = DefaultMaxFourierOrder
	}
	cap := period / 2
	if cap < 1 {
		cap = 1
	}
	if maxOrder > cap {
		return cap
	}
	return maxOrder
}

// FourierBasis builds a design matrix with 2*K columns
// [sin(2*pi*1*t/T), cos(2*pi*1*t/T), ..., sin(2*pi*K*t/T), cos(2*pi*K*t/T)]
// evaluated at t = tStart, tStart+1, ..., tStart+n-1 (sample index, not wall
// clock time — callers seeking calendar-aware periods pass an index
// offset via tStart so in-sample and forecast horizons share one phase).
func FourierBasis(n int, tStart int, period float64, k int) [][]float64 {
	basis := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, 2*k)
		t := float64(tStart + i)
		for j := 1; j <= k; j++ {
			omega := 2 * math.Pi * float64(j) * t / period
			row[2*(j-1)] = math.Sin(omega)
			row[2*(j-1)+1] = math.Cos(omega)
		}
		basis[i] = row
	}
	return basis
}

// OneCyclePattern extracts the repeating one-cycle seasonal pattern from a
// fitted seasonal series of known integer period by averaging all complete
// cycles. Used to extrapolate a seasonal sub-learner's fit forward without
// having to re-evaluate its Fourier coefficients at future timestamps.
func OneCyclePattern(fitted []float64, period int) []float64 {
	if period <= 0 || len(fitted) == 0 {
		return nil
	}
	sums := make([]float64, period)
	counts := make([]int, period)
	for i, v := range fitted {
		idx := i % period
		sums[idx] += v
		counts[idx]++
	}
	pattern := make([]float64, period)
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] = sums[i] / float64(counts[i])
		}
	}
	return pattern
}

// RepeatPattern tiles a one-cycle pattern forward starting at phase offset
// startIdx (the sample index of the first forecast point, mod period) for h
// steps.
func RepeatPattern(pattern []float64, startIdx, h int) []float64 {
	period := len(pattern)
	if period == 0 {
		return make([]float64, h)
	}
	out := make([]float64, h)
	for i := 0; i < h; i++ {
		out[i] = pattern[(startIdx+i)%period]
	}
	return out
}
