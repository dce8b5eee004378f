// Package seriestest generates synthetic time series for use in tests
// across the module: evenly spaced timestamps, linear trends, periodic
// waves, and additive noise, composed directly into series.Series values.
package seriestest

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/flowforge/tsforecast/series"
)

// Times returns n timestamps starting at a fixed epoch spaced by interval.
func Times(n int, interval time.Duration) []time.Time {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	t := make([]time.Time, n)
	for i := range t {
		t[i] = base.Add(interval * time.Duration(i))
	}
	return t
}

// Sine returns amp*sin(2*pi*t/period) sampled at integer indices 0..n-1.
func Sine(n int, period, amp float64) []float64 {
	y := make([]float64, n)
	for i := range y {
		y[i] = amp * math.Sin(2*math.Pi*float64(i)/period)
	}
	return y
}

// Linear returns intercept + slope*i sampled at integer indices 0..n-1.
func Linear(n int, intercept, slope float64) []float64 {
	y := make([]float64, n)
	for i := range y {
		y[i] = intercept + slope*float64(i)
	}
	return y
}

// NoiseSeeded returns n gaussian noise samples using the given deterministic
// source, so generated series are reproducible across test runs.
func NoiseSeeded(n int, scale float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	y := make([]float64, n)
	for i := range y {
		y[i] = rng.NormFloat64() * scale
	}
	return y
}

// Add element-wise sums equal-length slices into a new slice.
func Add(series ...[]float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	out := make([]float64, len(series[0]))
	for _, s := range series {
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}

// PoissonThinned returns a non-negative intermittent-demand series: at each
// step a Bernoulli(lambda) draw decides whether a unit-mean exponential
// demand occurs, otherwise the value is 0.
func PoissonThinned(n int, lambda float64, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0xbf58476d1ce4e5b9))
	y := make([]float64, n)
	for i := range y {
		if rng.Float64() < lambda {
			y[i] = rng.ExpFloat64()
		}
	}
	return y
}

// Build wraps a value slice into a series.Series with synthetic timestamps.
func Build(y []float64, interval time.Duration) *series.Series {
	t := Times(len(y), interval)
	s, err := series.NewWithTime(t, y)
	if err != nil {
		panic(err)
	}
	return s
}
