// Package series defines the core time-indexed data model shared by every
// forecaster: a finite, ordered sequence of (timestamp, value) observations.
package series

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/flowforge/tsforecast/stats"
)

var (
	ErrNoObservations    = errors.New("no observations")
	ErrLengthMismatch    = errors.New("time feature has a different length than values")
	ErrNonMonotonic      = errors.New("timestamps are not strictly increasing")
	ErrTooShort          = errors.New("series shorter than minimum required length")
	ErrTooShortSeasonal  = errors.New("series shorter than twice the largest seasonal period")
	ErrCannotInferFreq   = errors.New("unable to infer a frequency from fewer than two timestamps")
	ErrNaNInFittedRange  = errors.New("NaN value inside fitted range without imputation")
)

// MinLength is the minimum number of observations any forecaster may fit on.
const MinLength = 2

// Series is a finite ordered sequence of real-valued observations, each
// optionally carrying a timestamp. Timestamps, when present, must be
// strictly increasing. Values are IEEE-754 doubles; NaN marks a missing
// observation.
type Series struct {
	T []time.Time
	Y []float64

	// Freq is an optional human-readable frequency label (e.g. "5m", "1d").
	// It is informational only; models that require a seasonal period take
	// it as an explicit configuration value rather than inferring it from
	// Freq.
	Freq string

	// Metadata carries arbitrary caller-supplied annotations (series id,
	// source, unit, ...). Never interpreted by the forecasting core.
	Metadata map[string]string
}

// New builds a Series from a value slice with synthetic, evenly spaced
// timestamps. Useful for callers that only care about the ordinal index.
func New(y []float64) (*Series, error) {
	if len(y) == 0 {
		return nil, ErrNoObservations
	}
	t := make([]time.Time, len(y))
	base := time.Unix(0, 0).UTC()
	for i := range t {
		t[i] = base.Add(time.Duration(i) * time.Second)
	}
	return NewWithTime(t, y)
}

// NewWithTime builds a Series from explicit timestamps and values. Timestamps
// must be strictly increasing.
func NewWithTime(t []time.Time, y []float64) (*Series, error) {
	if len(y) == 0 {
		return nil, ErrNoObservations
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf("time has length %d, values has length %d: %w", len(t), len(y), ErrLengthMismatch)
	}

	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return nil, fmt.Errorf("at index %d: %w", i, ErrNonMonotonic)
		}
	}

	tCopy := make([]time.Time, len(t))
	yCopy := make([]float64, len(y))
	copy(tCopy, t)
	copy(yCopy, y)
	return &Series{T: tCopy, Y: yCopy}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Y)
}

// Copy returns a deep copy of the series.
func (s *Series) Copy() *Series {
	if s == nil {
		return nil
	}
	t := make([]time.Time, len(s.T))
	y := make([]float64, len(s.Y))
	copy(t, s.T)
	copy(y, s.Y)
	md := make(map[string]string, len(s.Metadata))
	for k, v := range s.Metadata {
		md[k] = v
	}
	return &Series{T: t, Y: y, Freq: s.Freq, Metadata: md}
}

// Slice returns a view over [start, end) sharing no backing array with the
// original, preserving order.
func (s *Series) Slice(start, end int) *Series {
	if s == nil {
		return nil
	}
	t := make([]time.Time, end-start)
	y := make([]float64, end-start)
	copy(t, s.T[start:end])
	copy(y, s.Y[start:end])
	return &Series{T: t, Y: y, Freq: s.Freq}
}

// Tail returns the last n observations, or the whole series if n >= Len().
func (s *Series) Tail(n int) *Series {
	if s == nil {
		return nil
	}
	if n >= s.Len() {
		return s.Copy()
	}
	return s.Slice(s.Len()-n, s.Len())
}

// Head returns the first n observations, or the whole series if n >= Len().
func (s *Series) Head(n int) *Series {
	if s == nil {
		return nil
	}
	if n >= s.Len() {
		return s.Copy()
	}
	return s.Slice(0, n)
}

// ValidateMinLength returns ErrTooShort if the series has fewer than n
// observations.
func (s *Series) ValidateMinLength(n int) error {
	if s.Len() < n {
		return fmt.Errorf("need at least %d observations, have %d: %w", n, s.Len(), ErrTooShort)
	}
	return nil
}

// ValidateSeasonal returns ErrTooShortSeasonal if the series has fewer than
// 2*max(periods) observations.
func (s *Series) ValidateSeasonal(periods ...int) error {
	maxPeriod := 0
	for _, p := range periods {
		if p > maxPeriod {
			maxPeriod = p
		}
	}
	if maxPeriod == 0 {
		return nil
	}
	if s.Len() < 2*maxPeriod {
		return fmt.Errorf("need at least %d observations for seasonal period %d, have %d: %w", 2*maxPeriod, maxPeriod, s.Len(), ErrTooShortSeasonal)
	}
	return nil
}

// HasNaN reports whether any value in the series is NaN.
func (s *Series) HasNaN() bool {
	for _, v := range s.Y {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// OutlierIndices returns indices of observations flagged by the Tukey
// method outside [lowerPerc, upperPerc] inflated by tukeyFactor, for
// callers that want to inspect or down-weight extreme points before
// fitting (e.g. before a Box-Cox lambda estimate).
func (s *Series) OutlierIndices(lowerPerc, upperPerc, tukeyFactor float64) []int {
	return stats.DetectOutliers(s.Y, lowerPerc, upperPerc, tukeyFactor)
}

// DropNaN returns a copy with NaN-valued observations removed.
func (s *Series) DropNaN() *Series {
	t := make([]time.Time, 0, s.Len())
	y := make([]float64, 0, s.Len())
	for i, v := range s.Y {
		if math.IsNaN(v) {
			continue
		}
		y = append(y, v)
		if i < len(s.T) {
			t = append(t, s.T[i])
		}
	}
	return &Series{T: t, Y: y, Freq: s.Freq}
}

// StartTime returns the first timestamp, or the zero time if empty.
func (s *Series) StartTime() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.T[0]
}

// EndTime returns the last timestamp, or the zero time if empty.
func (s *Series) EndTime() time.Time {
	if s.Len() == 0 {
		return time.Time{}
	}
	return s.T[len(s.T)-1]
}

// EstimateFreq infers the sampling interval as the most frequently occurring
// gap between consecutive timestamps, breaking ties toward the smaller gap.
func (s *Series) EstimateFreq() (time.Duration, error) {
	if len(s.T) < 2 {
		return 0, ErrCannotInferFreq
	}

	counts := make(map[time.Duration]int)
	for i := 1; i < len(s.T); i++ {
		counts[s.T[i].Sub(s.T[i-1])]++
	}

	var best time.Duration = math.MaxInt64
	bestCount := 0
	for d, c := range counts {
		if c > bestCount || (c == bestCount && d < best) {
			best = d
			bestCount = c
		}
	}
	return best, nil
}

// MakeFuturePeriods generates n timestamps following the last observation,
// spaced by freq (or the inferred frequency if freq is zero).
func (s *Series) MakeFuturePeriods(n int, freq time.Duration) ([]time.Time, error) {
	if freq == 0 {
		var err error
		freq, err = s.EstimateFreq()
		if err != nil {
			return nil, err
		}
	}
	out := make([]time.Time, n)
	last := s.EndTime()
	for i := range out {
		out[i] = last.Add(freq * time.Duration(i+1))
	}
	return out, nil
}
