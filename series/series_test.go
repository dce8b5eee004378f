package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genT(n int, interval time.Duration) []time.Time {
	t := make([]time.Time, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range t {
		t[i] = base.Add(interval * time.Duration(i))
	}
	return t
}

func TestNewWithTime_NonMonotonic(t *testing.T) {
	tt := genT(5, time.Hour)
	tt[2] = tt[1]
	_, err := NewWithTime(tt, []float64{1, 2, 3, 4, 5})
	require.ErrorIs(t, err, ErrNonMonotonic)
}

func TestNewWithTime_LengthMismatch(t *testing.T) {
	tt := genT(5, time.Hour)
	_, err := NewWithTime(tt, []float64{1, 2, 3})
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSlicePreservesOrder(t *testing.T) {
	tt := genT(10, time.Hour)
	y := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s, err := NewWithTime(tt, y)
	require.NoError(t, err)

	sub := s.Slice(2, 5)
	assert.Equal(t, []float64{2, 3, 4}, sub.Y)
	assert.True(t, sub.T[0].Equal(tt[2]))
}

func TestValidateMinLength(t *testing.T) {
	s, err := New([]float64{1, 2})
	require.NoError(t, err)
	require.NoError(t, s.ValidateMinLength(MinLength))

	short, err := New([]float64{1})
	require.NoError(t, err)
	require.ErrorIs(t, short.ValidateMinLength(MinLength), ErrTooShort)
}

func TestValidateSeasonal(t *testing.T) {
	y := make([]float64, 20)
	s, err := New(y)
	require.NoError(t, err)
	require.NoError(t, s.ValidateSeasonal(7))
	require.ErrorIs(t, s.ValidateSeasonal(12), ErrTooShortSeasonal)
}

func TestDropNaN(t *testing.T) {
	tt := genT(5, time.Hour)
	y := []float64{1, math.NaN(), 3, math.NaN(), 5}
	s, err := NewWithTime(tt, y)
	require.NoError(t, err)

	clean := s.DropNaN()
	assert.Equal(t, []float64{1, 3, 5}, clean.Y)
	assert.Len(t, clean.T, 3)
}

func TestEstimateFreq(t *testing.T) {
	tt := genT(20, 5*time.Minute)
	y := make([]float64, 20)
	s, err := NewWithTime(tt, y)
	require.NoError(t, err)

	freq, err := s.EstimateFreq()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, freq)
}

func TestMakeFuturePeriods(t *testing.T) {
	tt := genT(10, time.Hour)
	y := make([]float64, 10)
	s, err := NewWithTime(tt, y)
	require.NoError(t, err)

	horizon, err := s.MakeFuturePeriods(3, 0)
	require.NoError(t, err)
	require.Len(t, horizon, 3)
	assert.True(t, horizon[0].Equal(tt[9].Add(time.Hour)))
	assert.True(t, horizon[2].Equal(tt[9].Add(3*time.Hour)))
}
