package auto

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/tsforecast/cv"
	"github.com/flowforge/tsforecast/series/seriestest"
)

func airPassengersLike(n int) []float64 {
	y := seriestest.Add(
		seriestest.Sine(n, 12, 30),
		seriestest.Linear(n, 100, 2),
	)
	y = seriestest.Add(y, seriestest.NoiseSeeded(n, 2, 5))
	for i := range y {
		if y[i] <= 0 {
			y[i] = 1
		}
	}
	return y
}

func TestAutoMFLESEvaluatesFullGridWithNoFailures(t *testing.T) {
	n := 132
	y := airPassengersLike(n)
	s := seriestest.Build(y, time.Hour)

	space := DefaultMFLESSearchSpace([]int{12}, 12)
	_, diag, candidates, err := AutoMFLES(context.Background(), s, space)
	require.NoError(t, err)
	assert.Equal(t, 12, len(candidates))
	assert.Equal(t, 12, diag.ModelsEvaluated)
	assert.Equal(t, 0, diag.ModelsFailed)
}

func TestAutoMFLESIdempotentSelection(t *testing.T) {
	n := 100
	y := airPassengersLike(n)
	s := seriestest.Build(y, time.Hour)

	space := DefaultMFLESSearchSpace([]int{12}, 6)
	_, diag1, _, err1 := AutoMFLES(context.Background(), s, space)
	require.NoError(t, err1)
	_, diag2, _, err2 := AutoMFLES(context.Background(), s, space)
	require.NoError(t, err2)
	assert.Equal(t, diag1.BestScore, diag2.BestScore)
}

func TestAutoMSTLSelectsAndReportsDiagnostics(t *testing.T) {
	n := 100
	y := airPassengersLike(n)
	s := seriestest.Build(y, time.Hour)

	m, diag, err := AutoMSTL(context.Background(), s, []int{12})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Greater(t, diag.ModelsEvaluated, 0)

	fc, err := m.Predict(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, fc.Point, 12)
}

func TestDefaultMFLESSearchSpaceUsesRollingStrategy(t *testing.T) {
	space := DefaultMFLESSearchSpace([]int{7}, 5)
	assert.Equal(t, cv.Rolling, space.CVStrategy)
}
