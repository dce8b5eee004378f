package baselines

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/tsforecast/series/seriestest"
)

func TestNaiveForecastsLastValue(t *testing.T) {
	y := []float64{1, 2, 3, 4, 5}
	s := seriestest.Build(y, time.Hour)

	n := &Naive{}
	require.NoError(t, n.Fit(context.Background(), s))
	fc, err := n.Predict(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5, 5}, fc.Point)
}

func TestSeasonalNaiveRepeatsLastCycle(t *testing.T) {
	y := []float64{1, 2, 3, 4, 1, 2, 3, 4}
	s := seriestest.Build(y, time.Hour)

	sn := &SeasonalNaive{Period: 4}
	require.NoError(t, sn.Fit(context.Background(), s))
	fc, err := sn.Predict(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, fc.Point)
}

func TestSeasonalNaiveAirPassengersHeadScenario(t *testing.T) {
	// A short monotonically increasing-with-seasonality head, mirroring the
	// spec's AirPassengers(head)+SeasonalNaive(s=12) scenario shape.
	y := make([]float64, 36)
	for i := range y {
		y[i] = 100 + float64(i) + 10*float64(i%12)
	}
	s := seriestest.Build(y, time.Hour)

	sn := &SeasonalNaive{Period: 12}
	require.NoError(t, sn.Fit(context.Background(), s))
	fc, err := sn.Predict(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, fc.Point, 12)
	for i := 0; i < 12; i++ {
		assert.Equal(t, y[24+i], fc.Point[i])
	}
}

func TestSMAProducesFlatForecast(t *testing.T) {
	y := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	s := seriestest.Build(y, time.Hour)

	sma := &SMA{Window: 3}
	require.NoError(t, sma.Fit(context.Background(), s))
	fc, err := sma.Predict(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, fc.Point[0], fc.Point[1])
}

func TestSESConvergesTowardLevel(t *testing.T) {
	y := []float64{10, 10, 10, 10, 10}
	s := seriestest.Build(y, time.Hour)

	ses := &SES{Alpha: 0.3}
	require.NoError(t, ses.Fit(context.Background(), s))
	fc, err := ses.Predict(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, fc.Point[0], 1e-9)
}

func TestThetaForecastRisesOnLinearTrend(t *testing.T) {
	n := 30
	y := seriestest.Linear(n, 2, 1.5)
	s := seriestest.Build(y, time.Hour)

	th := &Theta{}
	require.NoError(t, th.Fit(context.Background(), s))
	fc, err := th.Predict(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, fc.Point, 5)
	assert.Greater(t, fc.Point[4], fc.Point[0])
}
