package arima

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/tsforecast/series/seriestest"
)

func TestConfigStringFormatsOrders(t *testing.T) {
	cfg := Config{Order: Order{P: 1, D: 1, Q: 1}}
	assert.Equal(t, "ARIMA(1,1,1)", cfg.String())

	seasonal := Config{Order: Order{P: 1, D: 0, Q: 0}, Seasonal: SeasonalOrder{P: 1, D: 0, Q: 0, Period: 12}}
	assert.Contains(t, seasonal.String(), "[12]")
}

func TestFitAR1RecoversPositiveAutocorrelation(t *testing.T) {
	n := 200
	y := make([]float64, n)
	rngState := 0.0
	for i := range y {
		rngState = 0.6*rngState + float64(i%5-2)*0.3
		y[i] = rngState + 50
	}
	s := seriestest.Build(y, time.Hour)

	cfg := Config{Order: Order{P: 1, D: 0, Q: 0}}
	m := New(cfg)
	require.NoError(t, m.Fit(context.Background(), s))

	fc, err := m.Predict(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, fc.Point, 5)
	for _, v := range fc.Point {
		assert.False(t, math.IsNaN(v))
	}
}

func TestDifferencingRoundTrip(t *testing.T) {
	y := []float64{1, 3, 6, 10, 15}
	d1 := difference(y, 1, 1)
	require.Equal(t, []float64{2, 3, 4, 5}, d1)

	reintegrated := reintegrateOrder(y[:1], d1, 1, 1)
	require.Equal(t, y[1:], reintegrated)
}

func TestAICcFiniteAfterFit(t *testing.T) {
	n := 80
	y := seriestest.Add(seriestest.Linear(n, 20, 0.1), seriestest.NoiseSeeded(n, 0.3, 3))
	s := seriestest.Build(y, time.Hour)

	cfg := Config{Order: Order{P: 1, D: 1, Q: 0}}
	m := New(cfg)
	require.NoError(t, m.Fit(context.Background(), s))
	assert.False(t, math.IsInf(m.AICc(), 0))
}

func TestAutoARIMASelectsAndReportsDiagnostics(t *testing.T) {
	n := 100
	y := seriestest.Add(seriestest.Linear(n, 30, 0.2), seriestest.NoiseSeeded(n, 0.5, 11))
	s := seriestest.Build(y, time.Hour)

	m, diag, err := AutoARIMA(context.Background(), s, 1, SeasonalOrder{})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Greater(t, diag.ModelsEvaluated, 0)
}

func TestAutoARIMANegativeDTriggersAutomaticDifferencingOrder(t *testing.T) {
	n := 100
	y := seriestest.Add(seriestest.Linear(n, 30, 0.2), seriestest.NoiseSeeded(n, 0.5, 11))
	s := seriestest.Build(y, time.Hour)

	m, diag, err := AutoARIMA(context.Background(), s, -1, SeasonalOrder{})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Greater(t, diag.ModelsEvaluated, 0)
}

func TestEstimateDifferencingOrderDetectsTrendingSeriesNeedsDifferencing(t *testing.T) {
	n := 60
	y := seriestest.Linear(n, 1, 1.0)
	d := EstimateDifferencingOrder(y, 2)
	assert.GreaterOrEqual(t, d, 1)
}

func TestEstimateDifferencingOrderStationarySeriesWithinMax(t *testing.T) {
	n := 80
	y := seriestest.NoiseSeeded(n, 1, 42)
	d := EstimateDifferencingOrder(y, 2)
	assert.GreaterOrEqual(t, d, 0)
	assert.LessOrEqual(t, d, 2)
}
