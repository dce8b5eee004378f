package tbats

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/tsforecast/arima"
	"github.com/flowforge/tsforecast/series/seriestest"
)

func buildPositiveSeasonal(n, period int) []float64 {
	y := seriestest.Add(seriestest.Sine(n, float64(period), 10), seriestest.Linear(n, 50, 0.05))
	y = seriestest.Add(y, seriestest.NoiseSeeded(n, 0.5, 7))
	return y
}

func TestConfigStringIncludesPeriodsAndARMAOrder(t *testing.T) {
	cfg := Config{SeasonalPeriods: []int{7}, ARMAOrder: arima.Order{P: 1, Q: 1}}
	assert.Contains(t, cfg.String(), "TBATS")
	assert.Contains(t, cfg.String(), "periods=[7]")
	assert.Contains(t, cfg.String(), "arma=(1,1)")
}

func TestFitRejectsNonPositiveObservations(t *testing.T) {
	y := []float64{1, 2, -3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30}
	s := seriestest.Build(y, time.Hour)
	m := New(Config{SeasonalPeriods: []int{7}})
	err := m.Fit(context.Background(), s)
	require.Error(t, err)
}

func TestFitAndPredictOnSeasonalSeries(t *testing.T) {
	n := 120
	y := buildPositiveSeasonal(n, 7)
	s := seriestest.Build(y, time.Hour)

	cfg := Config{SeasonalPeriods: []int{7}, FourierOrders: []int{3}}
	m := New(cfg)
	require.NoError(t, m.Fit(context.Background(), s))

	fc, err := m.Predict(context.Background(), 14)
	require.NoError(t, err)
	require.Len(t, fc.Point, 14)
	for _, v := range fc.Point {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestFitWithARMAErrorTermGivesNonNaNAIC(t *testing.T) {
	n := 100
	y := buildPositiveSeasonal(n, 7)
	s := seriestest.Build(y, time.Hour)

	plain := New(Config{SeasonalPeriods: []int{7}, FourierOrders: []int{2}})
	require.NoError(t, plain.Fit(context.Background(), s))

	withARMA := New(Config{SeasonalPeriods: []int{7}, FourierOrders: []int{2}, ARMAOrder: arima.Order{P: 1}})
	require.NoError(t, withARMA.Fit(context.Background(), s))

	assert.False(t, math.IsNaN(withARMA.AIC()))
}

func TestAutoTBATSSelectsAndReportsDiagnostics(t *testing.T) {
	n := 100
	y := buildPositiveSeasonal(n, 7)
	s := seriestest.Build(y, time.Hour)

	m, diag, err := AutoTBATS(context.Background(), s, []int{7})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Greater(t, diag.ModelsEvaluated, 0)
}
