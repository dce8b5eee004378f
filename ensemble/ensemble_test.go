package ensemble

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/tsforecast/accuracy"
	"github.com/flowforge/tsforecast/baselines"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/series/seriestest"
)

func TestEnsembleMeanBeatsAverageOfIndividualsOnGrowingTrend(t *testing.T) {
	n := 36
	h := 12
	y := seriestest.Add(seriestest.Linear(n+h, 10, 1.5), seriestest.NoiseSeeded(n+h, 1, 9))
	train := y[:n]
	actualFuture := y[n:]

	s := seriestest.Build(train, time.Hour)

	bases := []forecast.Forecaster{
		&baselines.Naive{},
		&baselines.SMA{Window: 3},
		&baselines.SES{Alpha: 0.3},
		&baselines.Theta{},
	}
	names := []string{"naive", "sma3", "ses", "theta"}

	e := New(Config{Policy: Mean}, bases, names)
	require.NoError(t, e.Fit(context.Background(), s))

	fc, err := e.Predict(context.Background(), h)
	require.NoError(t, err)
	require.Len(t, fc.Point, h)

	ensembleMAE := accuracy.MAE(actualFuture, fc.Point)

	individual, err := e.getIndividualForecasts(context.Background(), h)
	require.NoError(t, err)

	var sumMAE float64
	for _, point := range individual {
		sumMAE += accuracy.MAE(actualFuture, point)
	}
	meanOfIndividualMAE := sumMAE / float64(len(individual))

	assert.LessOrEqual(t, ensembleMAE, meanOfIndividualMAE+1e-9)
}

func TestEnsembleMedianCombinesElementwise(t *testing.T) {
	n := 50
	y := seriestest.Add(seriestest.Linear(n, 5, 0.8), seriestest.NoiseSeeded(n, 0.5, 2))
	s := seriestest.Build(y, time.Hour)

	bases := []forecast.Forecaster{&baselines.Naive{}, &baselines.SES{Alpha: 0.5}, &baselines.Theta{}}
	names := []string{"naive", "ses", "theta"}

	e := New(Config{Policy: Median}, bases, names)
	require.NoError(t, e.Fit(context.Background(), s))

	fc, err := e.Predict(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, fc.Point, 5)
}

func TestEnsembleWeightedAccuracyAssignsOneWeightPerBase(t *testing.T) {
	n := 30
	y := seriestest.Linear(n, 2, 0.3)
	s := seriestest.Build(y, time.Hour)

	bases := []forecast.Forecaster{&baselines.Naive{}, &baselines.SES{Alpha: 0.4}}
	names := []string{"naive", "ses"}

	e := New(Config{Policy: WeightedAccuracy, AccuracyMetric: "mae"}, bases, names)
	require.NoError(t, e.Fit(context.Background(), s))
	require.Len(t, e.weights, 2)
}

func TestGetIndividualForecastsExposesEachBase(t *testing.T) {
	n := 30
	y := seriestest.Linear(n, 2, 0.3)
	s := seriestest.Build(y, time.Hour)

	bases := []forecast.Forecaster{&baselines.Naive{}, &baselines.SES{Alpha: 0.4}}
	names := []string{"naive", "ses"}

	e := New(Config{Policy: Mean}, bases, names)
	require.NoError(t, e.Fit(context.Background(), s))

	out, err := e.GetIndividualForecasts(context.Background(), 4)
	require.NoError(t, err)
	assert.Contains(t, out, "naive")
	assert.Contains(t, out, "ses")
}
