package accuracy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMAEandMSE(t *testing.T) {
	actual := []float64{1, 2, 3}
	predicted := []float64{1, 2, 4}
	assert.InDelta(t, 1.0/3.0, MAE(actual, predicted), 1e-9)
	assert.InDelta(t, 1.0/3.0, MSE(actual, predicted), 1e-9)
	assert.InDelta(t, math.Sqrt(1.0/3.0), RMSE(actual, predicted), 1e-9)
}

func TestMAPEReturnsNaNOnZeroActual(t *testing.T) {
	actual := []float64{0, 2, 3}
	predicted := []float64{1, 2, 3}
	assert.True(t, math.IsNaN(MAPE(actual, predicted)))
}

func TestSMAPEBounded(t *testing.T) {
	actual := []float64{0, 100}
	predicted := []float64{0, 0}
	v := SMAPE(actual, predicted)
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 2.0)
}

func TestMASEAgainstNaiveBaseline(t *testing.T) {
	train := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	actual := []float64{9, 10}
	predicted := []float64{9, 10}
	mase := MASE(actual, predicted, train, 1)
	assert.InDelta(t, 0.0, mase, 1e-9)

	predictedOff := []float64{10, 11}
	maseOff := MASE(actual, predictedOff, train, 1)
	assert.Greater(t, maseOff, 0.0)
}

func TestR2PerfectFit(t *testing.T) {
	actual := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.0, R2(actual, actual), 1e-9)
}

func TestBiasSign(t *testing.T) {
	actual := []float64{10, 10, 10}
	predicted := []float64{12, 12, 12}
	assert.InDelta(t, 2.0, Bias(actual, predicted), 1e-9)
}
