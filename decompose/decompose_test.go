package decompose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFourierOrderCapsAtHalfPeriod(t *testing.T) {
	assert.Equal(t, 3, FourierOrder(7, 10))
	assert.Equal(t, 2, FourierOrder(12, 2))
}

func TestFourierBasisShape(t *testing.T) {
	basis := FourierBasis(5, 0, 7, 3)
	require.Len(t, basis, 5)
	for _, row := range basis {
		require.Len(t, row, 6)
	}
}

func TestOneCyclePatternAndRepeat(t *testing.T) {
	period := 4
	fitted := []float64{1, 2, 3, 4, 1, 2, 3, 4}
	pattern := OneCyclePattern(fitted, period)
	require.Len(t, pattern, period)
	assert.InDelta(t, 1.0, pattern[0], 1e-9)
	assert.InDelta(t, 4.0, pattern[3], 1e-9)

	repeated := RepeatPattern(pattern, 0, 6)
	assert.Equal(t, []float64{1, 2, 3, 4, 1, 2}, repeated)
}

func TestFitTrendOLSRecoversLine(t *testing.T) {
	n := 30
	y := make([]float64, n)
	for i := range y {
		y[i] = 10 + 0.5*float64(i)
	}
	tr := FitTrend(y, TrendOLS, 0)
	assert.InDelta(t, 10.0, tr.Intercept, 1e-6)
	assert.InDelta(t, 0.5, tr.Slope, 1e-6)

	fwd := tr.Extrapolate(n, 3)
	require.Len(t, fwd, 3)
	assert.InDelta(t, 10+0.5*float64(n), fwd[0], 1e-6)
}

func TestFitTrendPiecewiseContinuity(t *testing.T) {
	n := 40
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		if i < n/2 {
			y[i] = float64(i)
		} else {
			y[i] = float64(n/2) + 3*float64(i-n/2)
		}
	}
	tr := FitTrend(y, TrendPiecewise, 2)
	require.NotEmpty(t, tr.SegmentSlope)
	fwd := tr.Extrapolate(n, 2)
	require.Len(t, fwd, 2)
	assert.Greater(t, fwd[1], fwd[0])
}

func TestDecomposeRecoversSeasonalAmplitude(t *testing.T) {
	period := 7
	n := period * 10
	y := make([]float64, n)
	for i := range y {
		y[i] = 2*float64(i)/float64(n) + 5*math.Sin(2*math.Pi*float64(i)/float64(period))
	}
	result := Decompose(y, DefaultSTLOptions([]int{period}))
	seasonal := result.Seasonal[period]
	require.Len(t, seasonal, n)

	var maxAbs float64
	for _, v := range seasonal {
		if math.Abs(v) > maxAbs {
			maxAbs = math.Abs(v)
		}
	}
	assert.Greater(t, maxAbs, 3.0)

	for i := range result.Remainder {
		reconstructed := result.Trend[i] + seasonal[i] + result.Remainder[i]
		assert.InDelta(t, y[i], reconstructed, 1e-6)
	}
}

func TestBoxCoxRoundTrip(t *testing.T) {
	y := []float64{1, 4, 9, 16, 25}
	for _, lambda := range []float64{0, 0.5, 1, -0.5} {
		z, err := BoxCox(y, lambda)
		require.NoError(t, err)
		back := InverseBoxCox(z, lambda)
		for i := range y {
			assert.InDelta(t, y[i], back[i], 1e-6)
		}
	}
}

func TestBoxCoxRejectsNonPositive(t *testing.T) {
	_, err := BoxCox([]float64{1, 0, 2}, 0.5)
	assert.ErrorIs(t, err, ErrNonPositive)
}

func TestEstimateLambdaPrefersLogForMultiplicativeSeries(t *testing.T) {
	n := 50
	y := make([]float64, n)
	for i := range y {
		y[i] = math.Exp(0.05 * float64(i))
	}
	lambda, err := EstimateLambda(y)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, lambda, 0.5)
}
