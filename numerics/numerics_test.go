package numerics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOLSRecoversExactLine(t *testing.T) {
	n := 20
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = []float64{1, float64(i)}
		y[i] = 3.0 + 2.0*float64(i)
	}
	res := OLS(x, y)
	require.Len(t, res.Beta, 2)
	assert.InDelta(t, 3.0, res.Beta[0], 1e-9)
	assert.InDelta(t, 2.0, res.Beta[1], 1e-9)
	assert.InDelta(t, 0.0, res.SSR, 1e-9)
}

func TestOLSSingularReturnsNaN(t *testing.T) {
	x := [][]float64{{1, 1}, {1, 1}, {1, 1}}
	y := []float64{1, 2, 3}
	res := OLS(x, y)
	for _, b := range res.Beta {
		assert.True(t, math.IsNaN(b))
	}
}

func TestWLSDownweightsZeroedObservations(t *testing.T) {
	x := [][]float64{{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 1000}}
	y := []float64{0, 1, 2, 3, 999}
	w := []float64{1, 1, 1, 1, 0}
	beta := WLS(x, w, y)
	require.Len(t, beta, 2)
	assert.InDelta(t, 0.0, beta[0], 1e-6)
	assert.InDelta(t, 1.0, beta[1], 1e-6)
}

func TestSiegelRobustToOutliers(t *testing.T) {
	n := 100
	x := make([]float64, n)
	y := make([]float64, n)
	rng := rand.New(rand.NewPCG(1, 2))
	trueSlope, trueIntercept := 2.0, 5.0
	for i := range x {
		x[i] = float64(i)
		y[i] = trueIntercept + trueSlope*float64(i)
	}
	// inject 25% large outliers
	nOutliers := n / 4
	for k := 0; k < nOutliers; k++ {
		idx := rng.IntN(n)
		y[idx] += 1000 * (rng.Float64() - 0.5)
	}

	siegelSlope, _ := SiegelRegression(x, y)
	olsRes := OLS(rowsFrom(x), y)
	olsSlope := olsRes.Beta[1]

	siegelShift := math.Abs(siegelSlope-trueSlope) / trueSlope
	olsShift := math.Abs(olsSlope-trueSlope) / trueSlope

	assert.Less(t, siegelShift, 0.10, "siegel slope shift should be under 10%%")
	assert.Greater(t, olsShift, 0.25, "OLS slope shift should exceed 25%% under this much contamination")
}

func rowsFrom(x []float64) [][]float64 {
	rows := make([][]float64, len(x))
	for i, xi := range x {
		rows[i] = []float64{1, xi}
	}
	return rows
}

func TestAutocorrelationLagZero(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, Autocorrelation(x, 0))
}

func TestAutocorrelationPeriodicSignal(t *testing.T) {
	n := 28
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * float64(i) / 7.0)
	}
	ac7 := Autocorrelation(x, 7)
	assert.Greater(t, ac7, 0.9)
}

func TestSeasonalStrengthBounds(t *testing.T) {
	remainder := make([]float64, 50)
	seasonal := make([]float64, 50)
	for i := range seasonal {
		seasonal[i] = math.Sin(2 * math.Pi * float64(i) / 7.0)
	}
	strength := SeasonalStrength(remainder, seasonal)
	assert.InDelta(t, 1.0, strength, 1e-9)

	noStrength := SeasonalStrength(seasonal, remainder)
	assert.GreaterOrEqual(t, noStrength, 0.0)
	assert.LessOrEqual(t, noStrength, 1.0)
}

func TestMedianAndQuantile(t *testing.T) {
	x := []float64{5, 1, 3, 2, 4}
	assert.Equal(t, 3.0, Median(x))
	assert.Equal(t, 1.0, Quantile(x, 0.0))
	assert.Equal(t, 5.0, Quantile(x, 1.0))
}

func TestDominantPeriod(t *testing.T) {
	n := 140
	x := make([]float64, n)
	for i := range x {
		x[i] = 10 * math.Sin(2*math.Pi*float64(i)/7.0)
	}
	period, mag := DominantPeriod(x)
	assert.InDelta(t, 7.0, period, 1.0)
	assert.Greater(t, mag, 0.0)
}
