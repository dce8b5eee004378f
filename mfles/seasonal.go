package mfles

import (
	"math"

	"github.com/flowforge/tsforecast/decompose"
	"github.com/flowforge/tsforecast/numerics"
)

// seasonalRound is one round's seasonal sub-learner output for a single
// period: its in-sample fitted values, the one-cycle pattern extracted
// from them for extrapolation, and the strength weight it fit at (zero
// means the round's seasonal contribution for this period was downgraded
// to nothing because the weighted fit hit a singular system).
type seasonalRound struct {
	period   int
	fitted   []float64
	pattern  []float64
	strength float64
}

// fitSeasonalPeriod fits a Fourier/WLS seasonal sub-learner for one period
// against the current residuals. The observation weight is the seasonal
// strength estimate (1 - Var(remainder)/Var(remainder+seasonal), clamped
// to [0,1]) derived from the period's own one-cycle pattern measured
// against the residual it is being fit on; a non-positive or singular fit
// downgrades the round's contribution to zero rather than failing the
// whole round.
func fitSeasonalPeriod(residuals []float64, period, maxFourierOrder int) seasonalRound {
	n := len(residuals)
	k := decompose.FourierOrder(period, maxFourierOrder)

	pattern := decompose.OneCyclePattern(residuals, period)
	seasonalEstimate := decompose.RepeatPattern(pattern, 0, n)
	remainder := make([]float64, n)
	for i := range remainder {
		remainder[i] = residuals[i] - seasonalEstimate[i]
	}
	strength := numerics.SeasonalStrength(remainder, seasonalEstimate)

	if strength <= 0 || math.IsNaN(strength) {
		return seasonalRound{period: period, fitted: make([]float64, n), pattern: make([]float64, period), strength: 0}
	}

	design := decompose.FourierBasis(n, 0, float64(period), k)
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = strength
	}
	beta := numerics.WLS(design, weights, residuals)
	if len(beta) == 0 || math.IsNaN(beta[0]) {
		return seasonalRound{period: period, fitted: make([]float64, n), pattern: make([]float64, period), strength: 0}
	}

	fitted := numerics.Predict(design, beta)
	fittedPattern := decompose.OneCyclePattern(fitted, period)
	return seasonalRound{period: period, fitted: fitted, pattern: fittedPattern, strength: strength}
}

// fitSeasonalStacked fits all periods at once in a single WLS, scaling
// each period's Fourier columns by sqrt(strength) before solving (an
// implicit per-block weighting, since the seasonal-strength weight is
// defined per period rather than per observation) and unscaling the
// recovered coefficients afterward.
func fitSeasonalStacked(residuals []float64, periods []int, maxFourierOrder int) []seasonalRound {
	n := len(residuals)
	results := make([]seasonalRound, 0, len(periods))

	strengths := make([]float64, len(periods))
	orders := make([]int, len(periods))
	totalCols := 0
	for i, p := range periods {
		pattern := decompose.OneCyclePattern(residuals, p)
		seasonalEstimate := decompose.RepeatPattern(pattern, 0, n)
		remainder := make([]float64, n)
		for j := range remainder {
			remainder[j] = residuals[j] - seasonalEstimate[j]
		}
		strengths[i] = numerics.SeasonalStrength(remainder, seasonalEstimate)
		orders[i] = decompose.FourierOrder(p, maxFourierOrder)
		totalCols += 2 * orders[i]
	}

	design := make([][]float64, n)
	for i := range design {
		design[i] = make([]float64, 0, totalCols)
	}
	for i, p := range periods {
		block := decompose.FourierBasis(n, 0, float64(p), orders[i])
		scale := math.Sqrt(math.Max(strengths[i], 0))
		for row := 0; row < n; row++ {
			for _, v := range block[row] {
				design[row] = append(design[row], v*scale)
			}
		}
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	beta := numerics.WLS(design, weights, residuals)

	colOffset := 0
	for i, p := range periods {
		k := orders[i]
		if len(beta) == 0 || math.IsNaN(beta[0]) || strengths[i] <= 0 {
			results = append(results, seasonalRound{period: p, fitted: make([]float64, n), pattern: make([]float64, p), strength: 0})
			colOffset += 2 * k
			continue
		}
		scale := math.Sqrt(strengths[i])
		blockBeta := make([]float64, 2*k)
		for j := 0; j < 2*k; j++ {
			blockBeta[j] = beta[colOffset+j] * scale
		}
		block := decompose.FourierBasis(n, 0, float64(p), k)
		fitted := numerics.Predict(block, blockBeta)
		pattern := decompose.OneCyclePattern(fitted, p)
		results = append(results, seasonalRound{period: p, fitted: fitted, pattern: pattern, strength: strengths[i]})
		colOffset += 2 * k
	}
	return results
}
