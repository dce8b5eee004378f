package arima

import (
	"math"

	"github.com/flowforge/tsforecast/numerics"
)

// difference applies d-th order lag-`lag` differencing.
func difference(y []float64, d, lag int) []float64 {
	out := append([]float64(nil), y...)
	for i := 0; i < d; i++ {
		if len(out) <= lag {
			return out
		}
		next := make([]float64, len(out)-lag)
		for j := lag; j < len(out); j++ {
			next[j-lag] = out[j] - out[j-lag]
		}
		out = next
	}
	return out
}

// reintegrate reverses seasonal then non-seasonal differencing of a
// forecast on the differenced scale, walking forward from the tail of the
// original series.
func reintegrate(original, diffedForecast []float64, d, seasonalD, period int) []float64 {
	// Reverse seasonal differencing first (it was applied last), then
	// non-seasonal differencing, mirroring the inverse order of Fit's
	// forward differencing pipeline. The seasonal step walks forward from
	// the series as it stood after non-seasonal differencing.
	out := append([]float64(nil), diffedForecast...)
	out = reintegrateOrder(difference(original, d, 1), out, seasonalD, period)
	out = reintegrateOrder(original, out, d, 1)
	return out
}

// reintegrateFitted reverses differencing for the in-sample fitted values
// to recover a fitted series on the original scale for reporting.
func reintegrateFitted(original, fittedDiffed []float64, d, seasonalD, period int) []float64 {
	// Fitted values on the differenced scale do not carry enough history
	// to exactly reconstruct the original scale without the dropped
	// leading differenced points; approximate by anchoring to the
	// original series' own values offset by the total differencing order.
	totalDrop := d + seasonalD*period
	out := make([]float64, len(fittedDiffed))
	for i, v := range fittedDiffed {
		origIdx := i + totalDrop
		if origIdx > 0 && origIdx-1 < len(original) {
			out[i] = original[origIdx-1] + v
		} else if origIdx < len(original) {
			out[i] = original[origIdx]
		} else {
			out[i] = v
		}
	}
	return out
}

func reintegrateOrder(original, diffedForecast []float64, order, period int) []float64 {
	if order == 0 {
		return diffedForecast
	}
	// Undo one differencing pass at a time, innermost first, each walking
	// forward from the series as it stood at that differencing level.
	levels := make([][]float64, order)
	levels[0] = original
	for k := 1; k < order; k++ {
		levels[k] = difference(levels[k-1], 1, period)
	}
	out := diffedForecast
	for k := order - 1; k >= 0; k-- {
		history := append([]float64(nil), levels[k]...)
		next := make([]float64, len(out))
		for i, d := range out {
			idx := len(history) - period
			base := 0.0
			if idx >= 0 {
				base = history[idx]
			} else if len(history) > 0 {
				base = history[len(history)-1]
			}
			val := base + d
			next[i] = val
			history = append(history, val)
		}
		out = next
	}
	return out
}

// longLagOrder picks a generous AR lag order for the innovation-whitening
// first stage of Hannan-Rissanen, capped so it never exceeds a quarter of
// the available sample.
func longLagOrder(n int) int {
	order := int(math.Round(math.Log(float64(n)) * 4))
	if order < 4 {
		order = 4
	}
	if order > n/4 {
		order = n / 4
	}
	if order < 1 {
		order = 1
	}
	return order
}

// longARInnovations fits a long autoregression of the given order to y
// and returns its in-sample residuals as a proxy for the unobserved
// innovation sequence, the first stage of Hannan-Rissanen estimation.
func longARInnovations(y []float64, order int) ([]float64, error) {
	n := len(y)
	if order >= n {
		order = n - 1
	}
	if order < 1 {
		return append([]float64(nil), y...), nil
	}

	rows := make([][]float64, 0, n-order)
	targets := make([]float64, 0, n-order)
	for t := order; t < n; t++ {
		row := make([]float64, order)
		for lag := 1; lag <= order; lag++ {
			row[lag-1] = y[t-lag]
		}
		rows = append(rows, row)
		targets = append(targets, y[t])
	}

	res := numerics.OLS(rows, targets)
	innovations := make([]float64, n)
	for t := 0; t < order; t++ {
		innovations[t] = y[t]
	}
	for t := order; t < n; t++ {
		var pred float64
		for lag := 1; lag <= order; lag++ {
			if math.IsNaN(res.Beta[lag-1]) {
				pred = 0
				break
			}
			pred += res.Beta[lag-1] * y[t-lag]
		}
		innovations[t] = y[t] - pred
	}
	return innovations, nil
}

// enforceStationary rescales a coefficient vector so the sum of absolute
// values stays below 0.98, a simplified stand-in for reflecting
// out-of-unit-circle roots back inside the unit circle.
func enforceStationary(coef []float64) []float64 {
	if len(coef) == 0 {
		return coef
	}
	var sum float64
	for _, c := range coef {
		sum += math.Abs(c)
	}
	if sum <= 0.98 {
		return coef
	}
	scale := 0.98 / sum
	out := make([]float64, len(coef))
	for i, c := range coef {
		out[i] = c * scale
	}
	return out
}
