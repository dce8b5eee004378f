package arima

import (
	"math"

	"github.com/flowforge/tsforecast/numerics"
)

// adfStatistic fits y_t = rho*y_{t-1} + e_t by OLS and returns the t-ratio
// of (rho-1), the Dickey-Fuller test statistic. Positive values close to 0
// or above indicate a unit root (non-stationary); very negative values
// indicate stationarity.
func adfStatistic(y []float64) float64 {
	n := len(y)
	if n < 4 {
		return 0
	}
	rows := make([][]float64, n-1)
	targets := make([]float64, n-1)
	for t := 1; t < n; t++ {
		rows[t-1] = []float64{y[t-1]}
		targets[t-1] = y[t] - y[t-1]
	}
	res := numerics.OLS(rows, targets)
	if len(res.Beta) == 0 || math.IsNaN(res.Beta[0]) {
		return 0
	}
	gamma := res.Beta[0]

	var ssr float64
	for t := 1; t < n; t++ {
		pred := gamma * y[t-1]
		e := targets[t-1] - pred
		ssr += e * e
	}
	dof := float64(n - 2)
	if dof <= 0 {
		return 0
	}
	sigma2 := ssr / dof
	var sxx float64
	for t := 1; t < n; t++ {
		sxx += y[t-1] * y[t-1]
	}
	if sxx <= 0 {
		return 0
	}
	se := math.Sqrt(sigma2 / sxx)
	if se == 0 {
		return 0
	}
	return gamma / se
}

// adfPValue approximates a Dickey-Fuller p-value via the standard normal
// CDF of the test statistic. This is a documented simplification: real
// Dickey-Fuller critical values come from MacKinnon's response-surface
// tables rather than the normal distribution, which has heavier-than-
// normal left tails under the null. Treat the returned value as a rough
// ordering signal, not a calibrated probability.
func adfPValue(stat float64) float64 {
	return 0.5 * (1 + math.Erf(stat/math.Sqrt2))
}

// EstimateDifferencingOrder picks the smallest d in [0, maxD] at which y,
// differenced d times, is judged stationary by the approximate ADF test
// above (p-value below 0.05), capping at maxD if no level looks
// stationary.
func EstimateDifferencingOrder(y []float64, maxD int) int {
	current := append([]float64(nil), y...)
	for d := 0; d < maxD; d++ {
		if len(current) < 10 {
			return d
		}
		stat := adfStatistic(current)
		if adfPValue(stat) < 0.05 {
			return d
		}
		current = difference(current, 1, 1)
	}
	return maxD
}
