// Package numerics is the self-contained linear algebra and statistics
// kernel shared by every decomposition and model package: OLS/WLS solved by
// Gaussian elimination with partial pivoting, Siegel repeated-medians
// regression, order statistics, autocorrelation, and FFT helpers.
//
// Every routine here fails silently at the value level (NaN-filled
// output) rather than returning an error, so a candidate-local numerical
// failure degrades a single Auto-* grid point to NaN rather than aborting
// the whole search, without the caller needing to error-check inside a
// hot loop.
package numerics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/flowforge/tsforecast/floatsunrolled"
)

// PivotTolerance is the minimum pivot magnitude accepted during Gaussian
// elimination; anything smaller is treated as a singular system.
const PivotTolerance = 1e-12

// OLSResult holds the outcome of an ordinary least squares fit.
type OLSResult struct {
	Beta []float64
	SSR  float64
	AIC  float64
}

// OLS solves X'X * beta = X'y via Gaussian elimination with partial
// pivoting. X is row-major with m rows (observations) and n columns
// (features); y has length m. Returns a NaN-filled Beta when the system is
// rank deficient (pivot magnitude below PivotTolerance); callers treat that
// as "skip this candidate".
func OLS(x [][]float64, y []float64) OLSResult {
	m := len(y)
	if m == 0 || len(x) != m {
		return nanResult(featureCount(x))
	}
	n := featureCount(x)
	if n == 0 {
		return nanResult(0)
	}

	xtx, xty := normalEquations(x, y, nil)
	beta, ok := gaussianSolve(xtx, xty)
	if !ok {
		return nanResult(n)
	}

	ssr := residualSumOfSquares(x, y, beta)
	aic := math.NaN()
	if ssr > 0 {
		aic = float64(m)*math.Log(ssr/float64(m)) + 2*float64(n)
	}
	return OLSResult{Beta: beta, SSR: ssr, AIC: aic}
}

// WLS solves X' diag(w) X * beta = X' diag(w) y by the same factorization.
// Weights must be non-negative; a NaN/negative weight degenerates to a
// NaN-filled result.
func WLS(x [][]float64, w, y []float64) []float64 {
	m := len(y)
	n := featureCount(x)
	if m == 0 || len(x) != m || len(w) != m || n == 0 {
		return nanSlice(n)
	}
	for _, wi := range w {
		if math.IsNaN(wi) || wi < 0 {
			return nanSlice(n)
		}
	}

	xtx, xty := normalEquations(x, y, w)
	beta, ok := gaussianSolve(xtx, xty)
	if !ok {
		return nanSlice(n)
	}
	return beta
}

func featureCount(x [][]float64) int {
	if len(x) == 0 {
		return 0
	}
	return len(x[0])
}

func nanResult(n int) OLSResult {
	return OLSResult{Beta: nanSlice(n), SSR: math.NaN(), AIC: math.NaN()}
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// normalEquations builds X'WX and X'Wy (W=I when w is nil). Each inner
// product runs the unrolled floatsunrolled.Dot over the longest prefix that
// is a multiple of floatsunrolled.UnrollBatch and finishes the remainder
// with a scalar loop, for the hot path over many features and
// rounds of boosting, matching the "high-throughput" deployment goal in
// spec.md section 5.
func normalEquations(x [][]float64, y, w []float64) (xtx [][]float64, xty []float64) {
	m := len(y)
	n := featureCount(x)

	xtx = make([][]float64, n)
	for i := range xtx {
		xtx[i] = make([]float64, n)
	}
	xty = make([]float64, n)

	cols := make([][]float64, n)
	for j := 0; j < n; j++ {
		col := make([]float64, m)
		for i := 0; i < m; i++ {
			col[i] = x[i][j]
		}
		cols[j] = col
	}

	weighted := make([][]float64, n)
	for j := 0; j < n; j++ {
		if w == nil {
			weighted[j] = cols[j]
			continue
		}
		wc := make([]float64, m)
		floats.MulTo(wc, cols[j], w)
		weighted[j] = wc
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := dot(weighted[i], cols[j])
			xtx[i][j] = v
			xtx[j][i] = v
		}
		xty[i] = dot(weighted[i], y)
	}
	return xtx, xty
}

func dot(a, b []float64) float64 {
	n := len(a)
	rem := n % floatsunrolled.UnrollBatch
	head := n - rem
	var sum float64
	if head > 0 {
		sum += floatsunrolled.Dot(a[:head], b[:head])
	}
	for i := head; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// gaussianSolve solves Ax=b via Gaussian elimination with partial pivoting.
// Returns ok=false when a pivot magnitude falls below PivotTolerance.
func gaussianSolve(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	if n == 0 {
		return nil, false
	}

	// augmented matrix, row-owned copies so the caller's normal equations
	// are left untouched.
	aug := make([][]float64, n)
	for i := range aug {
		row := make([]float64, n+1)
		copy(row, a[i])
		row[n] = b[i]
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		pivotRow := col
		pivotVal := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r][col]); v > pivotVal {
				pivotVal = v
				pivotRow = r
			}
		}
		if pivotVal < PivotTolerance {
			return nil, false
		}
		if pivotRow != col {
			aug[col], aug[pivotRow] = aug[pivotRow], aug[col]
		}

		pivot := aug[col][col]
		for r := col + 1; r < n; r++ {
			factor := aug[r][col] / pivot
			if factor == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := aug[i][n]
		for j := i + 1; j < n; j++ {
			sum -= aug[i][j] * x[j]
		}
		x[i] = sum / aug[i][i]
	}
	return x, true
}

func residualSumOfSquares(x [][]float64, y, beta []float64) float64 {
	var ssr float64
	for i := range y {
		pred := 0.0
		for j, b := range beta {
			pred += b * x[i][j]
		}
		d := y[i] - pred
		ssr += d * d
	}
	return ssr
}

// Predict evaluates a fitted linear model (row-major design matrix) against
// its coefficients.
func Predict(x [][]float64, beta []float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		var v float64
		for j, b := range beta {
			if j < len(row) {
				v += b * row[j]
			}
		}
		out[i] = v
	}
	return out
}
