package numerics

import "math"

// SiegelRegression computes the Siegel repeated-medians robust regression:
// the slope is the median over i of the median over j != i of the pairwise
// slope (y[j]-y[i])/(x[j]-x[i]); the intercept is the median of y[i] -
// slope*x[i]. Resists up to ~29% outliers. Cost is O(n^2).
func SiegelRegression(x, y []float64) (slope, intercept float64) {
	n := len(x)
	if n != len(y) || n < 2 {
		return math.NaN(), math.NaN()
	}

	medianSlopes := make([]float64, 0, n)
	pairwise := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		pairwise = pairwise[:0]
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			dx := x[j] - x[i]
			if dx == 0 {
				continue
			}
			pairwise = append(pairwise, (y[j]-y[i])/dx)
		}
		if len(pairwise) == 0 {
			continue
		}
		medianSlopes = append(medianSlopes, Median(pairwise))
	}
	if len(medianSlopes) == 0 {
		return math.NaN(), math.NaN()
	}
	slope = Median(medianSlopes)

	intercepts := make([]float64, n)
	for i := range x {
		intercepts[i] = y[i] - slope*x[i]
	}
	intercept = Median(intercepts)
	return slope, intercept
}
