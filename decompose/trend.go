package decompose

import "github.com/flowforge/tsforecast/numerics"

// TrendMethod selects the sub-learner used to fit a trend component.
type TrendMethod string

const (
	TrendOLS       TrendMethod = "ols"
	TrendSiegel    TrendMethod = "siegel"
	TrendPiecewise TrendMethod = "piecewise"
)

// Trend is the fitted result of a trend sub-learner: in-sample fitted
// values plus enough state to extrapolate forward.
type Trend struct {
	Method  TrendMethod
	Fitted  []float64
	Slope   float64
	Intercept float64

	// Piecewise-specific: per-segment slope/intercept, in index order. The
	// forecast extension uses the slope of the final segment.
	SegmentBounds []int
	SegmentSlope  []float64
	SegmentInter  []float64
}

// FitTrend fits a trend sub-learner of the given method to y (indexed 0..n-1).
func FitTrend(y []float64, method TrendMethod, nSegments int) Trend {
	n := len(y)
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i)
	}

	switch method {
	case TrendSiegel:
		slope, intercept := numerics.SiegelRegression(x, y)
		fitted := make([]float64, n)
		for i := range fitted {
			fitted[i] = intercept + slope*x[i]
		}
		return Trend{Method: TrendSiegel, Fitted: fitted, Slope: slope, Intercept: intercept}

	case TrendPiecewise:
		return fitPiecewiseLinear(y, nSegments)

	default:
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = []float64{1, x[i]}
		}
		res := numerics.OLS(rows, y)
		intercept, slope := res.Beta[0], res.Beta[1]
		fitted := numerics.Predict(rows, res.Beta)
		return Trend{Method: TrendOLS, Fitted: fitted, Slope: slope, Intercept: intercept}
	}
}

// fitPiecewiseLinear fits equal-width changepoint segments independently by
// OLS. The final segment's slope/intercept drive forecast extrapolation.
func fitPiecewiseLinear(y []float64, nSegments int) Trend {
	n := len(y)
	if nSegments < 1 {
		nSegments = 1
	}
	if nSegments > n {
		nSegments = n
	}

	segLen := n / nSegments
	if segLen < 1 {
		segLen = 1
	}

	fitted := make([]float64, n)
	bounds := make([]int, 0, nSegments)
	slopes := make([]float64, 0, nSegments)
	inters := make([]float64, 0, nSegments)

	start := 0
	for s := 0; s < nSegments; s++ {
		end := start + segLen
		if s == nSegments-1 || end > n {
			end = n
		}
		if end <= start {
			break
		}

		segY := y[start:end]
		rows := make([][]float64, len(segY))
		for i := range rows {
			rows[i] = []float64{1, float64(i)}
		}
		res := numerics.OLS(rows, segY)
		segFitted := numerics.Predict(rows, res.Beta)
		copy(fitted[start:end], segFitted)

		bounds = append(bounds, end)
		slopes = append(slopes, res.Beta[1])
		inters = append(inters, res.Beta[0])

		start = end
		if start >= n {
			break
		}
	}

	return Trend{
		Method:        TrendPiecewise,
		Fitted:        fitted,
		SegmentBounds: bounds,
		SegmentSlope:  slopes,
		SegmentInter:  inters,
	}
}

// Extrapolate extends the trend forward by h steps, continuous with the
// last in-sample fitted value.
func (t Trend) Extrapolate(n, h int) []float64 {
	out := make([]float64, h)
	switch t.Method {
	case TrendPiecewise:
		if len(t.SegmentSlope) == 0 {
			return out
		}
		lastIdx := len(t.SegmentSlope) - 1
		slope := t.SegmentSlope[lastIdx]
		lastFitted := 0.0
		if len(t.Fitted) > 0 {
			lastFitted = t.Fitted[len(t.Fitted)-1]
		}
		for i := 0; i < h; i++ {
			out[i] = lastFitted + slope*float64(i+1)
		}
	default:
		for i := 0; i < h; i++ {
			x := float64(n + i)
			out[i] = t.Intercept + t.Slope*x
		}
	}
	return out
}
