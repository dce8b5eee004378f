package forecast

import (
	"context"
	"math"

	"github.com/flowforge/tsforecast/series"
)

// BandEstimator wraps a Forecaster that only produces point forecasts and
// adds a residual-based uncertainty band, so any Forecaster in this
// module can be decorated with an interval without hand-rolling its own.
//
// The band is built from the fitted residual distribution: lower/upper
// widen linearly with the square root of the step index, approximating
// the growth of forecast-error variance under a random-walk assumption
// when the wrapped model exposes no analytic interval of its own.
type BandEstimator struct {
	inner Forecaster
	level float64

	residualStd float64
}

// NewBandEstimator wraps inner, producing an interval at the given
// confidence level (e.g. 0.95 for a 95% band).
func NewBandEstimator(inner Forecaster, level float64) *BandEstimator {
	if level <= 0 || level >= 1 {
		level = 0.8
	}
	return &BandEstimator{inner: inner, level: level}
}

// Fit fits the wrapped model and estimates the residual standard
// deviation used to widen the forecast band.
func (b *BandEstimator) Fit(ctx context.Context, s *series.Series) error {
	if err := b.inner.Fit(ctx, s); err != nil {
		return err
	}

	if exposer, ok := b.inner.(ResidualExposer); ok {
		b.residualStd = stddev(exposer.Residuals())
		return nil
	}

	// Fall back to a one-step-ahead in-sample forecast to derive residuals
	// when the wrapped model exposes none directly.
	fc, err := b.inner.Predict(ctx, 1)
	if err != nil || len(fc.Fitted) == 0 {
		b.residualStd = 0
		return nil
	}
	resid := make([]float64, 0, len(fc.Fitted))
	for i, yhat := range fc.Fitted {
		if i >= s.Len() {
			break
		}
		if !math.IsNaN(s.Y[i]) {
			resid = append(resid, s.Y[i]-yhat)
		}
	}
	b.residualStd = stddev(resid)
	return nil
}

// Predict returns the wrapped model's point forecast with a band scaled by
// zValue(level)*residualStd*sqrt(step).
func (b *BandEstimator) Predict(ctx context.Context, h int) (*Forecast, error) {
	fc, err := b.inner.Predict(ctx, h)
	if err != nil {
		return nil, err
	}

	z := zValue(b.level)
	lower := make([]float64, len(fc.Point))
	upper := make([]float64, len(fc.Point))
	for i, p := range fc.Point {
		width := z * b.residualStd * math.Sqrt(float64(i+1))
		lower[i] = p - width
		upper[i] = p + width
	}

	return &Forecast{
		Point:  fc.Point,
		Lower:  lower,
		Upper:  upper,
		Fitted: fc.Fitted,
		Level:  b.level,
	}, nil
}

// Name delegates to the wrapped model, annotated to indicate the band.
func (b *BandEstimator) Name() string {
	return b.inner.Name() + "+band"
}

func stddev(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	var ss float64
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	if n <= 1 {
		return 0
	}
	return math.Sqrt(ss / float64(n-1))
}

// zValue approximates the standard normal quantile for common two-sided
// confidence levels, rounding the level down to 0.99, 0.95, 0.90 or 0.80;
// any level below 0.80 gets z = 1.0 (roughly a 68% band). No full
// inverse-CDF solver is used.
func zValue(level float64) float64 {
	switch {
	case level >= 0.99:
		return 2.576
	case level >= 0.95:
		return 1.96
	case level >= 0.90:
		return 1.645
	case level >= 0.80:
		return 1.282
	default:
		return 1.0
	}
}
