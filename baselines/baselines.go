// Package baselines implements the minimal Forecaster contract
// implementations used as ensemble members and cross-validation sanity
// checks: Naive, SeasonalNaive, simple moving average, and simple
// exponential smoothing.
package baselines

import (
	"context"

	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/numerics"
	"github.com/flowforge/tsforecast/series"
)

// Naive forecasts every horizon step as the last observed value.
type Naive struct {
	last      float64
	fitted    []float64
	residuals []float64
}

func (n *Naive) Fit(_ context.Context, s *series.Series) error {
	if err := s.ValidateMinLength(series.MinLength); err != nil {
		return err
	}
	n.fitted = make([]float64, s.Len())
	n.residuals = make([]float64, s.Len())
	n.fitted[0] = s.Y[0]
	for i := 1; i < s.Len(); i++ {
		n.fitted[i] = s.Y[i-1]
		n.residuals[i] = s.Y[i] - s.Y[i-1]
	}
	n.last = s.Y[s.Len()-1]
	return nil
}

func (n *Naive) Predict(_ context.Context, h int) (*forecast.Forecast, error) {
	if n.fitted == nil {
		return nil, forecast.ErrNotFitted
	}
	point := make([]float64, h)
	for i := range point {
		point[i] = n.last
	}
	return &forecast.Forecast{Point: point, Fitted: n.fitted}, nil
}

func (n *Naive) Residuals() []float64 { return n.residuals }
func (n *Naive) Name() string         { return "naive" }

// SeasonalNaive forecasts horizon step h as the value exactly one period
// back from the forecast origin, repeating forward.
type SeasonalNaive struct {
	Period int

	history   []float64
	fitted    []float64
	residuals []float64
}

func (sn *SeasonalNaive) Fit(_ context.Context, s *series.Series) error {
	if sn.Period < 1 {
		return forecast.ErrInvalidConfiguration
	}
	if err := s.ValidateSeasonal(sn.Period); err != nil {
		return err
	}
	n := s.Len()
	sn.fitted = make([]float64, n)
	sn.residuals = make([]float64, n)
	for i := 0; i < n; i++ {
		if i < sn.Period {
			sn.fitted[i] = s.Y[0]
		} else {
			sn.fitted[i] = s.Y[i-sn.Period]
		}
		sn.residuals[i] = s.Y[i] - sn.fitted[i]
	}
	sn.history = append([]float64(nil), s.Y...)
	return nil
}

func (sn *SeasonalNaive) Predict(_ context.Context, h int) (*forecast.Forecast, error) {
	if sn.history == nil {
		return nil, forecast.ErrNotFitted
	}
	n := len(sn.history)
	point := make([]float64, h)
	for i := 0; i < h; i++ {
		srcIdx := n - sn.Period + (i % sn.Period)
		if srcIdx < 0 {
			srcIdx = 0
		}
		point[i] = sn.history[srcIdx]
	}
	return &forecast.Forecast{Point: point, Fitted: sn.fitted}, nil
}

func (sn *SeasonalNaive) Residuals() []float64 { return sn.residuals }
func (sn *SeasonalNaive) Name() string         { return "seasonal-naive" }

// SMA forecasts with a trailing simple moving average of the given window.
type SMA struct {
	Window int

	history   []float64
	fitted    []float64
	residuals []float64
}

func (s *SMA) Fit(_ context.Context, ser *series.Series) error {
	if s.Window < 1 {
		return forecast.ErrInvalidConfiguration
	}
	if err := ser.ValidateMinLength(s.Window + 1); err != nil {
		return err
	}
	n := ser.Len()
	s.fitted = make([]float64, n)
	s.residuals = make([]float64, n)
	for i := 0; i < n; i++ {
		lo := i - s.Window
		if lo < 0 {
			lo = 0
		}
		if i == 0 {
			s.fitted[i] = ser.Y[0]
		} else {
			var sum float64
			for _, v := range ser.Y[lo:i] {
				sum += v
			}
			s.fitted[i] = sum / float64(i-lo)
		}
		s.residuals[i] = ser.Y[i] - s.fitted[i]
	}
	s.history = append([]float64(nil), ser.Y...)
	return nil
}

func (s *SMA) Predict(_ context.Context, h int) (*forecast.Forecast, error) {
	if s.history == nil {
		return nil, forecast.ErrNotFitted
	}
	n := len(s.history)
	lo := n - s.Window
	if lo < 0 {
		lo = 0
	}
	var sum float64
	for _, v := range s.history[lo:] {
		sum += v
	}
	level := sum / float64(n-lo)
	point := make([]float64, h)
	for i := range point {
		point[i] = level
	}
	return &forecast.Forecast{Point: point, Fitted: s.fitted}, nil
}

func (s *SMA) Residuals() []float64 { return s.residuals }
func (s *SMA) Name() string         { return "sma" }

// SES forecasts with simple exponential smoothing at a fixed alpha.
type SES struct {
	Alpha float64

	fitted    []float64
	residuals []float64
	level     float64
}

func (e *SES) Fit(_ context.Context, s *series.Series) error {
	if e.Alpha <= 0 || e.Alpha >= 1 {
		return forecast.ErrInvalidConfiguration
	}
	if err := s.ValidateMinLength(series.MinLength); err != nil {
		return err
	}
	n := s.Len()
	e.fitted = make([]float64, n)
	e.residuals = make([]float64, n)
	level := s.Y[0]
	e.fitted[0] = level
	for i := 1; i < n; i++ {
		e.fitted[i] = level
		e.residuals[i] = s.Y[i] - level
		level = e.Alpha*s.Y[i] + (1-e.Alpha)*level
	}
	e.level = level
	return nil
}

func (e *SES) Predict(_ context.Context, h int) (*forecast.Forecast, error) {
	if e.fitted == nil {
		return nil, forecast.ErrNotFitted
	}
	point := make([]float64, h)
	for i := range point {
		point[i] = e.level
	}
	return &forecast.Forecast{Point: point, Fitted: e.fitted}, nil
}

func (e *SES) Residuals() []float64 { return e.residuals }
func (e *SES) Name() string         { return "ses" }

// Theta implements the classical Theta method: decompose into a
// theta-2-line (double the local curvature of a linear trend, equivalent
// to SES on the detrended series) and a linear trend, recombine the
// extrapolated halves with equal weight.
type Theta struct {
	trendSlope, trendIntercept float64
	ses                        SES
	fitted                     []float64
	residuals                  []float64
	n                          int
}

func (th *Theta) Fit(ctx context.Context, s *series.Series) error {
	if err := s.ValidateMinLength(series.MinLength); err != nil {
		return err
	}
	n := s.Len()
	th.n = n

	x := make([]float64, n)
	rows := make([][]float64, n)
	for i := range x {
		x[i] = float64(i)
		rows[i] = []float64{1, x[i]}
	}
	res := numerics.OLS(rows, s.Y)
	th.trendIntercept, th.trendSlope = res.Beta[0], res.Beta[1]

	detrended := make([]float64, n)
	for i := range detrended {
		detrended[i] = s.Y[i] - (th.trendIntercept + th.trendSlope*x[i])
	}
	thetaLine := make([]float64, n)
	for i := range thetaLine {
		thetaLine[i] = 2 * detrended[i]
	}
	thetaSeries, err := series.New(thetaLine)
	if err != nil {
		return err
	}
	th.ses = SES{Alpha: 0.2}
	if err := th.ses.Fit(ctx, thetaSeries); err != nil {
		return err
	}

	th.fitted = make([]float64, n)
	th.residuals = make([]float64, n)
	for i := range th.fitted {
		trendComponent := th.trendIntercept + th.trendSlope*x[i]
		th.fitted[i] = 0.5*(trendComponent) + 0.5*(trendComponent+th.ses.fitted[i])
		th.residuals[i] = s.Y[i] - th.fitted[i]
	}
	return nil
}

func (th *Theta) Predict(ctx context.Context, h int) (*forecast.Forecast, error) {
	if th.fitted == nil {
		return nil, forecast.ErrNotFitted
	}
	sesFc, err := th.ses.Predict(ctx, h)
	if err != nil {
		return nil, err
	}
	point := make([]float64, h)
	for i := 0; i < h; i++ {
		trendComponent := th.trendIntercept + th.trendSlope*float64(th.n+i)
		point[i] = 0.5*trendComponent + 0.5*(trendComponent+sesFc.Point[i])
	}
	return &forecast.Forecast{Point: point, Fitted: th.fitted}, nil
}

func (th *Theta) Residuals() []float64 { return th.residuals }
func (th *Theta) Name() string         { return "theta" }
