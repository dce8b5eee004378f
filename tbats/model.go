// Package tbats implements TBATS: Box-Cox transform, a damped local
// trend, trigonometric (Fourier) seasonal terms for possibly multiple
// non-nested periods, and an ARMA error correction on what remains. The
// Fourier seasonal terms reuse the decompose package's basis
// construction, and the ARMA error stage reuses this module's own arima
// package (fit on the post-seasonal residual) rather than a joint
// Kalman-filtered state space, which would need a general state-space
// solver this module does not otherwise carry.
package tbats

import (
	"context"
	"fmt"
	"math"

	"github.com/flowforge/tsforecast/arima"
	"github.com/flowforge/tsforecast/decompose"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/numerics"
	"github.com/flowforge/tsforecast/series"
)

// Config specifies one TBATS candidate structure.
type Config struct {
	SeasonalPeriods []int
	FourierOrders   []int // parallel to SeasonalPeriods; 0 means auto-cap

	Damped bool
	ARMAOrder arima.Order // fit on the trend+seasonal residual, D held at 0

	// BoxCoxLambda, when nil, is estimated from the data.
	BoxCoxLambda *float64
}

func (c Config) String() string {
	return fmt.Sprintf("TBATS(periods=%v, damped=%v, arma=(%d,%d))", c.SeasonalPeriods, c.Damped, c.ARMAOrder.P, c.ARMAOrder.Q)
}

// Validate rejects structurally invalid configurations.
func (c Config) Validate() error {
	for _, p := range c.SeasonalPeriods {
		if p <= 0 {
			return fmt.Errorf("seasonal period must be positive, got %d: %w", p, forecast.ErrInvalidConfiguration)
		}
	}
	return nil
}

// Model is a fitted TBATS model.
type Model struct {
	cfg Config

	lambda float64

	trendLevel, trendSlope, phi float64

	seasonalPattern map[int][]float64
	fourierOrder    map[int]int

	armaModel *arima.Model

	n         int
	fitted    []float64 // original scale
	residuals []float64
	logLik    float64
	nParam    int
}

func New(cfg Config) *Model {
	return &Model{cfg: cfg}
}

// Fit runs the Box-Cox -> damped trend -> trigonometric seasonal ->
// ARMA-error pipeline described in the package doc.
func (m *Model) Fit(ctx context.Context, s *series.Series) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}
	if err := forecast.CheckContext(ctx); err != nil {
		return err
	}
	maxPeriod := 0
	for _, p := range m.cfg.SeasonalPeriods {
		if p > maxPeriod {
			maxPeriod = p
		}
	}
	if err := s.ValidateMinLength(10 + 2*maxPeriod); err != nil {
		return err
	}

	for _, v := range s.Y {
		if v <= 0 {
			return fmt.Errorf("tbats requires strictly positive observations: %w", forecast.ErrInvalidConfiguration)
		}
	}

	if m.cfg.BoxCoxLambda != nil {
		m.lambda = *m.cfg.BoxCoxLambda
	} else {
		lambda, err := decompose.EstimateLambda(s.Y)
		if err != nil {
			return forecast.ErrNumericalFailure
		}
		m.lambda = lambda
	}

	transformed, err := decompose.BoxCox(s.Y, m.lambda)
	if err != nil {
		return forecast.ErrNumericalFailure
	}

	n := len(transformed)
	m.n = n

	phi := 1.0
	if m.cfg.Damped {
		phi = 0.95
	}
	level := transformed[0]
	slope := 0.0
	if n > 1 {
		slope = transformed[1] - transformed[0]
	}
	alpha, beta := 0.3, 0.1
	trendFitted := make([]float64, n)
	for t := 0; t < n; t++ {
		trendFitted[t] = level + phi*slope
		e := transformed[t] - trendFitted[t]
		newLevel := level + phi*slope + alpha*e
		newSlope := phi*slope + beta*e
		level, slope = newLevel, newSlope
	}
	m.trendLevel, m.trendSlope, m.phi = level, slope, phi

	residAfterTrend := make([]float64, n)
	for t := range residAfterTrend {
		residAfterTrend[t] = transformed[t] - trendFitted[t]
	}

	m.seasonalPattern = make(map[int][]float64, len(m.cfg.SeasonalPeriods))
	m.fourierOrder = make(map[int]int, len(m.cfg.SeasonalPeriods))

	seasonalFitted := make([]float64, n)
	remaining := append([]float64(nil), residAfterTrend...)
	for i, period := range m.cfg.SeasonalPeriods {
		maxOrder := 0
		if i < len(m.cfg.FourierOrders) {
			maxOrder = m.cfg.FourierOrders[i]
		}
		k := decompose.FourierOrder(period, maxOrder)
		design := decompose.FourierBasis(n, 0, float64(period), k)
		res := numerics.OLS(design, remaining)
		if len(res.Beta) == 0 || math.IsNaN(res.Beta[0]) {
			m.seasonalPattern[period] = make([]float64, period)
			m.fourierOrder[period] = k
			continue
		}
		fitted := numerics.Predict(design, res.Beta)
		for t := range seasonalFitted {
			seasonalFitted[t] += fitted[t]
			remaining[t] -= fitted[t]
		}
		m.seasonalPattern[period] = decompose.OneCyclePattern(fitted, period)
		m.fourierOrder[period] = k
	}

	residAfterSeasonal := remaining

	m.nParam = 2 + len(m.cfg.SeasonalPeriods)*2

	if m.cfg.ARMAOrder.P > 0 || m.cfg.ARMAOrder.Q > 0 {
		residSeries, serr := series.New(residAfterSeasonal)
		if serr != nil {
			return forecast.ErrNumericalFailure
		}
		armaCfg := arima.Config{Order: arima.Order{P: m.cfg.ARMAOrder.P, D: 0, Q: m.cfg.ARMAOrder.Q}}
		am := arima.New(armaCfg)
		if ferr := am.Fit(ctx, residSeries); ferr == nil {
			m.armaModel = am
			m.nParam += m.cfg.ARMAOrder.P + m.cfg.ARMAOrder.Q
		}
	}

	fittedTransformed := make([]float64, n)
	residuals := make([]float64, n)
	var ssr float64
	for t := 0; t < n; t++ {
		armaContribution := 0.0
		if m.armaModel != nil && t < len(m.armaModel.Residuals()) {
			armaContribution = residAfterSeasonal[t] - m.armaModel.Residuals()[t]
		}
		fittedTransformed[t] = trendFitted[t] + seasonalFitted[t] + armaContribution
		residuals[t] = transformed[t] - fittedTransformed[t]
		ssr += residuals[t] * residuals[t]
	}

	m.fitted = decompose.InverseBoxCox(fittedTransformed, m.lambda)
	m.residuals = make([]float64, n)
	for i := range m.residuals {
		m.residuals[i] = s.Y[i] - m.fitted[i]
	}

	sigma2 := ssr / float64(n)
	if sigma2 <= 0 {
		sigma2 = 1e-12
	}
	m.logLik = -0.5 * float64(n) * (math.Log(2*math.Pi) + math.Log(sigma2) + 1)

	return nil
}

// Predict extrapolates the damped trend, the trigonometric seasonal
// patterns, and (if fit) the ARMA error forward by h steps, then inverts
// the Box-Cox transform.
func (m *Model) Predict(ctx context.Context, h int) (*forecast.Forecast, error) {
	if err := forecast.CheckContext(ctx); err != nil {
		return nil, err
	}
	if m.fitted == nil {
		return nil, forecast.ErrNotFitted
	}
	if h <= 0 {
		return nil, forecast.ErrUnsupported
	}

	transformed := make([]float64, h)
	for i := 0; i < h; i++ {
		dampedSum := 0.0
		p := m.phi
		for k := 0; k <= i; k++ {
			dampedSum += p
			p *= m.phi
		}
		transformed[i] = m.trendLevel + dampedSum*m.trendSlope
	}

	for period, pattern := range m.seasonalPattern {
		startIdx := m.n % period
		seasonFwd := decompose.RepeatPattern(pattern, startIdx, h)
		for i := range transformed {
			transformed[i] += seasonFwd[i]
		}
	}

	if m.armaModel != nil {
		armaFc, err := m.armaModel.Predict(ctx, h)
		if err == nil {
			for i := range transformed {
				if i < len(armaFc.Point) {
					transformed[i] += armaFc.Point[i]
				}
			}
		}
	}

	point := decompose.InverseBoxCox(transformed, m.lambda)
	return &forecast.Forecast{Point: point, Fitted: m.fitted}, nil
}

func (m *Model) Name() string { return m.cfg.String() }

func (m *Model) Residuals() []float64 { return m.residuals }

func (m *Model) AIC() float64 {
	return 2*float64(m.nParam+1) - 2*m.logLik
}
