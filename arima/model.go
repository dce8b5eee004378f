package arima

import (
	"context"
	"math"

	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/numerics"
	"github.com/flowforge/tsforecast/series"
)

// Model is a fitted ARIMA(p,d,q)(P,D,Q)[s] model, estimated by the
// Hannan-Rissanen two-stage procedure: a long autoregression whitens the
// differenced series into an innovation proxy, then AR and MA
// coefficients are estimated jointly by OLS against lagged values and
// lagged innovations. This is a practical, regression-based approximation
// to full conditional-sum-of-squares estimation, avoiding a nonlinear MA
// likelihood optimization. Of the seasonal order only the differencing
// order D is applied; the seasonal AR and MA orders P and Q are carried in
// Config (and printed by its String method) but are not estimated and do
// not enter the fit or the forecast.
type Model struct {
	cfg Config

	arCoef   []float64
	maCoef   []float64
	drift    float64
	mean     float64

	original  []float64
	diffed    []float64
	fitted    []float64 // on the differenced scale
	residuals []float64

	logLik float64
	nParam int
}

func New(cfg Config) *Model {
	return &Model{cfg: cfg}
}

// Fit differences the series d times at lag 1 and D times at the seasonal
// lag, then estimates AR/MA
// coefficients via Hannan-Rissanen on the differenced series.
func (m *Model) Fit(ctx context.Context, s *series.Series) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}
	minLen := 10 + m.cfg.totalDiff()*max(1, m.cfg.Seasonal.Period)
	if err := s.ValidateMinLength(minLen); err != nil {
		return err
	}
	if err := forecast.CheckContext(ctx); err != nil {
		return err
	}

	m.original = append([]float64(nil), s.Y...)
	diffed := difference(m.original, m.cfg.Order.D, 1)
	diffed = difference(diffed, m.cfg.Seasonal.D, max(1, m.cfg.Seasonal.Period))
	if len(diffed) < m.cfg.Order.P+m.cfg.Order.Q+5 {
		return forecast.ErrInsufficientData
	}
	m.diffed = diffed

	mean := numerics.Median(diffed)
	if m.cfg.IncludeDrift {
		m.mean = mean
	}

	centered := make([]float64, len(diffed))
	for i, v := range diffed {
		centered[i] = v - m.mean
	}

	innovations, err := longARInnovations(centered, longLagOrder(len(centered)))
	if err != nil {
		return forecast.ErrNumericalFailure
	}

	p, q := m.cfg.Order.P, m.cfg.Order.Q
	n := len(centered)
	start := max(p, q)
	if n-start < p+q+2 {
		return forecast.ErrInsufficientData
	}

	rows := make([][]float64, 0, n-start)
	targets := make([]float64, 0, n-start)
	for t := start; t < n; t++ {
		row := make([]float64, 0, p+q)
		for i := 1; i <= p; i++ {
			row = append(row, centered[t-i])
		}
		for j := 1; j <= q; j++ {
			row = append(row, innovations[t-j])
		}
		rows = append(rows, row)
		targets = append(targets, centered[t])
	}

	var coef []float64
	if p+q > 0 {
		res := numerics.OLS(rows, targets)
		if len(res.Beta) == 0 || math.IsNaN(res.Beta[0]) {
			return forecast.ErrNumericalFailure
		}
		coef = res.Beta
	}

	m.arCoef = enforceStationary(coef[:p])
	m.maCoef = enforceStationary(coef[p : p+q])
	m.nParam = p + q
	if m.cfg.IncludeDrift {
		m.nParam++
	}

	fitted := make([]float64, n)
	residuals := make([]float64, n)
	var ssr float64
	for t := 0; t < n; t++ {
		var pred float64
		for i := 1; i <= p && t-i >= 0; i++ {
			pred += m.arCoef[i-1] * centered[t-i]
		}
		for j := 1; j <= q && t-j >= 0; j++ {
			pred += m.maCoef[j-1] * residuals[t-j]
		}
		fitted[t] = pred + m.mean
		residuals[t] = diffed[t] - fitted[t]
		ssr += residuals[t] * residuals[t]
	}
	m.fitted = fitted
	m.residuals = residuals

	if n == 0 {
		return forecast.ErrInsufficientData
	}
	sigma2 := ssr / float64(n)
	if sigma2 <= 0 {
		sigma2 = 1e-12
	}
	m.logLik = -0.5 * float64(n) * (math.Log(2*math.Pi) + math.Log(sigma2) + 1)

	return nil
}

// Predict forecasts h steps ahead on the differenced scale, then
// reintegrates back to the original scale by reversing the differencing
// applied during Fit.
func (m *Model) Predict(ctx context.Context, h int) (*forecast.Forecast, error) {
	if err := forecast.CheckContext(ctx); err != nil {
		return nil, err
	}
	if m.diffed == nil {
		return nil, forecast.ErrNotFitted
	}
	if h <= 0 {
		return nil, forecast.ErrUnsupported
	}

	p, q := m.cfg.Order.P, m.cfg.Order.Q
	n := len(m.diffed)

	extended := append([]float64(nil), m.diffed...)
	extendedResid := append([]float64(nil), m.residuals...)
	centered := make([]float64, len(extended))
	for i, v := range extended {
		centered[i] = v - m.mean
	}

	diffedForecast := make([]float64, h)
	for i := 0; i < h; i++ {
		t := n + i
		var pred float64
		for lag := 1; lag <= p; lag++ {
			idx := t - lag
			if idx < len(centered) {
				pred += m.arCoef[lag-1] * centered[idx]
			}
		}
		for lag := 1; lag <= q; lag++ {
			idx := t - lag
			if idx < len(extendedResid) {
				pred += m.maCoef[lag-1] * extendedResid[idx]
			}
		}
		val := pred + m.mean
		diffedForecast[i] = val
		centered = append(centered, pred)
		extended = append(extended, val)
		extendedResid = append(extendedResid, 0)
	}

	point := reintegrate(m.original, diffedForecast, m.cfg.Order.D, m.cfg.Seasonal.D, max(1, m.cfg.Seasonal.Period))

	fittedOriginal := reintegrateFitted(m.original, m.fitted, m.cfg.Order.D, m.cfg.Seasonal.D, max(1, m.cfg.Seasonal.Period))

	return &forecast.Forecast{Point: point, Fitted: fittedOriginal}, nil
}

func (m *Model) Name() string { return m.cfg.String() }

func (m *Model) Residuals() []float64 { return m.residuals }

func (m *Model) AIC() float64 {
	return 2*float64(m.nParam+1) - 2*m.logLik
}

func (m *Model) AICc() float64 {
	k := float64(m.nParam + 1)
	n := float64(len(m.diffed))
	if n-k-1 <= 0 {
		return math.Inf(1)
	}
	return m.AIC() + (2*k*(k+1))/(n-k-1)
}
