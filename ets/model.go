package ets

import (
	"context"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/series"
)

// Model is a fitted exponential smoothing state-space model.
type Model struct {
	cfg Config

	alpha, beta, gamma, phi float64

	level  float64
	trend  float64
	season []float64 // circular buffer of length cfg.Period, most recent in season[n-1 mod m]

	fitted    []float64
	residuals []float64
	n         int

	logLik float64
	nParam int
}

// New constructs an unfitted ETS model for the given configuration.
func New(cfg Config) *Model {
	return &Model{cfg: cfg}
}

// Fit estimates smoothing parameters by maximizing the Gaussian
// likelihood of the one-step-ahead residuals via a bounded Nelder-Mead
// search (gonum/optimize).
func (m *Model) Fit(ctx context.Context, s *series.Series) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}
	if err := s.ValidateSeasonal(m.cfg.Period); err != nil {
		return err
	}
	if err := s.ValidateMinLength(10); err != nil {
		return err
	}

	nParams := 1
	hasTrend := m.cfg.Trend != TrendNone
	hasSeason := m.cfg.Season != SeasonNone
	hasDamped := m.cfg.Trend == TrendDampedAdd
	if hasTrend {
		nParams++
	}
	if hasSeason {
		nParams++
	}
	if hasDamped {
		nParams++
	}
	m.nParam = nParams

	x0 := make([]float64, nParams)
	for i := range x0 {
		x0[i] = 0.0 // maps to 0.5 through the sigmoid transform below
	}

	negLogLik := func(x []float64) float64 {
		if err := forecast.CheckContext(ctx); err != nil {
			return math.Inf(1)
		}
		params := unpackParams(x, hasTrend, hasSeason, hasDamped)
		ll, _, _, err := m.simulate(s.Y, params)
		if err != nil {
			return math.Inf(1)
		}
		return -ll
	}

	problem := optimize.Problem{Func: negLogLik}
	result, err := optimize.Minimize(problem, x0, &optimize.Settings{MajorIterations: 200}, &optimize.NelderMead{})
	if err != nil && result == nil {
		return forecast.ErrNumericalFailure
	}

	params := unpackParams(result.X, hasTrend, hasSeason, hasDamped)
	ll, fitted, residuals, simErr := m.simulate(s.Y, params)
	if simErr != nil || math.IsNaN(ll) || math.IsInf(ll, 0) {
		return forecast.ErrNumericalFailure
	}

	m.alpha, m.beta, m.gamma, m.phi = params.alpha, params.beta, params.gamma, params.phi
	m.fitted = fitted
	m.residuals = residuals
	m.logLik = ll
	m.n = s.Len()
	m.level, m.trend, m.season = m.finalState(s.Y, params)
	return nil
}

type etsParams struct {
	alpha, beta, gamma, phi float64
}

// unpackParams maps an unconstrained Nelder-Mead vector onto (0,1)-bounded
// smoothing parameters (and phi in (0.8, 0.98) for the damped case) via a
// logistic transform, so the unconstrained optimizer can be used for a
// bounded maximum-likelihood search.
func unpackParams(x []float64, hasTrend, hasSeason, hasDamped bool) etsParams {
	idx := 0
	p := etsParams{phi: 1.0}
	p.alpha = sigmoid(x[idx])
	idx++
	if hasTrend {
		p.beta = sigmoid(x[idx]) * p.alpha
		idx++
	}
	if hasSeason {
		p.gamma = sigmoid(x[idx]) * (1 - p.alpha)
		idx++
	}
	if hasDamped {
		p.phi = 0.8 + 0.18*sigmoid(x[idx])
		idx++
	}
	return p
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// simulate runs the one-step-ahead state-space recursion over y and
// returns the Gaussian log-likelihood, the in-sample fitted values, and
// the residuals.
func (m *Model) simulate(y []float64, p etsParams) (logLik float64, fitted, residuals []float64, err error) {
	n := len(y)
	period := m.cfg.Period
	if period < 1 {
		period = 1
	}

	level := y[0]
	trend := 0.0
	if len(y) > 1 {
		trend = y[1] - y[0]
	}
	season := make([]float64, period)
	if m.cfg.Season == SeasonMultiplicative {
		for i := range season {
			season[i] = 1
		}
	}

	fitted = make([]float64, n)
	residuals = make([]float64, n)

	var ssr float64
	for t := 0; t < n; t++ {
		sIdx := t % period
		mu := level
		if m.cfg.Trend != TrendNone {
			mu = level + p.phi*trend
		}

		var yhat float64
		switch m.cfg.Season {
		case SeasonAdditive:
			yhat = mu + season[sIdx]
		case SeasonMultiplicative:
			yhat = mu * season[sIdx]
		default:
			yhat = mu
		}

		fitted[t] = yhat

		var e float64
		switch m.cfg.Error {
		case ErrorMultiplicative:
			if yhat == 0 {
				return math.Inf(-1), nil, nil, forecast.ErrNumericalFailure
			}
			e = (y[t] - yhat) / yhat
		default:
			e = y[t] - yhat
		}
		residuals[t] = y[t] - yhat
		ssr += residuals[t] * residuals[t]

		newLevel := level
		newTrend := trend
		newSeason := season[sIdx]

		switch {
		case m.cfg.Error == ErrorAdditive && m.cfg.Season == SeasonMultiplicative && season[sIdx] != 0:
			newLevel = mu + p.alpha*e/season[sIdx]
		case m.cfg.Error == ErrorMultiplicative && m.cfg.Season == SeasonAdditive:
			newLevel = mu + p.alpha*mu*e
		case m.cfg.Error == ErrorMultiplicative:
			newLevel = mu * (1 + p.alpha*e)
		default:
			newLevel = mu + p.alpha*e
		}

		if m.cfg.Trend != TrendNone {
			switch {
			case m.cfg.Error == ErrorAdditive && m.cfg.Season == SeasonMultiplicative && season[sIdx] != 0:
				newTrend = p.phi*trend + p.beta*e/season[sIdx]
			case m.cfg.Error == ErrorMultiplicative:
				newTrend = p.phi*trend + p.beta*mu*e
			default:
				newTrend = p.phi*trend + p.beta*e
			}
		}

		if m.cfg.Season != SeasonNone {
			switch {
			case m.cfg.Error == ErrorAdditive && m.cfg.Season == SeasonAdditive:
				newSeason = season[sIdx] + p.gamma*e
			case m.cfg.Error == ErrorAdditive && m.cfg.Season == SeasonMultiplicative && mu != 0:
				newSeason = season[sIdx] + p.gamma*e/mu
			case m.cfg.Error == ErrorMultiplicative && m.cfg.Season == SeasonMultiplicative:
				newSeason = season[sIdx] * (1 + p.gamma*e)
			default:
				newSeason = season[sIdx] + p.gamma*mu*e
			}
		}

		level, trend, season[sIdx] = newLevel, newTrend, newSeason
	}

	if n == 0 {
		return math.Inf(-1), fitted, residuals, forecast.ErrInsufficientData
	}
	sigma2 := ssr / float64(n)
	if sigma2 <= 0 {
		sigma2 = 1e-12
	}
	ll := -0.5 * float64(n) * (math.Log(2*math.Pi) + math.Log(sigma2) + 1)
	return ll, fitted, residuals, nil
}

// finalState replays the recursion once more at the fitted parameters to
// recover the terminal level/trend/season state used for forecasting.
func (m *Model) finalState(y []float64, p etsParams) (level, trend float64, season []float64) {
	period := m.cfg.Period
	if period < 1 {
		period = 1
	}
	level = y[0]
	trend = 0
	if len(y) > 1 {
		trend = y[1] - y[0]
	}
	season = make([]float64, period)
	if m.cfg.Season == SeasonMultiplicative {
		for i := range season {
			season[i] = 1
		}
	}
	for t := 0; t < len(y); t++ {
		sIdx := t % period
		mu := level
		if m.cfg.Trend != TrendNone {
			mu = level + p.phi*trend
		}
		var yhat float64
		switch m.cfg.Season {
		case SeasonAdditive:
			yhat = mu + season[sIdx]
		case SeasonMultiplicative:
			yhat = mu * season[sIdx]
		default:
			yhat = mu
		}
		var e float64
		if m.cfg.Error == ErrorMultiplicative && yhat != 0 {
			e = (y[t] - yhat) / yhat
		} else {
			e = y[t] - yhat
		}

		newLevel, newTrend, newSeason := level, trend, season[sIdx]
		switch {
		case m.cfg.Error == ErrorAdditive && m.cfg.Season == SeasonMultiplicative && season[sIdx] != 0:
			newLevel = mu + p.alpha*e/season[sIdx]
		case m.cfg.Error == ErrorMultiplicative && m.cfg.Season == SeasonAdditive:
			newLevel = mu + p.alpha*mu*e
		case m.cfg.Error == ErrorMultiplicative:
			newLevel = mu * (1 + p.alpha*e)
		default:
			newLevel = mu + p.alpha*e
		}
		if m.cfg.Trend != TrendNone {
			switch {
			case m.cfg.Error == ErrorAdditive && m.cfg.Season == SeasonMultiplicative && season[sIdx] != 0:
				newTrend = p.phi*trend + p.beta*e/season[sIdx]
			case m.cfg.Error == ErrorMultiplicative:
				newTrend = p.phi*trend + p.beta*mu*e
			default:
				newTrend = p.phi*trend + p.beta*e
			}
		}
		if m.cfg.Season != SeasonNone {
			switch {
			case m.cfg.Error == ErrorAdditive && m.cfg.Season == SeasonAdditive:
				newSeason = season[sIdx] + p.gamma*e
			case m.cfg.Error == ErrorAdditive && m.cfg.Season == SeasonMultiplicative && mu != 0:
				newSeason = season[sIdx] + p.gamma*e/mu
			case m.cfg.Error == ErrorMultiplicative && m.cfg.Season == SeasonMultiplicative:
				newSeason = season[sIdx] * (1 + p.gamma*e)
			default:
				newSeason = season[sIdx] + p.gamma*mu*e
			}
		}
		level, trend, season[sIdx] = newLevel, newTrend, newSeason
	}
	return level, trend, season
}

// Predict extrapolates the terminal state forward by h steps.
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

	period := m.cfg.Period
	if period < 1 {
		period = 1
	}

	point := make([]float64, h)
	for i := 0; i < h; i++ {
		step := float64(i + 1)
		phiSum := step
		if m.cfg.Trend == TrendDampedAdd {
			phiSum = dampedSum(m.phi, i+1)
		}
		mu := m.level
		if m.cfg.Trend != TrendNone {
			mu = m.level + phiSum*m.trend
		}
		sIdx := (m.n + i) % period
		switch m.cfg.Season {
		case SeasonAdditive:
			point[i] = mu + m.season[sIdx]
		case SeasonMultiplicative:
			point[i] = mu * m.season[sIdx]
		default:
			point[i] = mu
		}
	}

	return &forecast.Forecast{Point: point, Fitted: m.fitted}, nil
}

func dampedSum(phi float64, h int) float64 {
	sum := 0.0
	p := phi
	for i := 0; i < h; i++ {
		sum += p
		p *= phi
	}
	return sum
}

// Name reports the model's ETS identifier, e.g. "ETS(A,A,N)".
func (m *Model) Name() string {
	return m.cfg.String()
}

// Residuals implements forecast.ResidualExposer.
func (m *Model) Residuals() []float64 {
	return m.residuals
}

// AIC implements forecast.AICExposer: 2k - 2ln(L), k = number of
// estimated smoothing parameters plus one for the estimated error
// variance.
func (m *Model) AIC() float64 {
	k := float64(m.nParam + 1)
	return 2*k - 2*m.logLik
}

// AICc is the small-sample-corrected AIC.
func (m *Model) AICc() float64 {
	k := float64(m.nParam + 1)
	n := float64(m.n)
	if n-k-1 <= 0 {
		return math.Inf(1)
	}
	return m.AIC() + (2*k*(k+1))/(n-k-1)
}

// BIC is the Bayesian information criterion.
func (m *Model) BIC() float64 {
	k := float64(m.nParam + 1)
	n := float64(m.n)
	return k*math.Log(n) - 2*m.logLik
}
