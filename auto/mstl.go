package auto

import (
	"context"
	"math"
	"time"

	"github.com/flowforge/tsforecast/arima"
	"github.com/flowforge/tsforecast/decompose"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/logging"
	"github.com/flowforge/tsforecast/series"
)

// MSTLModel decomposes a series into trend, one seasonal component per
// period, and a remainder via STL, then models the remainder with an
// ARIMA error model so the remainder's own autocorrelation is captured
// rather than discarded. Grounded on the decompose package's STL
// implementation plus this module's arima package, composed the way
// MSTL composes "STL decomposition + ARIMA on the remainder" in the
// forecasting literature.
type MSTLModel struct {
	periods []int
	stl     decompose.STLResult
	arima   *arima.Model

	n      int
	fitted []float64
	residuals []float64
}

func (m *MSTLModel) Fit(ctx context.Context, s *series.Series) error {
	if err := forecast.CheckContext(ctx); err != nil {
		return err
	}
	maxPeriod := 0
	for _, p := range m.periods {
		if p > maxPeriod {
			maxPeriod = p
		}
	}
	if err := s.ValidateMinLength(2 * maxPeriod); err != nil {
		return err
	}

	opt := decompose.DefaultSTLOptions(m.periods)
	m.stl = decompose.Decompose(s.Y, opt)
	m.n = s.Len()

	remainderSeries, err := series.New(m.stl.Remainder)
	if err != nil {
		return forecast.ErrNumericalFailure
	}
	am := arima.New(arima.Config{Order: arima.Order{P: 1, D: 0, Q: 1}})
	if ferr := am.Fit(ctx, remainderSeries); ferr == nil {
		m.arima = am
	}

	m.fitted = make([]float64, m.n)
	m.residuals = make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		seasonalSum := 0.0
		for _, p := range m.periods {
			seasonalSum += m.stl.Seasonal[p][i]
		}
		armaContribution := 0.0
		if m.arima != nil && i < len(m.arima.Residuals()) {
			armaContribution = m.stl.Remainder[i] - m.arima.Residuals()[i]
		}
		m.fitted[i] = m.stl.Trend[i] + seasonalSum + armaContribution
		m.residuals[i] = s.Y[i] - m.fitted[i]
	}
	return nil
}

func (m *MSTLModel) Predict(ctx context.Context, h int) (*forecast.Forecast, error) {
	if err := forecast.CheckContext(ctx); err != nil {
		return nil, err
	}
	if m.fitted == nil {
		return nil, forecast.ErrNotFitted
	}
	if h <= 0 {
		return nil, forecast.ErrUnsupported
	}

	trendSlope := 0.0
	if m.n >= 2 {
		trendSlope = m.stl.Trend[m.n-1] - m.stl.Trend[m.n-2]
	}
	point := make([]float64, h)
	for i := 0; i < h; i++ {
		point[i] = m.stl.Trend[m.n-1] + float64(i+1)*trendSlope
		for _, p := range m.periods {
			pattern := decompose.OneCyclePattern(m.stl.Seasonal[p], p)
			startIdx := m.n % p
			point[i] += decompose.RepeatPattern(pattern, startIdx, h)[i]
		}
	}

	if m.arima != nil {
		armaFc, err := m.arima.Predict(ctx, h)
		if err == nil {
			for i := range point {
				if i < len(armaFc.Point) {
					point[i] += armaFc.Point[i]
				}
			}
		}
	}

	return &forecast.Forecast{Point: point, Fitted: m.fitted}, nil
}

func (m *MSTLModel) Name() string { return "mstl" }

func (m *MSTLModel) Residuals() []float64 { return m.residuals }

// AutoMSTL searches a small set of seasonal-period subsets (the full set,
// and each single period alone when more than one is given), scoring each
// candidate by in-sample residual sum of squares (a proxy AIC since MSTL
// has no single joint likelihood across its STL and ARIMA stages), and
// returns the best-scoring fitted model. Every candidate uses the same
// ARIMA(1,0,1) error model; the ARIMA error order is not searched.
func AutoMSTL(ctx context.Context, s *series.Series, periods []int) (*MSTLModel, Diagnostics, error) {
	return autoMSTL(ctx, s, periods, logging.NoOp)
}

// AutoMSTLWithLogger is AutoMSTL with an injected logging sink for
// candidate-fit failures, used by callers that want diagnostics surfaced
// through their own structured logger instead of discarded.
func AutoMSTLWithLogger(ctx context.Context, s *series.Series, periods []int, logger logging.Logger) (*MSTLModel, Diagnostics, error) {
	return autoMSTL(ctx, s, periods, logging.OrDefault(logger))
}

func autoMSTL(ctx context.Context, s *series.Series, periods []int, logger logging.Logger) (*MSTLModel, Diagnostics, error) {
	start := time.Now()
	diag := Diagnostics{}

	candidates := [][]int{periods}
	for _, p := range periods {
		if len(periods) > 1 {
			candidates = append(candidates, []int{p})
		}
	}

	var best *MSTLModel
	bestScore := math.Inf(1)
	for _, cand := range candidates {
		if err := forecast.CheckContext(ctx); err != nil {
			return nil, diag, err
		}
		m := &MSTLModel{periods: cand}
		if err := m.Fit(ctx, s); err != nil {
			logger.Warn("automstl candidate failed to fit", "periods", cand, "error", err.Error())
			diag.ModelsFailed++
			continue
		}
		diag.ModelsEvaluated++
		var ssr float64
		for _, r := range m.residuals {
			ssr += r * r
		}
		if ssr < bestScore {
			best, bestScore = m, ssr
		}
	}

	if best == nil {
		return nil, diag, forecast.ErrNumericalFailure
	}
	diag.BestScore = bestScore
	diag.WallTime = time.Since(start)
	return best, diag, nil
}
