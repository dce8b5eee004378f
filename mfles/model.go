package mfles

import (
	"context"
	"math"

	"github.com/flowforge/tsforecast/decompose"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/logging"
	"github.com/flowforge/tsforecast/numerics"
	"github.com/flowforge/tsforecast/series"
)

// round is the persisted artefact set for one boosting round: the trend
// sub-learner fit, the seasonal sub-learner fit(s) for whichever period(s)
// this round touched, and the ES ensemble fit. Every field needed to
// extrapolate the round forward without re-fitting is kept here.
type round struct {
	trend    decompose.Trend
	seasonal []seasonalRound
	es       esResult
}

// Model is the MFLES gradient-boosted decomposition engine.
type Model struct {
	cfg Config

	n        int
	baselineVal []float64
	rounds   []round

	fitted    []float64
	residuals []float64

	movingWindow int
}

// New constructs an MFLES model. Call Validate via Fit; New performs no
// validation itself so zero-value Config fields can still be defaulted by
// Fit.
func New(cfg Config) *Model {
	return &Model{cfg: cfg}
}

// Fit runs the boosting loop described in the package doc: initialize with
// the baseline, then for each round fit a trend sub-learner, a seasonal
// sub-learner, and an ES ensemble onto the current residuals, each scaled
// by its learning rate and added to the cumulative fit.
func (m *Model) Fit(ctx context.Context, s *series.Series) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}
	if s.Len() < series.MinLength {
		return s.ValidateMinLength(series.MinLength)
	}

	n := s.Len()
	m.n = n

	if outliers := s.OutlierIndices(0.25, 0.75, 1.5); len(outliers) > 0 {
		logging.OrDefault(m.cfg.Logger).Info("mfles fitting series with Tukey outliers present", "count", len(outliers))
	}

	maxPeriod := m.cfg.maxSeasonalPeriod()

	degenerate := maxPeriod > 0 && n < 2*maxPeriod

	window := 2 * maxPeriod
	m.movingWindow = window
	m.baselineVal = baseline(s.Y, m.cfg.MovingMedians, window)

	cumulative := make([]float64, n)
	copy(cumulative, m.baselineVal)
	residuals := make([]float64, n)
	for i := range residuals {
		residuals[i] = s.Y[i] - cumulative[i]
	}

	maxRounds := m.cfg.MaxRounds
	if degenerate {
		maxRounds = 1
	}

	rounds := make([]round, 0, maxRounds)
	prevRSS := math.Inf(1)

	periods := m.cfg.SeasonalPeriods

	for r := 1; r <= maxRounds; r++ {
		if err := forecast.CheckContext(ctx); err != nil {
			return err
		}

		trendMethod := m.cfg.TrendMethod
		if m.cfg.ProgressiveTrend {
			switch {
			case r == 1:
				trendMethod = "" // intercept-only: handled below
			case r <= 4:
				trendMethod = decompose.TrendOLS
			default:
				trendMethod = m.cfg.TrendMethod
			}
		}

		var tr decompose.Trend
		if trendMethod == "" {
			med := numerics.Median(residuals)
			fitted := make([]float64, n)
			for i := range fitted {
				fitted[i] = med
			}
			tr = decompose.Trend{Method: decompose.TrendOLS, Fitted: fitted, Intercept: med, Slope: 0}
		} else if degenerate {
			tr = decompose.FitTrend(residuals, decompose.TrendOLS, 1)
		} else {
			nSegments := 3
			tr = decompose.FitTrend(residuals, trendMethod, nSegments)
		}

		for i := range cumulative {
			cumulative[i] += m.cfg.LRTrend * tr.Fitted[i]
			residuals[i] = s.Y[i] - cumulative[i]
		}

		var seasonalFits []seasonalRound
		if !degenerate && len(periods) > 0 {
			if m.cfg.SequentialSeasonality {
				period := periods[(r-1)%len(periods)]
				seasonalFits = []seasonalRound{fitSeasonalPeriod(residuals, period, m.cfg.FourierOrder)}
			} else {
				seasonalFits = fitSeasonalStacked(residuals, periods, m.cfg.FourierOrder)
			}
			for _, sf := range seasonalFits {
				for i := range cumulative {
					cumulative[i] += m.cfg.LRSeason * sf.fitted[i]
					residuals[i] = s.Y[i] - cumulative[i]
				}
			}
		}

		es := esEnsemble(residuals, m.cfg.ESEnsembleSteps, m.cfg.MinAlpha, m.cfg.MaxAlpha)
		for i := range cumulative {
			cumulative[i] += m.cfg.LRLevel * es.fitted[i]
			residuals[i] = s.Y[i] - cumulative[i]
		}

		rounds = append(rounds, round{trend: tr, seasonal: seasonalFits, es: es})

		if m.cfg.ConvergenceEpsilon > 0 {
			rss := sumSquares(residuals)
			if prevRSS > 0 && !math.IsInf(prevRSS, 1) {
				relImprovement := (prevRSS - rss) / prevRSS
				if relImprovement < m.cfg.ConvergenceEpsilon {
					logging.OrDefault(m.cfg.Logger).Info("mfles boosting converged early",
						"round", r, "max_rounds", maxRounds, "rel_improvement", relImprovement)
					prevRSS = rss
					break
				}
			}
			prevRSS = rss
		}
	}

	m.rounds = rounds
	m.fitted = cumulative
	m.residuals = residuals
	return nil
}

// Predict extends the baseline, every round's trend, every round's
// seasonal pattern(s), and every round's ES level forward by h steps.
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

	// fitted + residual reproduces the training values.
	trainY := make([]float64, m.n)
	for i := range trainY {
		trainY[i] = m.fitted[i] + m.residuals[i]
	}
	out := baselineExtrapolate(trainY, m.cfg.MovingMedians, m.movingWindow, h)

	for _, rd := range m.rounds {
		trendFwd := rd.trend.Extrapolate(m.n, h)
		for i := range out {
			out[i] += m.cfg.LRTrend * trendFwd[i]
		}

		for _, sf := range rd.seasonal {
			if sf.strength <= 0 || len(sf.pattern) == 0 {
				continue
			}
			startIdx := m.n % sf.period
			seasonFwd := decompose.RepeatPattern(sf.pattern, startIdx, h)
			for i := range out {
				out[i] += m.cfg.LRSeason * seasonFwd[i]
			}
		}

		for i := range out {
			out[i] += m.cfg.LRLevel * rd.es.level
		}
	}

	if m.cfg.CapOutliers {
		lo, hi := capBounds(trainY, m.cfg.OutlierCapFactor)
		for i := range out {
			if out[i] < lo {
				out[i] = lo
			}
			if out[i] > hi {
				out[i] = hi
			}
		}
	}

	return &forecast.Forecast{Point: out, Fitted: append([]float64(nil), m.fitted...)}, nil
}

// Name returns a short model identifier.
func (m *Model) Name() string {
	return "mfles"
}

// Residuals implements forecast.ResidualExposer.
func (m *Model) Residuals() []float64 {
	return m.residuals
}

// Components implements forecast.ComponentExposer, summing every round's
// trend and seasonal contributions into the additive decomposition.
func (m *Model) Components() forecast.ModelComponents {
	n := m.n
	trend := make([]float64, n)
	seasonal := make(map[int][]float64)

	for _, rd := range m.rounds {
		for i := range trend {
			trend[i] += m.cfg.LRTrend * rd.trend.Fitted[i]
		}
		for _, sf := range rd.seasonal {
			if _, ok := seasonal[sf.period]; !ok {
				seasonal[sf.period] = make([]float64, n)
			}
			for i := range seasonal[sf.period] {
				seasonal[sf.period][i] += m.cfg.LRSeason * sf.fitted[i]
			}
		}
	}

	return forecast.ModelComponents{
		Level:    append([]float64(nil), m.baselineVal...),
		Trend:    trend,
		Seasonal: seasonal,
		Residual: append([]float64(nil), m.residuals...),
	}
}

func sumSquares(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return s
}

// capBounds returns the value range of trainFitted (Predict passes the
// training values) expanded by factor, used to clip forecasts when outlier
// capping is enabled.
func capBounds(trainFitted []float64, factor float64) (lo, hi float64) {
	if len(trainFitted) == 0 {
		return math.Inf(-1), math.Inf(1)
	}
	lo, hi = trainFitted[0], trainFitted[0]
	for _, v := range trainFitted {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	return lo - factor*span, hi + factor*span
}
