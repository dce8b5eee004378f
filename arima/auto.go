package arima

import (
	"context"

	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/logging"
	"github.com/flowforge/tsforecast/series"
)

// AutoDiagnostics summarizes a stepwise AutoARIMA search.
type AutoDiagnostics struct {
	ModelsEvaluated int
	ModelsFailed    int
	Selected        Config
	SelectedAICc    float64
}

// AutoARIMA performs a Hyndman-Khandakar stepwise search: starting from the
// best of four small seed models, it tries single-order neighbor moves
// (p±1, q±1, and with/without drift) and accepts a move whenever it
// improves AICc, stopping when no neighbor improves on the current best.
// d and the seasonal order are held fixed during the search: the search
// covers p, q and drift, while d is either the caller-supplied value or,
// when d is negative, estimated once up front by the approximate unit-root
// test in EstimateDifferencingOrder (capped at 2).
func AutoARIMA(ctx context.Context, s *series.Series, d int, seasonal SeasonalOrder) (*Model, AutoDiagnostics, error) {
	return autoARIMA(ctx, s, d, seasonal, logging.NoOp)
}

// AutoARIMAWithLogger is AutoARIMA with an injected logging sink for
// candidate-fit failures.
func AutoARIMAWithLogger(ctx context.Context, s *series.Series, d int, seasonal SeasonalOrder, logger logging.Logger) (*Model, AutoDiagnostics, error) {
	return autoARIMA(ctx, s, d, seasonal, logging.OrDefault(logger))
}

func autoARIMA(ctx context.Context, s *series.Series, d int, seasonal SeasonalOrder, logger logging.Logger) (*Model, AutoDiagnostics, error) {
	diag := AutoDiagnostics{}

	if d < 0 {
		d = EstimateDifferencingOrder(s.Y, 2)
	}

	seed := []Config{
		{Order: Order{P: 2, D: d, Q: 2}, Seasonal: seasonal, IncludeDrift: d == 0},
		{Order: Order{P: 0, D: d, Q: 0}, Seasonal: seasonal, IncludeDrift: d == 0},
		{Order: Order{P: 1, D: d, Q: 0}, Seasonal: seasonal},
		{Order: Order{P: 0, D: d, Q: 1}, Seasonal: seasonal},
	}

	evalFn := func(cfg Config) (*Model, bool) {
		if err := forecast.CheckContext(ctx); err != nil {
			return nil, false
		}
		if err := cfg.Validate(); err != nil {
			diag.ModelsFailed++
			return nil, false
		}
		m := New(cfg)
		if err := m.Fit(ctx, s); err != nil {
			logger.Warn("autoarima candidate failed to fit", "config", cfg.String(), "error", err.Error())
			diag.ModelsFailed++
			return nil, false
		}
		diag.ModelsEvaluated++
		return m, true
	}

	var best *Model
	var bestAICc float64
	for _, cfg := range seed {
		m, ok := evalFn(cfg)
		if !ok {
			continue
		}
		aicc := m.AICc()
		if best == nil || aicc < bestAICc {
			best, bestAICc = m, aicc
		}
	}
	if best == nil {
		return nil, diag, forecast.ErrNumericalFailure
	}

	improved := true
	for improved {
		improved = false
		for _, cand := range neighbors(best.cfg) {
			m, ok := evalFn(cand)
			if !ok {
				continue
			}
			aicc := m.AICc()
			if aicc < bestAICc {
				best, bestAICc = m, aicc
				improved = true
			}
		}
	}

	diag.Selected = best.cfg
	diag.SelectedAICc = bestAICc
	return best, diag, nil
}

func neighbors(cfg Config) []Config {
	out := make([]Config, 0, 6)
	if cfg.Order.P > 0 {
		c := cfg
		c.Order.P--
		out = append(out, c)
	}
	c := cfg
	c.Order.P++
	out = append(out, c)

	if cfg.Order.Q > 0 {
		c := cfg
		c.Order.Q--
		out = append(out, c)
	}
	c = cfg
	c.Order.Q++
	out = append(out, c)

	c = cfg
	c.IncludeDrift = !c.IncludeDrift
	out = append(out, c)

	return out
}
