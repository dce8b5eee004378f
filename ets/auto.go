package ets

import (
	"context"
	"math"
	"sort"

	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/logging"
	"github.com/flowforge/tsforecast/series"
)

// AutoDiagnostics summarizes an AutoETS search: the count of candidate
// configurations fit successfully versus failed, and the configuration
// ultimately selected with its AICc.
type AutoDiagnostics struct {
	ModelsEvaluated int
	ModelsFailed    int
	Selected        Config
	SelectedAICc    float64
}

// AutoETS fits every admissible ETS structure for the given period,
// scores each candidate by AICc, and returns the best-fitting model along
// with search diagnostics. A candidate that fails to fit (non-finite
// AICc, numerical failure) is recorded as failed and skipped rather than
// aborting the search, matching every other Auto-* selector in this
// module.
func AutoETS(ctx context.Context, s *series.Series, period int) (*Model, AutoDiagnostics, error) {
	return autoETS(ctx, s, period, logging.NoOp)
}

// AutoETSWithLogger is AutoETS with an injected logging sink for
// candidate-fit failures.
func AutoETSWithLogger(ctx context.Context, s *series.Series, period int, logger logging.Logger) (*Model, AutoDiagnostics, error) {
	return autoETS(ctx, s, period, logging.OrDefault(logger))
}

func autoETS(ctx context.Context, s *series.Series, period int, logger logging.Logger) (*Model, AutoDiagnostics, error) {
	candidates := AllConfigs(period)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].String() < candidates[j].String()
	})

	var best *Model
	var bestAICc float64
	diag := AutoDiagnostics{}

	for _, cand := range candidates {
		if err := forecast.CheckContext(ctx); err != nil {
			return nil, diag, err
		}
		if err := cand.Validate(); err != nil {
			continue
		}

		m := New(cand)
		if err := m.Fit(ctx, s); err != nil {
			logger.Warn("autoets candidate failed to fit", "config", cand.String(), "error", err.Error())
			diag.ModelsFailed++
			continue
		}
		aicc := m.AICc()
		if math.IsNaN(aicc) || math.IsInf(aicc, 0) {
			logger.Warn("autoets candidate has non-finite AICc", "config", cand.String())
			diag.ModelsFailed++
			continue
		}
		diag.ModelsEvaluated++

		if best == nil || aicc < bestAICc {
			best = m
			bestAICc = aicc
		}
	}

	if best == nil {
		return nil, diag, forecast.ErrNumericalFailure
	}
	diag.Selected = best.cfg
	diag.SelectedAICc = bestAICc
	return best, diag, nil
}
