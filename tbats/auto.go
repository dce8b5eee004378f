package tbats

import (
	"context"

	"github.com/flowforge/tsforecast/arima"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/logging"
	"github.com/flowforge/tsforecast/series"
)

// AutoDiagnostics summarizes an AutoTBATS search over Fourier order and
// ARMA error order candidates, mirroring the shape of ets.AutoDiagnostics
// and arima.AutoDiagnostics.
type AutoDiagnostics struct {
	ModelsEvaluated int
	ModelsFailed    int
	Selected        Config
	SelectedAIC     float64
}

// AutoTBATS grid-searches Fourier order and a small set of ARMA error
// orders for the given seasonal periods, scoring each candidate by AIC
// and breaking ties deterministically by evaluation order (seasonal
// order candidates ascend, so the first-seen best wins ties exactly as
// AutoETS's sorted grid does).
func AutoTBATS(ctx context.Context, s *series.Series, periods []int) (*Model, AutoDiagnostics, error) {
	return autoTBATS(ctx, s, periods, logging.NoOp)
}

// AutoTBATSWithLogger is AutoTBATS with an injected logging sink for
// candidate-fit failures.
func AutoTBATSWithLogger(ctx context.Context, s *series.Series, periods []int, logger logging.Logger) (*Model, AutoDiagnostics, error) {
	return autoTBATS(ctx, s, periods, logging.OrDefault(logger))
}

func autoTBATS(ctx context.Context, s *series.Series, periods []int, logger logging.Logger) (*Model, AutoDiagnostics, error) {
	diag := AutoDiagnostics{}

	fourierCandidates := [][]int{
		make([]int, len(periods)),
	}
	for i := range periods {
		withOne := append([]int(nil), fourierCandidates[0]...)
		withOne[i] = 1
		fourierCandidates = append(fourierCandidates, withOne)
	}

	armaCandidates := []arima.Order{
		{P: 0, Q: 0},
		{P: 1, Q: 0},
		{P: 1, Q: 1},
	}

	var best *Model
	var bestAIC float64
	for _, fc := range fourierCandidates {
		for _, armaOrder := range armaCandidates {
			for _, damped := range []bool{false, true} {
				if err := forecast.CheckContext(ctx); err != nil {
					return nil, diag, err
				}
				cfg := Config{
					SeasonalPeriods: periods,
					FourierOrders:   fc,
					Damped:          damped,
					ARMAOrder:       armaOrder,
				}
				m := New(cfg)
				if err := m.Fit(ctx, s); err != nil {
					logger.Warn("autotbats candidate failed to fit", "config", cfg.String(), "error", err.Error())
					diag.ModelsFailed++
					continue
				}
				diag.ModelsEvaluated++
				aic := m.AIC()
				if best == nil || aic < bestAIC {
					best, bestAIC = m, aic
				}
			}
		}
	}

	if best == nil {
		return nil, diag, forecast.ErrNumericalFailure
	}
	diag.Selected = best.cfg
	diag.SelectedAIC = bestAIC
	return best, diag, nil
}
