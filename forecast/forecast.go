// Package forecast defines the external contract every model family (MFLES,
// the state-space search models, the baselines, and the ensemble combiner)
// implements: a Forecaster that fits on a series.Series and predicts a
// horizon, plus the capability-detection interfaces callers use to fetch
// optional diagnostics without a type switch over every concrete model.
package forecast

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowforge/tsforecast/series"
)

// Forecaster is implemented by every fittable model in this module.
type Forecaster interface {
	// Fit trains the model on s. Implementations must respect ctx
	// cancellation at iteration checkpoints for models with an iterative
	// or search-based fit (MFLES boosting rounds, ETS/ARIMA/TBATS MLE,
	// Auto-* grid search).
	Fit(ctx context.Context, s *series.Series) error

	// Predict returns a Forecast for h steps beyond the fitted series. Fit
	// must be called first.
	Predict(ctx context.Context, h int) (*Forecast, error)

	// Name returns a short, human-readable model identifier (e.g. "mfles",
	// "auto-arima(2,1,1)").
	Name() string
}

// Forecast is the point/interval prediction a Forecaster returns for a
// requested horizon, plus the in-sample fitted values used to score
// residual-based diagnostics and accuracy metrics.
type Forecast struct {
	Point  []float64
	Lower  []float64
	Upper  []float64
	Fitted []float64

	// Level is the confidence level the Lower/Upper band was built at (0
	// when no interval was computed).
	Level float64
}

// ModelComponents is the optional decomposition a Forecaster may expose:
// the additive pieces of its in-sample fit. MFLES, the only model in this
// module that exposes one, reports its baseline as Level and its summed
// trend and seasonal contributions; its ES-ensemble contribution is not
// included, so the fields need not sum exactly to the fitted values.
type ModelComponents struct {
	Level     []float64
	Trend     []float64
	Seasonal  map[int][]float64
	Residual  []float64
}

// Capability-detection interfaces. A Forecaster may implement none, some,
// or all of these; callers type-assert rather than requiring them on the
// base interface, since e.g. a SeasonalNaive baseline has no AIC and a
// Theta model has no per-period seasonal decomposition.

// ResidualExposer is implemented by models that retain in-sample residuals.
type ResidualExposer interface {
	Residuals() []float64
}

// AICExposer is implemented by models fit through a likelihood (ETS, ARIMA,
// TBATS) and usable as a candidate in an information-criterion selector.
type AICExposer interface {
	AIC() float64
}

// ComponentExposer is implemented by models that can decompose their fit
// into level/trend/seasonal/residual pieces (in this module: MFLES).
type ComponentExposer interface {
	Components() ModelComponents
}

// Error taxonomy. Every Forecaster implementation returns one of these
// (wrapped with context via fmt.Errorf's %w) rather than an ad hoc error,
// so Auto-* selectors and the ensemble combiner can distinguish a
// candidate that is simply unsuitable for this series (skip and continue)
// from a caller-visible defect (propagate).
var (
	// ErrInvalidConfiguration means the model's configuration is internally
	// inconsistent (e.g. a negative seasonal period) independent of data.
	ErrInvalidConfiguration = errors.New("forecast: invalid configuration")

	// ErrInsufficientData means the series is too short, or too short for
	// the requested seasonal period(s), for this model to fit.
	ErrInsufficientData = errors.New("forecast: insufficient data")

	// ErrNumericalFailure means the fit was attempted but failed
	// numerically (singular design matrix, non-convergent optimizer,
	// non-invertible ARMA representation).
	ErrNumericalFailure = errors.New("forecast: numerical failure")

	// ErrCancelled means ctx was cancelled before the fit or predict
	// completed.
	ErrCancelled = errors.New("forecast: cancelled")

	// ErrUnsupported means the operation is not meaningful for this model
	// (e.g. Predict called with h <= 0, or a capability interface invoked
	// before Fit).
	ErrUnsupported = errors.New("forecast: unsupported")

	// ErrNotFitted means Predict (or a capability method) was called
	// before a successful Fit.
	ErrNotFitted = errors.New("forecast: model not fitted")
)

// CheckContext returns ErrCancelled (wrapping ctx.Err()) if ctx has been
// cancelled, else nil. Called at iteration checkpoints by every iterative
// fit loop in this module.
func CheckContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	default:
		return nil
	}
}
