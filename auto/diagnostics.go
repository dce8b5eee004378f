// Package auto implements the grid/stepwise Auto-selectors that are
// generic over a structural search rather than over one model family's
// internal state: AutoMFLES (grid search over trend method, Fourier
// order, and round count, scored by cross-validated MAE) and AutoMSTL
// (multiple-seasonal STL decomposition with a fixed ARIMA(1,0,1) error
// model, seasonal-period subset chosen by in-sample residual sum of
// squares).
package auto

import "time"

// Diagnostics summarizes one Auto-selector run, matching the shape of
// ets.AutoDiagnostics and arima.AutoDiagnostics so callers can treat every
// Auto-* result uniformly.
type Diagnostics struct {
	ModelsEvaluated int
	ModelsFailed    int
	BestScore       float64
	WallTime        time.Duration
}
