// Package arima implements an ARIMA(p,d,q) model with optional seasonal
// differencing, fit by a Hannan-Rissanen two-stage regression (an
// approximation to conditional-sum-of-squares), plus AutoARIMA's stepwise
// Hyndman-Khandakar order search. Grounded on the other_examples ARIMA
// reference (casperlundberg-colony-process-offloader-algorithm's
// pkg/learning/arima.go) for the differencing-then-CSS-regression shape,
// generalized from that file's fixed, caller-supplied order to a search
// over candidate orders scored by AICc.
package arima

import (
	"fmt"

	"github.com/flowforge/tsforecast/forecast"
)

// Order is a non-seasonal ARIMA(p,d,q) order triple.
type Order struct {
	P, D, Q int
}

// SeasonalOrder is a seasonal ARIMA(P,D,Q)[s] order quadruple.
type SeasonalOrder struct {
	P, D, Q, Period int
}

// Config fully specifies one ARIMA candidate.
type Config struct {
	Order         Order
	Seasonal      SeasonalOrder
	IncludeDrift  bool
}

func (c Config) String() string {
	if c.Seasonal.Period > 1 {
		return fmt.Sprintf("ARIMA(%d,%d,%d)(%d,%d,%d)[%d]", c.Order.P, c.Order.D, c.Order.Q, c.Seasonal.P, c.Seasonal.D, c.Seasonal.Q, c.Seasonal.Period)
	}
	return fmt.Sprintf("ARIMA(%d,%d,%d)", c.Order.P, c.Order.D, c.Order.Q)
}

// Validate rejects structurally invalid orders.
func (c Config) Validate() error {
	if c.Order.P < 0 || c.Order.D < 0 || c.Order.Q < 0 {
		return fmt.Errorf("negative order component: %w", forecast.ErrInvalidConfiguration)
	}
	if c.Seasonal.Period > 0 && c.Seasonal.Period < 2 && (c.Seasonal.P > 0 || c.Seasonal.D > 0 || c.Seasonal.Q > 0) {
		return fmt.Errorf("seasonal order requires period >= 2: %w", forecast.ErrInvalidConfiguration)
	}
	return nil
}

func (c Config) totalDiff() int {
	return c.Order.D + c.Seasonal.D
}
