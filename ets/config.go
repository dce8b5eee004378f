// Package ets implements exponential smoothing state-space models: the
// eighteen admissible (Error, Trend, Season) combinations, each fit by
// bounded Nelder-Mead maximum likelihood via gonum/optimize. Grounded on
// the Holt-Winters triple exponential smoothing recursion in
// other_examples' amasser-dataframe-go forecast/holt_winters.go
// (initial level/trend/seasonal bootstrapping, additive recursion shape),
// generalized to the full ETS taxonomy with a multiplicative error
// option and information-criterion scoring in place of that example's
// fixed-parameter MAE/RMSE evaluation.
package ets

import (
	"fmt"

	"github.com/flowforge/tsforecast/forecast"
)

// ErrorType is the ETS error component.
type ErrorType string

const (
	ErrorAdditive       ErrorType = "A"
	ErrorMultiplicative ErrorType = "M"
)

// TrendType is the ETS trend component.
type TrendType string

const (
	TrendNone       TrendType = "N"
	TrendAdditive   TrendType = "A"
	TrendDampedAdd  TrendType = "Ad"
)

// SeasonType is the ETS seasonal component.
type SeasonType string

const (
	SeasonNone           SeasonType = "N"
	SeasonAdditive       SeasonType = "A"
	SeasonMultiplicative SeasonType = "M"
)

// Config names one of the eighteen admissible ETS structures.
type Config struct {
	Error  ErrorType
	Trend  TrendType
	Season SeasonType
	Period int
}

// AllConfigs enumerates the eighteen admissible (Error, Trend, Season)
// combinations for the given seasonal period (pass period <= 1 to
// enumerate only the six non-seasonal combinations).
func AllConfigs(period int) []Config {
	errors := []ErrorType{ErrorAdditive, ErrorMultiplicative}
	trends := []TrendType{TrendNone, TrendAdditive, TrendDampedAdd}
	seasons := []SeasonType{SeasonNone}
	if period > 1 {
		seasons = append(seasons, SeasonAdditive, SeasonMultiplicative)
	}

	var out []Config
	for _, e := range errors {
		for _, tr := range trends {
			for _, se := range seasons {
				out = append(out, Config{Error: e, Trend: tr, Season: se, Period: period})
			}
		}
	}
	return out
}

func (c Config) String() string {
	trendLabel := string(c.Trend)
	return fmt.Sprintf("ETS(%s,%s,%s)", c.Error, trendLabel, c.Season)
}

// Validate reports whether the configuration is internally consistent
// (seasonal components require period >= 2).
func (c Config) Validate() error {
	if c.Season != SeasonNone && c.Period < 2 {
		return fmt.Errorf("seasonal component %s requires period >= 2, got %d: %w", c.Season, c.Period, forecast.ErrInvalidConfiguration)
	}
	return nil
}
