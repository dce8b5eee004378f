// Package mfles implements the gradient-boosted additive decomposition
// engine: a baseline plus R boosting rounds, each round composing a trend
// sub-learner, a seasonal sub-learner, and an exponential-smoothing
// ensemble onto the residuals left behind by the rounds before it. Each
// round's artefacts are kept so the whole boosted sequence can be
// replayed forward during extrapolation.
package mfles

import (
	"fmt"

	"github.com/flowforge/tsforecast/decompose"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/logging"
)

// Config holds the full hyper-parameter set for one MFLES fit.
type Config struct {
	SeasonalPeriods []int

	MaxRounds  int
	TrendMethod decompose.TrendMethod
	FourierOrder int

	ESEnsembleSteps int
	MinAlpha        float64
	MaxAlpha        float64

	LRTrend float64
	LRSeason float64
	LRLevel  float64

	MovingMedians bool
	CapOutliers   bool
	OutlierCapFactor float64

	ProgressiveTrend      bool
	SequentialSeasonality bool

	// ConvergenceEpsilon, when > 0, stops boosting early once the relative
	// decrease in residual sum of squares between consecutive rounds falls
	// below this threshold.
	ConvergenceEpsilon float64

	// Logger receives a notice when boosting stops early on convergence.
	// Defaults to logging.NoOp when nil.
	Logger logging.Logger
}

// DefaultConfig returns the documented default hyper-parameters for the
// given seasonal periods.
func DefaultConfig(seasonalPeriods []int) Config {
	return Config{
		SeasonalPeriods:       seasonalPeriods,
		MaxRounds:             5,
		TrendMethod:           decompose.TrendOLS,
		FourierOrder:          5,
		ESEnsembleSteps:       20,
		MinAlpha:              0.1,
		MaxAlpha:              0.9,
		LRTrend:               0.3,
		LRSeason:              0.5,
		LRLevel:               0.8,
		MovingMedians:         false,
		CapOutliers:           false,
		OutlierCapFactor:      1.5,
		ProgressiveTrend:      true,
		SequentialSeasonality: true,
	}
}

// Validate fills unset fields with their defaults and rejects internally
// inconsistent configurations, the same Validate-then-default pattern the
// teacher's linearmodel.OLSOptions uses.
func (c *Config) Validate() error {
	if c.MaxRounds <= 0 {
		c.MaxRounds = 5
	}
	if c.FourierOrder <= 0 {
		c.FourierOrder = 5
	}
	if c.ESEnsembleSteps <= 0 {
		c.ESEnsembleSteps = 20
	}
	if c.MinAlpha <= 0 {
		c.MinAlpha = 0.1
	}
	if c.MaxAlpha <= 0 || c.MaxAlpha > 1 {
		c.MaxAlpha = 0.9
	}
	if c.MinAlpha >= c.MaxAlpha {
		return fmt.Errorf("min_alpha %.3f must be less than max_alpha %.3f: %w", c.MinAlpha, c.MaxAlpha, forecast.ErrInvalidConfiguration)
	}
	if c.LRTrend <= 0 {
		c.LRTrend = 0.3
	}
	if c.LRSeason <= 0 {
		c.LRSeason = 0.5
	}
	if c.LRLevel <= 0 {
		c.LRLevel = 0.8
	}
	if c.TrendMethod == "" {
		c.TrendMethod = decompose.TrendOLS
	}
	if c.CapOutliers && c.OutlierCapFactor <= 0 {
		c.OutlierCapFactor = 1.5
	}
	for _, p := range c.SeasonalPeriods {
		if p <= 0 {
			return fmt.Errorf("seasonal period must be positive, got %d: %w", p, forecast.ErrInvalidConfiguration)
		}
	}
	return nil
}

func (c Config) maxSeasonalPeriod() int {
	max := 0
	for _, p := range c.SeasonalPeriods {
		if p > max {
			max = p
		}
	}
	return max
}
