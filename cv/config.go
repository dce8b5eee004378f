// Package cv implements the rolling/expanding cross-validation framework:
// fold generation, per-fold fit/predict/score, and metric aggregation
// across folds.
package cv

import (
	"fmt"

	"github.com/flowforge/tsforecast/logging"
	"github.com/flowforge/tsforecast/metrics"
)

// Strategy selects how the training window evolves from fold to fold.
type Strategy int

const (
	// Rolling keeps the training window a fixed size, sliding forward.
	Rolling Strategy = iota
	// Expanding grows the training window by Step each fold.
	Expanding
)

func (s Strategy) String() string {
	switch s {
	case Rolling:
		return "rolling"
	case Expanding:
		return "expanding"
	default:
		return "unknown"
	}
}

// Config parameterizes fold generation.
type Config struct {
	Horizon       int
	InitialWindow int
	Step          int
	Strategy      Strategy

	// Gap drops the last Gap training points before the test window,
	// simulating ETL latency between data arrival and availability.
	Gap int

	// Embargo excludes the Embargo points immediately preceding the
	// previous fold's test window from the current training window,
	// preventing label overlap across folds of a rolling-target series.
	Embargo int

	MaxFolds int

	// ClipHorizon truncates a trailing fold's test window to whatever
	// remains of the series instead of skipping it.
	ClipHorizon bool

	// Logger receives a notice whenever a fold's fit or predict fails.
	// Defaults to logging.NoOp when nil.
	Logger logging.Logger

	// Recorder receives per-fold fit duration observations. Defaults to
	// metrics.NoOp when nil.
	Recorder metrics.Recorder
}

// Validate rejects structurally invalid configurations.
func (c Config) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("cv: horizon must be positive, got %d", c.Horizon)
	}
	if c.InitialWindow <= 0 {
		return fmt.Errorf("cv: initial window must be positive, got %d", c.InitialWindow)
	}
	if c.Step <= 0 {
		return fmt.Errorf("cv: step must be positive, got %d", c.Step)
	}
	if c.Gap < 0 || c.Embargo < 0 {
		return fmt.Errorf("cv: gap and embargo must be non-negative")
	}
	return nil
}
