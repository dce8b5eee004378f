// Package ensemble composes N independently-fit base forecasters into one
// combined prediction, under a selectable combination policy.
package ensemble

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/flowforge/tsforecast/accuracy"
	"github.com/flowforge/tsforecast/array"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/series"
)

// Policy selects how per-base forecasts are combined into one.
type Policy int

const (
	// Mean combines forecasts with uniform weight 1/N.
	Mean Policy = iota
	// Median combines forecasts element-wise by median.
	Median
	// WeightedAIC weights only bases exposing AIC, by softmax of -AIC/tau.
	WeightedAIC
	// WeightedAccuracy weights bases by softmax of -score/tau, scored on a
	// held-out tail reserved during Fit.
	WeightedAccuracy
)

// Config parameterizes an Ensemble.
type Config struct {
	Policy Policy

	// Temperature softens (> 1) or sharpens (< 1) the softmax used by
	// WeightedAIC and WeightedAccuracy. Defaults to 1 when <= 0.
	Temperature float64

	// HoldoutFraction is the trailing fraction of the training series
	// reserved for WeightedAccuracy scoring. Defaults to 0.2 when <= 0.
	HoldoutFraction float64

	// AccuracyMetric selects the held-out metric WeightedAccuracy scores
	// by; only "mae", "rmse", and "mape" are recognized, defaulting to mae.
	AccuracyMetric string
}

// Ensemble holds N base forecasters fit independently and combined at
// predict time according to Config.Policy.
type Ensemble struct {
	cfg   Config
	bases []forecast.Forecaster
	names []string

	weights []float64

	fitted []float64
}

// New constructs an Ensemble over the given named base forecasters.
func New(cfg Config, bases []forecast.Forecaster, names []string) *Ensemble {
	if cfg.Temperature <= 0 {
		cfg.Temperature = 1
	}
	if cfg.HoldoutFraction <= 0 {
		cfg.HoldoutFraction = 0.2
	}
	if cfg.AccuracyMetric == "" {
		cfg.AccuracyMetric = "mae"
	}
	return &Ensemble{cfg: cfg, bases: bases, names: names}
}

// Fit fits every base independently on s. For WeightedAccuracy, a
// pre-fit pass reserves the trailing HoldoutFraction of s, fits each base
// on the remaining head, and scores it on the held-out tail before the
// final fit on the full series.
func (e *Ensemble) Fit(ctx context.Context, s *series.Series) error {
	if len(e.bases) == 0 {
		return fmt.Errorf("ensemble requires at least one base forecaster: %w", forecast.ErrInvalidConfiguration)
	}

	switch e.cfg.Policy {
	case WeightedAIC:
		if err := e.fitBases(ctx, s); err != nil {
			return err
		}
		e.weights = e.weightsFromAIC()
	case WeightedAccuracy:
		scores, err := e.holdoutScores(ctx, s)
		if err != nil {
			return err
		}
		if err := e.fitBases(ctx, s); err != nil {
			return err
		}
		e.weights = softmaxFromScores(scores, e.cfg.Temperature)
	default:
		if err := e.fitBases(ctx, s); err != nil {
			return err
		}
		e.weights = uniformWeights(len(e.bases))
	}

	fitted, err := e.combineFitted()
	if err != nil {
		return err
	}
	e.fitted = fitted
	return nil
}

func (e *Ensemble) fitBases(ctx context.Context, s *series.Series) error {
	for i, b := range e.bases {
		if err := forecast.CheckContext(ctx); err != nil {
			return err
		}
		if err := b.Fit(ctx, s); err != nil {
			return fmt.Errorf("ensemble base %q: %w", e.names[i], err)
		}
	}
	return nil
}

func (e *Ensemble) holdoutScores(ctx context.Context, s *series.Series) ([]float64, error) {
	n := s.Len()
	holdoutN := int(float64(n) * e.cfg.HoldoutFraction)
	if holdoutN < 1 {
		holdoutN = 1
	}
	splitAt := n - holdoutN
	if splitAt < 2 {
		return uniformWeights(len(e.bases)), nil
	}
	head := s.Slice(0, splitAt)
	tail := s.Slice(splitAt, n)

	scores := make([]float64, len(e.bases))
	for i, b := range e.bases {
		if err := forecast.CheckContext(ctx); err != nil {
			return nil, err
		}
		probe := b
		if err := probe.Fit(ctx, head); err != nil {
			scores[i] = math.Inf(1)
			continue
		}
		fc, err := probe.Predict(ctx, tail.Len())
		if err != nil {
			scores[i] = math.Inf(1)
			continue
		}
		scores[i] = scoreByMetric(e.cfg.AccuracyMetric, tail.Y, fc.Point)
	}
	return scores, nil
}

func scoreByMetric(metric string, actual, predicted []float64) float64 {
	switch metric {
	case "rmse":
		return accuracy.RMSE(actual, predicted)
	case "mape":
		return accuracy.MAPE(actual, predicted)
	default:
		return accuracy.MAE(actual, predicted)
	}
}

func (e *Ensemble) weightsFromAIC() []float64 {
	aics := make([]float64, len(e.bases))
	any := false
	for i, b := range e.bases {
		if exposer, ok := b.(forecast.AICExposer); ok {
			aics[i] = exposer.AIC()
			any = true
		} else {
			aics[i] = math.Inf(1)
		}
	}
	if !any {
		return uniformWeights(len(e.bases))
	}
	return softmaxFromScores(aics, e.cfg.Temperature)
}

func softmaxFromScores(scores []float64, tau float64) []float64 {
	n := len(scores)
	weights := make([]float64, n)
	finite := false
	minScore := math.Inf(1)
	for _, sc := range scores {
		if !math.IsInf(sc, 0) && sc < minScore {
			minScore = sc
			finite = true
		}
	}
	if !finite {
		return uniformWeights(n)
	}
	var sum float64
	for i, sc := range scores {
		if math.IsInf(sc, 0) {
			weights[i] = 0
			continue
		}
		weights[i] = math.Exp(-(sc - minScore) / tau)
		sum += weights[i]
	}
	if sum <= 0 {
		return uniformWeights(n)
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

func uniformWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1 / float64(n)
	}
	return weights
}

// combineFitted recovers an ensemble-level in-sample fit by asking each
// base for a 1-step forecast, whose Fitted field carries its full
// in-sample fit, and combining those under the same policy as Predict.
func (e *Ensemble) combineFitted() ([]float64, error) {
	perBase := make([][]float64, len(e.bases))
	minLen := -1
	for i, b := range e.bases {
		fc, err := b.Predict(context.Background(), 1)
		if err != nil {
			return nil, err
		}
		perBase[i] = fc.Fitted
		if minLen == -1 || len(fc.Fitted) < minLen {
			minLen = len(fc.Fitted)
		}
	}
	return combineSeries(perBase, minLen, e.cfg.Policy, e.weights), nil
}

// combineSeries lays perBase (bases x time) out as a time x base array so
// each timestep's cross-base values are one row, then reduces each row by
// the selected policy.
func combineSeries(perBase [][]float64, n int, policy Policy, weights []float64) []float64 {
	rows := make([][]float64, n)
	for t := 0; t < n; t++ {
		rows[t] = make([]float64, len(perBase))
		for i := range perBase {
			rows[t][i] = perBase[i][t]
		}
	}
	byTime, err := array.New2D(rows)
	if err != nil {
		return make([]float64, n)
	}

	out := make([]float64, n)
	for t := 0; t < n; t++ {
		row, _ := byTime.GetRow(t)
		if policy == Median {
			sorted := append([]float64(nil), row...)
			sort.Float64s(sorted)
			mid := len(sorted) / 2
			if len(sorted)%2 == 0 {
				out[t] = (sorted[mid-1] + sorted[mid]) / 2
			} else {
				out[t] = sorted[mid]
			}
			continue
		}
		var sum float64
		for i, v := range row {
			sum += weights[i] * v
		}
		out[t] = sum
	}
	return out
}

// Predict combines each base's h-step forecast according to Config.Policy.
func (e *Ensemble) Predict(ctx context.Context, h int) (*forecast.Forecast, error) {
	if err := forecast.CheckContext(ctx); err != nil {
		return nil, err
	}
	individual, err := e.getIndividualForecasts(ctx, h)
	if err != nil {
		return nil, err
	}
	point := combineSeries(individual, h, e.cfg.Policy, e.weights)
	return &forecast.Forecast{Point: point, Fitted: e.fitted}, nil
}

// getIndividualForecasts returns each base's raw h-step point forecast,
// exposed for inspection of how the combined forecast was assembled.
func (e *Ensemble) getIndividualForecasts(ctx context.Context, h int) ([][]float64, error) {
	out := make([][]float64, len(e.bases))
	for i, b := range e.bases {
		fc, err := b.Predict(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("ensemble base %q: %w", e.names[i], err)
		}
		out[i] = fc.Point
	}
	return out, nil
}

// GetIndividualForecasts is the exported form callers use to inspect each
// base's contribution before combination.
func (e *Ensemble) GetIndividualForecasts(ctx context.Context, h int) (map[string][]float64, error) {
	raw, err := e.getIndividualForecasts(ctx, h)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]float64, len(raw))
	for i, name := range e.names {
		out[name] = raw[i]
	}
	return out, nil
}

func (e *Ensemble) Name() string {
	return "ensemble"
}

func (e *Ensemble) Residuals() []float64 {
	return nil
}
