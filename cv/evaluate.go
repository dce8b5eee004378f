package cv

import (
	"context"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/flowforge/tsforecast/accuracy"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/logging"
	tsmat "github.com/flowforge/tsforecast/mat"
	"github.com/flowforge/tsforecast/metrics"
	"github.com/flowforge/tsforecast/series"
)

// Factory constructs a fresh, unfit forecaster for one fold.
type Factory func() forecast.Forecaster

// FoldResult captures one fold's fit/predict/score outcome.
type FoldResult struct {
	Fold    Fold
	Metrics Metrics
	Err     error
}

// Metrics is the per-fold (or aggregated) accuracy scorecard.
type Metrics struct {
	MAE, MSE, RMSE, MAPE, SMAPE, MASE, R2 float64
}

func scoreFold(actual, predicted, trainHistory []float64, period int) Metrics {
	return Metrics{
		MAE:   accuracy.MAE(actual, predicted),
		MSE:   accuracy.MSE(actual, predicted),
		RMSE:  accuracy.RMSE(actual, predicted),
		MAPE:  accuracy.MAPE(actual, predicted),
		SMAPE: accuracy.SMAPE(actual, predicted),
		MASE:  accuracy.MASE(actual, predicted, trainHistory, period),
		R2:    accuracy.R2(actual, predicted),
	}
}

// Report aggregates per-fold metrics arithmetically (a fold-count
// normalized mean) alongside the raw per-fold detail.
type Report struct {
	Folds      []FoldResult
	Aggregate  Metrics
	FoldsOK    int
	FoldsError int
}

// Evaluate generates folds from s under cfg, fits a fresh forecaster per
// fold via factory, predicts cfg.Horizon steps, and scores against the
// held-out test window. seasonalPeriod feeds MASE's naive baseline; pass 1
// for non-seasonal series.
func Evaluate(ctx context.Context, s *series.Series, cfg Config, factory Factory, seasonalPeriod int) (Report, error) {
	folds, err := GenerateFolds(s, cfg)
	if err != nil {
		return Report{}, err
	}

	logger := logging.OrDefault(cfg.Logger)
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = metrics.NoOp
	}

	report := Report{Folds: make([]FoldResult, 0, len(folds))}
	var okRows [][]float64

	for i, fold := range folds {
		if err := forecast.CheckContext(ctx); err != nil {
			return report, err
		}

		fc := factory()
		result := FoldResult{Fold: fold}

		fitStart := time.Now()
		fitErr := fc.Fit(ctx, fold.Train)
		recorder.FitDuration(fc.Name(), time.Since(fitStart))
		if fitErr != nil {
			logger.Warn("cv fold fit failed", "fold", i, "train_start", fold.TrainStart, "train_end", fold.TrainEnd, "error", fitErr.Error())
			result.Err = fitErr
			report.FoldsError++
			report.Folds = append(report.Folds, result)
			continue
		}

		h := fold.TestEnd - fold.TestStart
		pred, err := fc.Predict(ctx, h)
		if err != nil {
			logger.Warn("cv fold predict failed", "fold", i, "test_start", fold.TestStart, "test_end", fold.TestEnd, "error", err.Error())
			result.Err = err
			report.FoldsError++
			report.Folds = append(report.Folds, result)
			continue
		}

		m := scoreFold(fold.Test.Y, pred.Point, fold.Train.Y, seasonalPeriod)
		result.Metrics = m
		report.Folds = append(report.Folds, result)
		report.FoldsOK++
		okRows = append(okRows, []float64{m.MAE, m.MSE, m.RMSE, m.MAPE, m.SMAPE, m.MASE, m.R2})
	}

	if len(okRows) > 0 {
		report.Aggregate = aggregateMetrics(okRows)
	}

	return report, nil
}

// aggregateMetrics lays the ok folds' metric columns out as a dense matrix
// (folds x metric) and takes each column's arithmetic mean, so adding a
// metric only means widening a row rather than threading another running
// sum through the fold loop.
func aggregateMetrics(rows [][]float64) Metrics {
	dense, err := tsmat.NewDenseFromArray(rows)
	if err != nil {
		return Metrics{}
	}
	nFolds, _ := dense.Dims()
	col := make([]float64, nFolds)
	mean := func(j int) float64 {
		mat.Col(col, j, dense)
		return stat.Mean(col, nil)
	}
	return Metrics{
		MAE:   mean(0),
		MSE:   mean(1),
		RMSE:  mean(2),
		MAPE:  mean(3),
		SMAPE: mean(4),
		MASE:  mean(5),
		R2:    mean(6),
	}
}
