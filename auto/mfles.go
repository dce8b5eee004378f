package auto

import (
	"context"
	"sort"
	"time"

	"github.com/flowforge/tsforecast/cv"
	"github.com/flowforge/tsforecast/decompose"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/logging"
	"github.com/flowforge/tsforecast/metrics"
	"github.com/flowforge/tsforecast/mfles"
	"github.com/flowforge/tsforecast/series"
)

// MFLESSearchSpace is the grid AutoMFLES searches, the cross product of
// trend method, Fourier order, and round count.
type MFLESSearchSpace struct {
	SeasonalPeriods []int
	TrendMethods    []decompose.TrendMethod
	FourierOrders   []int
	MaxRoundsOption []int

	CVHorizon   int
	CVStrategy  cv.Strategy

	// Logger receives a notice whenever a grid candidate fails to
	// cross-validate. Defaults to logging.NoOp when nil.
	Logger logging.Logger

	// Recorder receives a CandidateEvaluated observation per grid point.
	// Defaults to metrics.NoOp when nil.
	Recorder metrics.Recorder
}

// DefaultMFLESSearchSpace returns the documented default grid for
// AutoMFLES: two trend methods x two Fourier orders x three round counts.
func DefaultMFLESSearchSpace(periods []int, h int) MFLESSearchSpace {
	return MFLESSearchSpace{
		SeasonalPeriods: periods,
		TrendMethods:    []decompose.TrendMethod{decompose.TrendOLS, decompose.TrendSiegel},
		FourierOrders:   []int{3, 5},
		MaxRoundsOption: []int{3, 5, 7},
		CVHorizon:       h,
		CVStrategy:      cv.Rolling,
	}
}

// MFLESCandidate is one evaluated point in the AutoMFLES grid.
type MFLESCandidate struct {
	TrendMethod decompose.TrendMethod
	FourierOrder int
	MaxRounds    int
	CVMAE        float64
	Failed       bool
}

// AutoMFLES drives the grid trend_methods x fourier_orders x max_rounds:
// for each candidate it builds a factory closure, runs cv.Evaluate, and
// records the cross-validated MAE. The best candidate (lowest CV MAE,
// ties broken by grid order) is refit on the full series before being
// returned.
func AutoMFLES(ctx context.Context, s *series.Series, space MFLESSearchSpace) (*mfles.Model, Diagnostics, []MFLESCandidate, error) {
	start := time.Now()
	diag := Diagnostics{}
	logger := logging.OrDefault(space.Logger)
	recorder := space.Recorder
	if recorder == nil {
		recorder = metrics.NoOp
	}

	candidates := make([]MFLESCandidate, 0, len(space.TrendMethods)*len(space.FourierOrders)*len(space.MaxRoundsOption))

	initialWindow := s.Len() / 2
	if initialWindow < 2*space.CVHorizon {
		initialWindow = s.Len() - space.CVHorizon
	}
	cvCfg := cv.Config{
		Horizon:       space.CVHorizon,
		InitialWindow: initialWindow,
		Step:          space.CVHorizon,
		Strategy:      space.CVStrategy,
		MaxFolds:      3,
	}

	seasonalPeriod := 1
	if len(space.SeasonalPeriods) > 0 {
		seasonalPeriod = space.SeasonalPeriods[0]
	}

	methods := append([]decompose.TrendMethod(nil), space.TrendMethods...)
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })
	orders := append([]int(nil), space.FourierOrders...)
	sort.Ints(orders)
	rounds := append([]int(nil), space.MaxRoundsOption...)
	sort.Ints(rounds)

	var best *MFLESCandidate
	for _, method := range methods {
		for _, order := range orders {
			for _, r := range rounds {
				if err := forecast.CheckContext(ctx); err != nil {
					return nil, diag, candidates, err
				}

				cfg := mfles.DefaultConfig(space.SeasonalPeriods)
				cfg.TrendMethod = method
				cfg.FourierOrder = order
				cfg.MaxRounds = r

				factory := func() forecast.Forecaster {
					c := cfg
					return mfles.New(c)
				}

				report, err := cv.Evaluate(ctx, s, cvCfg, factory, seasonalPeriod)
				cand := MFLESCandidate{TrendMethod: method, FourierOrder: order, MaxRounds: r}
				if err != nil || report.FoldsOK == 0 {
					logger.Warn("automfles candidate failed cross-validation",
						"trend_method", method, "fourier_order", order, "max_rounds", r)
					recorder.CandidateEvaluated("automfles", true)
					cand.Failed = true
					diag.ModelsFailed++
					candidates = append(candidates, cand)
					continue
				}
				recorder.CandidateEvaluated("automfles", false)
				cand.CVMAE = report.Aggregate.MAE
				diag.ModelsEvaluated++
				candidates = append(candidates, cand)

				if best == nil || cand.CVMAE < best.CVMAE {
					c := cand
					best = &c
				}
			}
		}
	}

	if best == nil {
		return nil, diag, candidates, forecast.ErrNumericalFailure
	}

	finalCfg := mfles.DefaultConfig(space.SeasonalPeriods)
	finalCfg.TrendMethod = best.TrendMethod
	finalCfg.FourierOrder = best.FourierOrder
	finalCfg.MaxRounds = best.MaxRounds

	finalModel := mfles.New(finalCfg)
	if err := finalModel.Fit(ctx, s); err != nil {
		return nil, diag, candidates, err
	}

	diag.BestScore = best.CVMAE
	diag.WallTime = time.Since(start)

	return finalModel, diag, candidates, nil
}
