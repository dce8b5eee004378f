package cv

import "github.com/flowforge/tsforecast/series"

// Fold is one train/test split of a series.
type Fold struct {
	TrainStart, TrainEnd int // [TrainStart, TrainEnd)
	TestStart, TestEnd   int // [TestStart, TestEnd)

	Train *series.Series
	Test  *series.Series
}

// GenerateFolds builds the fold sequence for s under cfg. Rolling fold i
// has train indices [i*Step, i*Step+InitialWindow); expanding fold i has
// train indices [0, InitialWindow+i*Step). Gap trims the tail of the
// training window before fitting; Embargo additionally trims training
// points that fall within Embargo points of the previous fold's test
// start. A fold whose test window would run past the series is skipped
// unless ClipHorizon truncates it instead; generation stops once a fold's
// nominal train window no longer fits.
func GenerateFolds(s *series.Series, cfg Config) ([]Fold, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var folds []Fold
	prevTestStart := -1

	for i := 0; cfg.MaxFolds <= 0 || i < cfg.MaxFolds; i++ {
		var trainStart, trainEnd int
		if cfg.Strategy == Expanding {
			trainStart = 0
			trainEnd = cfg.InitialWindow + i*cfg.Step
		} else {
			trainStart = i * cfg.Step
			trainEnd = trainStart + cfg.InitialWindow
		}
		if trainEnd > s.Len() {
			break
		}

		effectiveEnd := trainEnd - cfg.Gap
		if cfg.Embargo > 0 && prevTestStart >= 0 {
			embargoStart := prevTestStart - cfg.Embargo
			if embargoStart < effectiveEnd {
				effectiveEnd = embargoStart
			}
		}
		if effectiveEnd <= trainStart {
			continue
		}

		testStart := trainEnd
		testEnd := testStart + cfg.Horizon
		if testEnd > s.Len() {
			if !cfg.ClipHorizon {
				break
			}
			testEnd = s.Len()
			if testEnd <= testStart {
				break
			}
		}

		folds = append(folds, Fold{
			TrainStart: trainStart,
			TrainEnd:   effectiveEnd,
			TestStart:  testStart,
			TestEnd:    testEnd,
			Train:      s.Slice(trainStart, effectiveEnd),
			Test:       s.Slice(testStart, testEnd),
		})
		prevTestStart = testStart
	}

	return folds, nil
}
