// Command forecastbench demonstrates the deployment model this module is
// designed for: one fit+predict task per series, dispatched across a
// work-stealing pool sized to the number of cores, with the core itself
// never spawning threads.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/profile"

	"github.com/flowforge/tsforecast/accuracy"
	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/mfles"
	"github.com/flowforge/tsforecast/series"
)

func main() {
	seriesCount := flag.Int("series", 200, "number of synthetic series to fit and forecast")
	seriesLen := flag.Int("length", 365, "length of each synthetic series")
	horizon := flag.Int("horizon", 14, "forecast horizon")
	workers := flag.Int("workers", runtime.NumCPU(), "worker pool size")
	cpuProfile := flag.Bool("cpuprofile", false, "wrap the batch in a pkg/profile CPU profile")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	batch := buildBatch(*seriesCount, *seriesLen)

	start := time.Now()
	results := runBatch(batch, *workers, *horizon)
	elapsed := time.Since(start)

	var totalMAE float64
	ok := 0
	for _, r := range results {
		if r.err != nil {
			slog.Warn("series fit/predict failed", "series", r.id, "error", r.err.Error())
			continue
		}
		totalMAE += r.holdoutMAE
		ok++
	}

	fmt.Printf("fit+predicted %d/%d series in %s using %d workers\n", ok, len(batch), elapsed, *workers)
	if ok > 0 {
		fmt.Printf("mean holdout MAE: %.4f\n", totalMAE/float64(ok))
	}
}

type seriesJob struct {
	id int
	s  *series.Series
}

type seriesResult struct {
	id         int
	holdoutMAE float64
	err        error
}

func buildBatch(n, length int) []seriesJob {
	jobs := make([]seriesJob, n)
	for i := 0; i < n; i++ {
		y := make([]float64, length)
		phase := float64(i) * 0.1
		for t := range y {
			y[t] = 100 + 10*math.Sin(2*math.Pi*float64(t)/7+phase) + float64(t)*0.05
		}
		s, err := series.New(y)
		if err != nil {
			continue
		}
		jobs[i] = seriesJob{id: i, s: s}
	}
	return jobs
}

// runBatch fits one MFLES model per series.Series on a bounded worker
// pool. Each Forecaster instance only ever touches its own series, so
// this fan-out is embarrassingly parallel; the core itself (mfles.Model)
// spawns no goroutines of its own.
func runBatch(jobs []seriesJob, workers, horizon int) []seriesResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]seriesResult, len(jobs))
	jobCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				results[idx] = fitAndScore(jobs[idx], horizon)
			}
		}()
	}

	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	return results
}

func fitAndScore(job seriesJob, horizon int) seriesResult {
	if job.s == nil || job.s.Len() <= horizon {
		return seriesResult{id: job.id, err: fmt.Errorf("series too short")}
	}

	splitAt := job.s.Len() - horizon
	train := job.s.Slice(0, splitAt)
	holdout := job.s.Slice(splitAt, job.s.Len())

	cfg := mfles.DefaultConfig([]int{7})
	model := mfles.New(cfg)

	ctx := context.Background()
	if err := model.Fit(ctx, train); err != nil {
		return seriesResult{id: job.id, err: err}
	}

	fc, err := model.Predict(ctx, horizon)
	if err != nil {
		return seriesResult{id: job.id, err: err}
	}

	return seriesResult{id: job.id, holdoutMAE: accuracy.MAE(holdout.Y, fc.Point)}
}

var _ forecast.Forecaster = (*mfles.Model)(nil)

func init() {
	if os.Getenv("FORECASTBENCH_QUIET") != "" {
		slog.SetLogLoggerLevel(slog.LevelError)
	}
}
