// Package metrics defines an injected instrumentation interface over
// github.com/prometheus/client_golang, recording Auto-selector
// candidate-evaluation counts and fit durations. It never touches a
// global registry itself: a caller that wants Prometheus metrics
// constructs a PrometheusRecorder and registers its collectors on its own
// prometheus.Registry, keeping this module's "no global mutable state"
// resource-model rule intact.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the instrumentation surface auto and cv call into.
// Implementations must be safe for concurrent use across independent
// per-series fit/predict tasks. auto and cv substitute NoOp for a nil
// Recorder, so callers that want no metrics may leave it nil or pass NoOp.
type Recorder interface {
	// CandidateEvaluated records one Auto-selector candidate outcome.
	CandidateEvaluated(selector string, failed bool)
	// FitDuration records the wall time of one Fit call.
	FitDuration(model string, d time.Duration)
}

type noop struct{}

func (noop) CandidateEvaluated(string, bool)    {}
func (noop) FitDuration(string, time.Duration) {}

// NoOp is a Recorder that discards every observation.
var NoOp Recorder = noop{}

// PrometheusRecorder implements Recorder over a caller-owned counter and
// histogram vector. Construct with NewPrometheusRecorder and register the
// returned collectors on your own prometheus.Registry; this package never
// calls prometheus.MustRegister itself.
type PrometheusRecorder struct {
	candidates *prometheus.CounterVec
	fitDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder builds the collector pair. Call Collectors() to
// fetch them for registration.
func NewPrometheusRecorder(namespace string) *PrometheusRecorder {
	return &PrometheusRecorder{
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_candidates_evaluated_total",
			Help:      "Count of Auto-selector candidates evaluated, by selector and outcome.",
		}, []string{"selector", "outcome"}),
		fitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_duration_seconds",
			Help:      "Wall time of a model Fit call, by model name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"model"}),
	}
}

// Collectors returns the collectors a caller should register on its own
// prometheus.Registry.
func (r *PrometheusRecorder) Collectors() []prometheus.Collector {
	return []prometheus.Collector{r.candidates, r.fitDuration}
}

func (r *PrometheusRecorder) CandidateEvaluated(selector string, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "failed"
	}
	r.candidates.WithLabelValues(selector, outcome).Inc()
}

func (r *PrometheusRecorder) FitDuration(model string, d time.Duration) {
	r.fitDuration.WithLabelValues(model).Observe(d.Seconds())
}
