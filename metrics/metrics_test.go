package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpDiscardsObservations(t *testing.T) {
	assert.NotPanics(t, func() {
		NoOp.CandidateEvaluated("automfles", true)
		NoOp.FitDuration("mfles", time.Millisecond)
	})
}

func TestPrometheusRecorderNeverSelfRegisters(t *testing.T) {
	rec := NewPrometheusRecorder("tsforecast_test")
	reg := prometheus.NewRegistry()
	for _, c := range rec.Collectors() {
		require.NoError(t, reg.Register(c))
	}

	rec.CandidateEvaluated("automfles", false)
	rec.CandidateEvaluated("automfles", true)
	rec.FitDuration("mfles", 10*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var sawCandidates, sawDuration bool
	for _, fam := range families {
		switch fam.GetName() {
		case "tsforecast_test_auto_candidates_evaluated_total":
			sawCandidates = true
			var total float64
			for _, m := range fam.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			assert.Equal(t, float64(2), total)
		case "tsforecast_test_fit_duration_seconds":
			sawDuration = true
			for _, m := range fam.GetMetric() {
				assert.Equal(t, uint64(1), m.GetHistogram().GetSampleCount())
			}
		}
	}
	assert.True(t, sawCandidates)
	assert.True(t, sawDuration)
}
