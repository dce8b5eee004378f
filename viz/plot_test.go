package viz

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/series/seriestest"
)

func TestPlotFitRendersNonEmptyHTML(t *testing.T) {
	n := 30
	y := seriestest.Linear(n, 10, 0.5)
	s := seriestest.Build(y, time.Hour)

	fitted := append([]float64(nil), y...)
	fc := &forecast.Forecast{
		Point: []float64{20, 20.5, 21},
		Lower: []float64{19, 19.5, 20},
		Upper: []float64{21, 21.5, 22},
	}

	var buf bytes.Buffer
	err := PlotFit(&buf, s, fitted, fc, time.Hour, &forecast.ModelComponents{
		Trend:    fitted,
		Seasonal: map[int][]float64{7: make([]float64, n)},
	})
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
	assert.Contains(t, buf.String(), "<html")
}

func TestLineTSeriesHandlesNaN(t *testing.T) {
	t0 := time.Now().Add(-time.Hour)
	times := []time.Time{t0, t0.Add(time.Hour), t0.Add(2 * time.Hour)}
	line := LineTSeries("test", []string{"a"}, times, [][]float64{{1, 2, 3}}, 2)
	assert.NotNil(t, line)
}
