// Package viz renders a fitted forecaster's in-sample fit and future
// prediction to an HTML page via go-echarts: point forecast, bands, and
// an optional trend/seasonal component breakdown, kept as an inspection
// helper rather than a CLI entry point.
package viz

import (
	"io"
	"math"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/flowforge/tsforecast/forecast"
	"github.com/flowforge/tsforecast/series"
)

func handleNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// LineTSeries renders one or more named lines sharing a time axis, the
// first series gets a vertical mark line at forecastStartIdx separating
// history from forecast.
func LineTSeries(title string, seriesNames []string, t []time.Time, y [][]float64, forecastStartIdx int) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	lineData := make([][]opts.LineData, len(y))
	for i := range y {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := range y[i] {
			lineData[i] = append(lineData[i], opts.LineData{Value: handleNaN(y[i][j])})
		}
	}

	markLineOpts := []charts.SeriesOpts{
		charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{XAxis: forecastStartIdx}),
		charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Symbol:    []string{"none", "none"},
			Label:     &opts.Label{Show: opts.Bool(false)},
			LineStyle: &opts.LineStyle{Color: "black"},
		}),
	}

	line.SetXAxis(t)
	for i, name := range seriesNames {
		if i == 0 {
			line.AddSeries(name, lineData[i], markLineOpts...)
			continue
		}
		line.AddSeries(name, lineData[i])
	}
	return line
}

// LineForecast renders history, in-sample fit, and the forecast's
// point/lower/upper bands on one chart.
func LineForecast(title string, t []time.Time, actual, fitted []float64, forecastStartIdx int, fc *forecast.Forecast) *charts.Line {
	horizon := len(fc.Point)
	n := len(actual)

	pad := func(head []float64) []float64 {
		out := make([]float64, 0, n+horizon)
		out = append(out, head...)
		for len(out) < n {
			out = append(out, math.NaN())
		}
		return out
	}
	extend := func(tail []float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = math.NaN()
		}
		out = append(out, tail...)
		return out
	}

	actualSeries := pad(actual)
	fittedSeries := pad(fitted)
	pointSeries := extend(fc.Point)

	names := []string{"actual", "fitted", "forecast"}
	values := [][]float64{actualSeries, fittedSeries, pointSeries}

	if len(fc.Lower) > 0 && len(fc.Upper) > 0 {
		names = append(names, "lower", "upper")
		values = append(values, extend(fc.Lower), extend(fc.Upper))
	}

	return LineTSeries(title, names, t, values, forecastStartIdx)
}

// PlotFit writes an HTML page with a forecast chart and, if components is
// non-nil, a second chart breaking the fit into trend/seasonal pieces.
// It is a plain function over this module's data types rather than a
// Forecaster method, since forecast.Forecaster does not itself know how
// to render.
func PlotFit(w io.Writer, s *series.Series, fitted []float64, fc *forecast.Forecast, freq time.Duration, components_ *forecast.ModelComponents) error {
	future, err := s.MakeFuturePeriods(len(fc.Point), freq)
	if err != nil {
		return err
	}
	t := make([]time.Time, 0, s.Len()+len(future))
	t = append(t, s.T...)
	t = append(t, future...)

	page := components.NewPage()
	page.AddCharts(LineForecast("Forecast Fit", t, s.Y, fitted, s.Len(), fc))

	if components_ != nil {
		names := make([]string, 0, len(components_.Seasonal)+1)
		values := make([][]float64, 0, len(components_.Seasonal)+1)
		names = append(names, "trend")
		values = append(values, pad64(components_.Trend, len(t)))
		for period, seasonal := range components_.Seasonal {
			names = append(names, seasonalLabel(period))
			values = append(values, pad64(seasonal, len(t)))
		}
		page.AddCharts(LineTSeries("Forecast Components", names, t, values, s.Len()))
	}

	return page.Render(w)
}

func pad64(x []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(x) {
			out[i] = x[i]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func seasonalLabel(period int) string {
	return "seasonal_" + strconv.Itoa(period)
}
