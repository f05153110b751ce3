// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package visualizer renders averaged simulation results as HTML charts.
package visualizer

import (
	"fmt"
	"io"
	"net/http"

	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const meanRewardRef = "mean-reward"
const cumulativeRewardRef = "cumulative-reward"
const cumulativeRegretRef = "cumulative-regret"
const armPullsRef = "arm-pulls"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>Multi-Armed Bandit Simulator</title>
  </head>
  <body>
    <h1>Multi-Armed Bandit Simulator</h1>
    <ul>
    <li> <h3> <a href="/` + meanRewardRef + `"> Mean Reward </a> </h3> </li>
    <li> <h3> <a href="/` + cumulativeRewardRef + `"> Cumulative Reward </a> </h3> </li>
    <li> <h3> <a href="/` + cumulativeRegretRef + `"> Cumulative Regret </a> </h3> </li>
    <li> <h3> <a href="/` + armPullsRef + `"> Arm Pulls </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

// globalOptions are shared by all charts.
func globalOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeChalk,
			PageTitle: title,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
	}
}

// convertCurve converts curve points to chart points.
func convertCurve(points [][2]float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(points))
	for _, pair := range points {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// newCurveChart creates a line chart with one series per policy label.
func newCurveChart(title, subtitle string, curves []curve) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(append(globalOptions(title, subtitle),
		charts.WithXAxisOpts(opts.XAxis{Name: "step", Type: "value"}),
	)...)
	for _, c := range curves {
		chart.AddSeries(c.label, convertCurve(c.points))
	}
	return chart
}

// convertArmLabels produces the arm names of the x axis.
func convertArmLabels(numArms int) []string {
	items := make([]string, numArms)
	for i := range items {
		items[i] = fmt.Sprintf("arm %d", i)
	}
	return items
}

// convertCounts produces the mean pull counts of one label.
func convertCounts(counts []float64) []opts.BarData {
	items := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		items = append(items, opts.BarData{Value: c})
	}
	return items
}

// newArmChart creates a bar chart of the mean pulls per arm.
func newArmChart(view *viewState) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions("Arm Pulls", "mean number of pulls per arm")...)
	bar.SetXAxis(convertArmLabels(view.numArms))
	for _, s := range view.summaries {
		bar.AddSeries(s.Label, convertCounts(s.MeanCounts))
	}
	return bar
}

func newMeanRewardChart(view *viewState) *charts.Line {
	return newCurveChart("Mean Reward", "reward per step averaged over runs", view.meanRewards)
}

func newCumulativeRewardChart(view *viewState) *charts.Line {
	return newCurveChart("Cumulative Reward", "averaged over runs", view.cumulativeRewards)
}

func newCumulativeRegretChart(view *viewState) *charts.Line {
	return newCurveChart("Cumulative Regret", "averaged over runs", view.cumulativeRegrets)
}

// renderChart returns a handler rendering the chart built from the current view.
func renderChart[C interface{ Render(io.Writer) error }](build func(*viewState) C) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := currentView()
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		_ = build(view).Render(w)
	}
}

// RenderReport writes all charts of the summaries as one HTML page.
func RenderReport(w io.Writer, summaries []simulation.Summary) error {
	view, err := buildViewState(summaries)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.PageTitle = "Multi-Armed Bandit Simulator"
	page.AddCharts(
		newMeanRewardChart(view),
		newCumulativeRewardChart(view),
		newCumulativeRegretChart(view),
		newArmChart(view),
	)
	return page.Render(w)
}

// NewHandler serves the index page and one page per chart.
func NewHandler(summaries []simulation.Summary) (http.Handler, error) {
	if err := setViewState(summaries); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", renderMain)
	mux.HandleFunc("/"+meanRewardRef, renderChart(newMeanRewardChart))
	mux.HandleFunc("/"+cumulativeRewardRef, renderChart(newCumulativeRewardChart))
	mux.HandleFunc("/"+cumulativeRegretRef, renderChart(newCumulativeRegretChart))
	mux.HandleFunc("/"+armPullsRef, renderChart(newArmChart))
	return mux, nil
}

// FireUpWeb visualizes the summaries with a local web-server.
func FireUpWeb(summaries []simulation.Summary, addr string) error {
	handler, err := NewHandler(summaries)
	if err != nil {
		return err
	}
	return http.ListenAndServe(":"+addr, handler)
}
