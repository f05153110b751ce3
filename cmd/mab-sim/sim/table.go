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

package sim

import (
	"github.com/0xsoniclabs/aida-mab/recorder"
	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
)

// printer formats numbers with thousands separators.
var printer = message.NewPrinter(language.English)

func newTable(title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

// mostPulled returns the arm pulled most often and its share of all pulls.
func mostPulled(counts []float64) (int, float64) {
	if len(counts) == 0 {
		return -1, 0
	}
	arm := floats.MaxIdx(counts)
	total := floats.Sum(counts)
	if total == 0 {
		return arm, 0
	}
	return arm, counts[arm] / total
}

// summaryTable lists the averaged outcome of every policy.
func summaryTable(summaries []simulation.Summary) string {
	t := newTable("Summary", table.Row{"policy", "runs", "steps", "mean total reward", "mean total regret", "most pulled arm"})
	for _, s := range summaries {
		arm, share := mostPulled(s.MeanCounts)
		t.AppendRow(table.Row{
			s.Label,
			printer.Sprintf("%d", s.Runs),
			printer.Sprintf("%d", s.Steps()),
			printer.Sprintf("%.2f", s.MeanTotalReward()),
			printer.Sprintf("%.2f", s.MeanTotalRegret()),
			printer.Sprintf("%d (%.1f%%)", arm, 100*share),
		})
	}
	return t.Render()
}

// runTable lists every single run.
func runTable(results []simulation.Result) string {
	t := newTable("Runs", table.Row{"policy", "run", "seed", "total reward", "total regret", "most pulled arm"})
	for _, r := range results {
		counts := make([]float64, len(r.Counts))
		for i, c := range r.Counts {
			counts[i] = float64(c)
		}
		arm, share := mostPulled(counts)
		t.AppendRow(table.Row{
			r.Label,
			r.RunID,
			r.Seed,
			printer.Sprintf("%.0f", r.TotalReward()),
			printer.Sprintf("%.2f", r.TotalRegret()),
			printer.Sprintf("%d (%.1f%%)", arm, 100*share),
		})
	}
	return t.Render()
}

// tuneTable lists the score of every epsilon and marks the best one.
func tuneTable(res simulation.TuneResult) string {
	t := newTable("Epsilon sweep", table.Row{"epsilon", "mean total reward", ""})
	for i, eps := range res.Epsilons {
		mark := ""
		if i == res.Best {
			mark = "best"
		}
		t.AppendRow(table.Row{
			printer.Sprintf("%.3f", eps),
			printer.Sprintf("%.2f", res.Scores[i]),
			mark,
		})
	}
	return t.Render()
}

// totalsTable lists the per-policy totals stored in the result database.
func totalsTable(totals []recorder.Totals) string {
	t := newTable("Result database", table.Row{"policy", "runs", "mean total reward", "mean total regret"})
	for _, tot := range totals {
		t.AppendRow(table.Row{
			tot.Label,
			printer.Sprintf("%d", tot.Runs),
			printer.Sprintf("%.2f", tot.MeanTotalReward),
			printer.Sprintf("%.2f", tot.MeanTotalRegret),
		})
	}
	return t.Render()
}
