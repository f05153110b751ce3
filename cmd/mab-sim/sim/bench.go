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
	"github.com/0xsoniclabs/aida-mab/logger"
	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/0xsoniclabs/aida-mab/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// BenchCommand compares several policies on the same seeds.
var BenchCommand = cli.Command{
	Action: benchAction,
	Name:   "bench",
	Usage:  "benchmark policies against each other",
	Flags: []cli.Flag{
		&utils.FamilyFlag,
		&utils.MeansFlag,
		&utils.StdsFlag,
		&utils.SeedFlag,
		&utils.RunsFlag,
		&utils.StepsFlag,
		&utils.PolicyFlag,
		&utils.EpsilonFlag,
		&utils.ProbInitFlag,
		&utils.WarmupFlag,
		&utils.TsSuccessFlag,
		&utils.TsFailureFlag,
		&utils.WorkersFlag,
		&utils.OutputFlag,
		&utils.CompressFlag,
		&utils.ExperimentFlag,
		&utils.ResultDbFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The bench command simulates every --policy on the same --runs seeds in
parallel and prints the averaged outcome per policy. With --output the
runs are written as artifacts, with --db they are appended to a sqlite3
result database whose totals are printed as well.`,
}

// benchAction implements the bench command.
func benchAction(ctx *cli.Context) (err error) {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Bench")

	bench, err := cfg.BenchmarkConfig()
	if err != nil {
		return err
	}

	out, err := openOutputs(cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	results, err := simulation.Benchmark(ctx.Context, bench, out.sinks, log)
	if err != nil {
		return err
	}
	summaries, err := simulation.Summarize(results)
	if err != nil {
		return err
	}

	report := summaryTable(summaries)
	if out.db != nil {
		totals, err := out.db.Totals()
		if err != nil {
			return err
		}
		report += "\n" + totalsTable(totals)
	}
	log.Noticef("Best policy %v", best(summaries))

	text := func() string { return report }
	return utils.NewPrinters().
		AddPrinterToConsole(false, text).
		AddPrinterToFile(summaryFile(cfg), text).
		Print()
}

// best returns the label with the lowest mean total regret.
func best(summaries []simulation.Summary) string {
	if len(summaries) == 0 {
		return ""
	}
	b := 0
	for i, s := range summaries {
		if s.MeanTotalRegret() < summaries[b].MeanTotalRegret() {
			b = i
		}
	}
	return summaries[b].Label
}
