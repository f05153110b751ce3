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

// RunCommand simulates a single policy on consecutive seeds.
var RunCommand = cli.Command{
	Action: runAction,
	Name:   "run",
	Usage:  "simulate one policy on a bandit",
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
		&logger.LogLevelFlag,
	},
	Description: `
The run command simulates the first --policy for --runs runs of --steps
steps each. Run i uses seed --seed + i. The per-run outcome is printed
and, with --output, the rewards, regrets and arm counts of every run are
written as artifacts.`,
}

// runAction implements the run command.
func runAction(ctx *cli.Context) (err error) {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Run")

	bench, err := cfg.BenchmarkConfig()
	if err != nil {
		return err
	}
	bench.Policies = bench.Policies[:1]

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

	report := func() string {
		return runTable(results) + "\n" + summaryTable(summaries)
	}
	return utils.NewPrinters().
		AddPrinterToConsole(false, report).
		AddPrinterToFile(summaryFile(cfg), report).
		Print()
}
