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

package utils

import (
	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/urfave/cli/v2"
)

var (
	FamilyFlag = cli.StringFlag{
		Name:  "family",
		Usage: "reward distribution of the arms (\"bernoulli\", \"gaussian\", \"binomial\")",
		Value: string(bandit.BernoulliFamily),
	}
	MeansFlag = cli.Float64SliceFlag{
		Name:    "means",
		Aliases: []string{"arms"},
		Usage:   "true mean of every arm, one value per arm",
		Value:   cli.NewFloat64Slice(bandit.BenchmarkMeans...),
	}
	StdsFlag = cli.Float64SliceFlag{
		Name:  "stds",
		Usage: "standard deviation of every arm of a gaussian bandit",
	}
	SeedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed of the first run; run i uses seed+i",
		Value: 1,
	}
	RunsFlag = cli.IntFlag{
		Name:  "runs",
		Usage: "number of independent runs per policy",
		Value: 10,
	}
	StepsFlag = cli.IntFlag{
		Name:    "steps",
		Aliases: []string{"T"},
		Usage:   "horizon, the number of steps of every run",
		Value:   1000,
	}
	PolicyFlag = cli.StringSliceFlag{
		Name:  "policy",
		Usage: "selection strategy (\"random\", \"thompson-sampling\", \"epsilon-greedy\" or rand, ts, eg)",
		Value: cli.NewStringSlice("random", "thompson-sampling", "epsilon-greedy"),
	}
	EpsilonFlag = cli.Float64Flag{
		Name:  "eps",
		Usage: "exploration probability of epsilon-greedy, clamped to [0,1]",
		Value: 0.1,
	}
	ProbInitFlag = cli.Float64Flag{
		Name:  "prob-init",
		Usage: "initial reward estimate of every arm for epsilon-greedy",
		Value: 1.0,
	}
	WarmupFlag = cli.IntFlag{
		Name:  "warmup",
		Usage: "number of initial pure exploration steps of epsilon-greedy",
	}
	TsSuccessFlag = cli.IntFlag{
		Name:  "ts-success",
		Usage: "prior successes of thompson sampling",
		Value: 1,
	}
	TsFailureFlag = cli.IntFlag{
		Name:  "ts-failure",
		Usage: "prior failures of thompson sampling",
		Value: 1,
	}
	WorkersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "number of runs simulated in parallel; 0 uses all cores",
		Value: 4,
	}
	OutputFlag = cli.PathFlag{
		Name:  "output",
		Usage: "directory receiving the per-run artifacts",
	}
	CompressFlag = cli.BoolFlag{
		Name:  "compress",
		Usage: "gzip the artifacts",
	}
	ResultDbFlag = cli.PathFlag{
		Name:  "db",
		Usage: "sqlite3 database receiving run totals and arm counts",
	}
	EpsPointsFlag = cli.IntFlag{
		Name:  "eps-points",
		Usage: "number of epsilon values evenly spaced over [0,1]",
		Value: 11,
	}
	ExperimentFlag = cli.PathFlag{
		Name:  "experiment",
		Usage: "YAML file describing the bandit, the seeds and per-policy settings; overrides the flags",
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "port of the visualization web server",
		Value: "8080",
	}
)
