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
	"flag"
	"testing"

	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/0xsoniclabs/aida-mab/logger"
	"github.com/0xsoniclabs/aida-mab/policy"
	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

var allFlags = []cli.Flag{
	&FamilyFlag,
	&MeansFlag,
	&StdsFlag,
	&SeedFlag,
	&RunsFlag,
	&StepsFlag,
	&PolicyFlag,
	&EpsilonFlag,
	&ProbInitFlag,
	&WarmupFlag,
	&TsSuccessFlag,
	&TsFailureFlag,
	&WorkersFlag,
	&EpsPointsFlag,
	&OutputFlag,
	&CompressFlag,
	&ResultDbFlag,
	&PortFlag,
	&ExperimentFlag,
	&logger.LogLevelFlag,
}

// parseConfig runs a command declaring flags and returns the config it built.
func parseConfig(t *testing.T, mode ArgumentMode, flags []cli.Flag, args *ArgsBuilder) (*Config, error) {
	t.Helper()
	var (
		cfg    *Config
		cfgErr error
	)
	app := cli.NewApp()
	app.Commands = []*cli.Command{{
		Name:  "cmd",
		Flags: flags,
		Action: func(ctx *cli.Context) error {
			cfg, cfgErr = NewConfig(ctx, mode)
			return nil
		},
	}}
	require.NoError(t, app.Run(args.Build()))
	return cfg, cfgErr
}

func TestUtilsConfig_NewConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(t, NoArgs, allFlags, NewArgs("test").Arg("cmd"))
	require.NoError(t, err)

	assert.Equal(t, "cmd", cfg.CommandName)
	assert.Equal(t, "bernoulli", cfg.Family)
	assert.Equal(t, bandit.BenchmarkMeans, cfg.Means)
	assert.Empty(t, cfg.Stds)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.False(t, cfg.SeedSet)
	assert.Equal(t, 10, cfg.Runs)
	assert.Equal(t, 1000, cfg.Steps)
	assert.Equal(t, []string{"random", "thompson-sampling", "epsilon-greedy"}, cfg.Policies)
	assert.Equal(t, 0.1, cfg.Epsilon)
	assert.Equal(t, 1.0, cfg.ProbInit)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Compress)
}

func TestUtilsConfig_NewConfigReadsFlags(t *testing.T) {
	args := NewArgs("test").
		Arg("cmd").
		Flag(MeansFlag.Name, []float64{0.2, 0.8}).
		Flag(SeedFlag.Name, uint64(5)).
		Flag(RunsFlag.Name, 3).
		Flag(StepsFlag.Name, 20).
		Flag(PolicyFlag.Name, []string{"ts", "eg"}).
		Flag(EpsilonFlag.Name, 0.3).
		Flag(ProbInitFlag.Name, 0.5).
		Flag(WarmupFlag.Name, 2).
		Flag(TsSuccessFlag.Name, 2).
		Flag(CompressFlag.Name, true).
		Flag(OutputFlag.Name, "out")
	cfg, err := parseConfig(t, NoArgs, allFlags, args)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.2, 0.8}, cfg.Means)
	assert.True(t, cfg.SeedSet)
	assert.True(t, cfg.Compress)
	assert.Equal(t, "out", cfg.Output)

	policies, err := cfg.PolicyConfigs()
	require.NoError(t, err)
	want := []policy.Config{
		{Kind: policy.ThompsonSamplingKind, SuccessInit: 2, FailureInit: 1, Epsilon: 0.3, ProbInit: 0.5, Warmup: 2},
		{Kind: policy.EpsilonGreedyKind, SuccessInit: 2, FailureInit: 1, Epsilon: 0.3, ProbInit: 0.5, Warmup: 2},
	}
	assert.Equal(t, want, policies)

	bench, err := cfg.BenchmarkConfig()
	require.NoError(t, err)
	assert.Equal(t, bandit.BernoulliFamily, bench.Bandit.Family)
	assert.Equal(t, []float64{0.2, 0.8}, bench.Bandit.Means)
	assert.Empty(t, bench.Bandit.Stds)
	assert.Equal(t, want, bench.Policies)
	assert.Equal(t, []uint64{5, 6, 7}, bench.Seeds)
	assert.Equal(t, 20, bench.Steps)
	assert.Equal(t, 4, bench.Workers)
}

func TestUtilsConfig_MeansAlias(t *testing.T) {
	cfg, err := parseConfig(t, NoArgs, allFlags, NewArgs("test").Arg("cmd").Flag("arms", []float64{0.5}))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, cfg.Means)
}

func TestUtilsConfig_UndeclaredFlagsUseDefaults(t *testing.T) {
	cfg, err := parseConfig(t, NoArgs, []cli.Flag{&logger.LogLevelFlag}, NewArgs("test").Arg("cmd").Flag("log", "debug"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, bandit.BenchmarkMeans, cfg.Means)
	assert.Equal(t, 1000, cfg.Steps)
}

func TestUtilsConfig_NewConfigRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		args *ArgsBuilder
		want error
	}{
		{"no runs", NewArgs("test").Arg("cmd").Flag(RunsFlag.Name, 0), bandit.ErrInvalidConfig},
		{"negative horizon", NewArgs("test").Arg("cmd").Flag(StepsFlag.Name, -1), simulation.ErrInvalidHorizon},
		{"negative workers", NewArgs("test").Arg("cmd").Flag(WorkersFlag.Name, -2), bandit.ErrInvalidConfig},
		{"unknown policy", NewArgs("test").Arg("cmd").Flag(PolicyFlag.Name, []string{"ucb"}), policy.ErrUnknownPolicy},
		{"mean out of range", NewArgs("test").Arg("cmd").Flag(MeansFlag.Name, []float64{1.5}), bandit.ErrInvalidConfig},
		{"gaussian without stds", NewArgs("test").Arg("cmd").Flag(FamilyFlag.Name, "gaussian"), bandit.ErrInvalidConfig},
		{"unknown family", NewArgs("test").Arg("cmd").Flag(FamilyFlag.Name, "cauchy"), bandit.ErrInvalidConfig},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseConfig(t, NoArgs, allFlags, test.args)
			assert.True(t, errors.Is(err, test.want), "got %v", err)
		})
	}
}

func TestUtilsConfig_PositionalArguments(t *testing.T) {
	cfg, err := parseConfig(t, ReportArgs, allFlags, NewArgs("test").Arg("cmd").Arg("out").Arg("report.html"))
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.ArtifactDir)
	assert.Equal(t, "report.html", cfg.ReportFile)

	cfg, err = parseConfig(t, ArtifactDirArg, allFlags, NewArgs("test").Arg("cmd").Arg("out"))
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.ArtifactDir)

	_, err = parseConfig(t, ReportArgs, allFlags, NewArgs("test").Arg("cmd").Arg("out"))
	assert.Error(t, err)
	_, err = parseConfig(t, ArtifactDirArg, allFlags, NewArgs("test").Arg("cmd"))
	assert.Error(t, err)
}

func TestUtilsConfig_TuneConfigSeeds(t *testing.T) {
	cfg, err := parseConfig(t, NoArgs, allFlags, NewArgs("test").Arg("cmd").Flag(EpsPointsFlag.Name, 5))
	require.NoError(t, err)
	tune := cfg.TuneConfig()
	assert.Equal(t, simulation.TuneSeeds, tune.Seeds)
	assert.Equal(t, 5, tune.Points)
	assert.Equal(t, 1.0, tune.ProbInit)

	cfg, err = parseConfig(t, NoArgs, allFlags, NewArgs("test").Arg("cmd").Flag(SeedFlag.Name, uint64(3)).Flag(RunsFlag.Name, 2))
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 4}, cfg.TuneConfig().Seeds)
}

func TestGetFlagValue(t *testing.T) {
	app := cli.NewApp()
	command := &cli.Command{
		Name: "testcmd",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "uint64flag"},
			&cli.Float64Flag{Name: "float64flag"},
			&cli.Float64SliceFlag{Name: "float64sliceflag"},
			&cli.StringSliceFlag{Name: "stringsliceflag"},
		},
	}

	set := flag.NewFlagSet("test", 0)
	set.Uint64("uint64flag", 100, "")
	set.Float64("float64flag", 0.5, "")
	set.Var(cli.NewFloat64Slice(0.1, 0.2), "float64sliceflag", "")
	set.Var(cli.NewStringSlice("value1", "value2"), "stringsliceflag", "")
	ctx := cli.NewContext(app, set, nil)
	ctx.Command = command

	tests := []struct {
		name     string
		flag     interface{}
		expected interface{}
	}{
		{"Uint64Flag value", cli.Uint64Flag{Name: "uint64flag"}, uint64(100)},
		{"Float64Flag value", cli.Float64Flag{Name: "float64flag"}, 0.5},
		{"Float64SliceFlag value", cli.Float64SliceFlag{Name: "float64sliceflag"}, []float64{0.1, 0.2}},
		{"StringSliceFlag value", cli.StringSliceFlag{Name: "stringsliceflag"}, []string{"value1", "value2"}},
		{"missing flag default", cli.IntFlag{Name: "missing", Value: 7}, 7},
		{"missing slice default", cli.Float64SliceFlag{Name: "missing"}, []float64{}},
		{"unsupported flag", cli.DurationFlag{Name: "missing"}, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, getFlagValue(ctx, test.flag))
		})
	}
}
