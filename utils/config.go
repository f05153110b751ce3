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
	"slices"

	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/0xsoniclabs/aida-mab/logger"
	"github.com/0xsoniclabs/aida-mab/policy"
	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ArgumentMode defines the positional arguments a command expects.
type ArgumentMode int

const (
	NoArgs         ArgumentMode = iota // no positional arguments
	ArtifactDirArg                     // <artifact-dir>
	ReportArgs                         // <artifact-dir> <html-file>
)

// Config holds every setting of the simulator commands.
type Config struct {
	AppName     string
	CommandName string

	Family    string    // reward distribution of the arms
	Means     []float64 // true arm means
	Stds      []float64 // gaussian standard deviations
	Seed      uint64    // seed of the first run
	SeedSet   bool      // seed given explicitly on the command line
	Runs      int       // runs per policy
	Steps     int       // horizon of every run
	Policies  []string  // strategy names
	Epsilon   float64   // epsilon-greedy exploration probability
	ProbInit  float64   // epsilon-greedy initial estimate
	Warmup    int       // epsilon-greedy forced exploration steps
	TsSuccess int       // thompson sampling prior successes
	TsFailure int       // thompson sampling prior failures
	Workers   int       // parallel runs
	EpsPoints int       // points of the epsilon sweep

	Output   string // artifact directory written by run and bench
	Compress bool   // gzip artifacts
	ResultDb string // sqlite3 result database
	Port     string // port of the visualization server
	LogLevel string

	ArtifactDir string // artifact directory read by report and visualize
	ReportFile  string // html report written by report
	Experiment  string // YAML experiment overriding the flags

	policies []policy.Config // per-policy settings of the experiment
}

// NewConfig creates and validates the configuration of the current command.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.setArgs(ctx, mode); err != nil {
		return nil, err
	}
	if cfg.Experiment != "" {
		exp, err := ReadExperiment(cfg.Experiment)
		if err != nil {
			return nil, err
		}
		if err := exp.apply(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		Family:    getFlagValue(ctx, FamilyFlag).(string),
		Means:     getFlagValue(ctx, MeansFlag).([]float64),
		Stds:      getFlagValue(ctx, StdsFlag).([]float64),
		Seed:      getFlagValue(ctx, SeedFlag).(uint64),
		SeedSet:   ctx.IsSet(SeedFlag.Name),
		Runs:      getFlagValue(ctx, RunsFlag).(int),
		Steps:     getFlagValue(ctx, StepsFlag).(int),
		Policies:  getFlagValue(ctx, PolicyFlag).([]string),
		Epsilon:   getFlagValue(ctx, EpsilonFlag).(float64),
		ProbInit:  getFlagValue(ctx, ProbInitFlag).(float64),
		Warmup:    getFlagValue(ctx, WarmupFlag).(int),
		TsSuccess: getFlagValue(ctx, TsSuccessFlag).(int),
		TsFailure: getFlagValue(ctx, TsFailureFlag).(int),
		Workers:   getFlagValue(ctx, WorkersFlag).(int),
		EpsPoints: getFlagValue(ctx, EpsPointsFlag).(int),
		Output:    getFlagValue(ctx, OutputFlag).(string),
		Compress:  getFlagValue(ctx, CompressFlag).(bool),
		ResultDb:  getFlagValue(ctx, ResultDbFlag).(string),
		Port:      getFlagValue(ctx, PortFlag).(string),
		LogLevel:  getFlagValue(ctx, logger.LogLevelFlag).(string),

		Experiment: getFlagValue(ctx, ExperimentFlag).(string),
	}
	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	var cmdFlags []cli.Flag
	if ctx.Command != nil {
		cmdFlags = ctx.Command.Flags
	}
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}
		case cli.Uint64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Uint64(f.Name)
			}
		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}
		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}
		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}
		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		case cli.StringSliceFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.StringSlice(f.Name)
			}
		case cli.Float64SliceFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64Slice(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Uint64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	case cli.StringSliceFlag:
		if f.Value == nil {
			return []string{}
		}
		return f.Value.Value()
	case cli.Float64SliceFlag:
		if f.Value == nil {
			return []float64{}
		}
		return f.Value.Value()
	}

	return nil
}

// setArgs reads the positional arguments required by mode.
func (cfg *Config) setArgs(ctx *cli.Context, mode ArgumentMode) error {
	args := ctx.Args()
	switch mode {
	case NoArgs:
		return nil
	case ArtifactDirArg:
		if args.Len() != 1 {
			return errors.New("command requires exactly 1 argument: <artifact-dir>")
		}
		cfg.ArtifactDir = args.Get(0)
	case ReportArgs:
		if args.Len() != 2 {
			return errors.New("command requires exactly 2 arguments: <artifact-dir> <html-file>")
		}
		cfg.ArtifactDir = args.Get(0)
		cfg.ReportFile = args.Get(1)
	default:
		return errors.Newf("unknown argument mode %d", mode)
	}
	return nil
}

// validate fails fast on settings no command can run with.
func (cfg *Config) validate() error {
	if cfg.Runs < 1 {
		return errors.Wrapf(bandit.ErrInvalidConfig, "number of runs must be positive, got %d", cfg.Runs)
	}
	if cfg.Steps < 0 {
		return errors.Wrapf(simulation.ErrInvalidHorizon, "%d", cfg.Steps)
	}
	if cfg.Workers < 0 {
		return errors.Wrapf(bandit.ErrInvalidConfig, "number of workers must not be negative, got %d", cfg.Workers)
	}
	if _, err := cfg.PolicyConfigs(); err != nil {
		return err
	}
	return cfg.BanditConfig().Validate()
}

// BanditConfig describes the simulated bandit.
func (cfg *Config) BanditConfig() bandit.Config {
	return bandit.Config{
		Family: bandit.Family(cfg.Family),
		Means:  cfg.Means,
		Stds:   cfg.Stds,
	}
}

// PolicyConfigs resolves the strategy names into policy configurations
// sharing the hyper-parameters given on the command line, or returns the
// policies of the experiment file.
func (cfg *Config) PolicyConfigs() ([]policy.Config, error) {
	if len(cfg.policies) > 0 {
		return slices.Clone(cfg.policies), nil
	}
	if len(cfg.Policies) == 0 {
		return nil, errors.Wrap(policy.ErrUnknownPolicy, "no policy given")
	}
	configs := make([]policy.Config, 0, len(cfg.Policies))
	for _, name := range cfg.Policies {
		kind, err := policy.ParseKind(name)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg.policyConfig(kind))
	}
	return configs, nil
}

// policyConfig applies the command-line hyper-parameters to kind.
func (cfg *Config) policyConfig(kind policy.Kind) policy.Config {
	return policy.Config{
		Kind:        kind,
		SuccessInit: cfg.TsSuccess,
		FailureInit: cfg.TsFailure,
		Epsilon:     cfg.Epsilon,
		ProbInit:    cfg.ProbInit,
		Warmup:      cfg.Warmup,
	}
}

// BenchmarkConfig runs every policy on Runs consecutive seeds.
func (cfg *Config) BenchmarkConfig() (simulation.BenchmarkConfig, error) {
	policies, err := cfg.PolicyConfigs()
	if err != nil {
		return simulation.BenchmarkConfig{}, err
	}
	return simulation.BenchmarkConfig{
		Bandit:   cfg.BanditConfig(),
		Policies: policies,
		Seeds:    simulation.Seeds(cfg.Seed, cfg.Runs),
		Steps:    cfg.Steps,
		Workers:  cfg.Workers,
	}, nil
}

// TuneConfig sweeps epsilon on the reference tuning seeds unless a seed is
// given explicitly.
func (cfg *Config) TuneConfig() simulation.TuneConfig {
	seeds := simulation.TuneSeeds
	if cfg.SeedSet {
		seeds = simulation.Seeds(cfg.Seed, cfg.Runs)
	}
	return simulation.TuneConfig{
		Bandit:   cfg.BanditConfig(),
		Seeds:    seeds,
		Steps:    cfg.Steps,
		Points:   cfg.EpsPoints,
		ProbInit: cfg.ProbInit,
		Workers:  cfg.Workers,
	}
}
