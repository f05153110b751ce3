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

package simulation

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/0xsoniclabs/aida-mab/logger"
	"github.com/0xsoniclabs/aida-mab/policy"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// BenchmarkConfig describes a set of independent runs: every policy is
// run once per seed on its own bandit.
type BenchmarkConfig struct {
	Bandit   bandit.Config
	Policies []policy.Config
	Seeds    []uint64
	Steps    int
	Workers  int // maximum number of concurrent runs; < 1 uses GOMAXPROCS
}

// Seeds returns the consecutive seeds first, first+1, ... of runs runs.
func Seeds(first uint64, runs int) []uint64 {
	seeds := make([]uint64, max(runs, 0))
	for i := range seeds {
		seeds[i] = first + uint64(i)
	}
	return seeds
}

// RunOnce builds a bandit from seed, plays the policy for steps steps and
// returns the result tagged with runID.
func RunOnce(banditCfg bandit.Config, policyCfg policy.Config, seed uint64, runID, steps int) (Result, error) {
	b, err := banditCfg.Build(seed)
	if err != nil {
		return Result{}, err
	}
	p, err := policyCfg.New(b)
	if err != nil {
		return Result{}, err
	}
	s, err := NewSolver(b, p)
	if err != nil {
		return Result{}, err
	}
	if err = s.Run(steps); err != nil {
		return Result{}, err
	}
	return s.Result(runID, seed), nil
}

// ErrDuplicateLabel is returned when two policies of a benchmark share a
// label, so their runs could not be told apart.
var ErrDuplicateLabel = errors.New("duplicate policy label")

func (cfg BenchmarkConfig) validate() error {
	b, err := cfg.Bandit.Build(0)
	if err != nil {
		return err
	}
	if len(cfg.Policies) == 0 {
		return errors.Wrap(policy.ErrUnknownPolicy, "no policy selected")
	}
	labels := make(map[string]int, len(cfg.Policies))
	for i, pc := range cfg.Policies {
		p, err := pc.New(b)
		if err != nil {
			return err
		}
		if prev, found := labels[p.Label()]; found {
			return errors.Wrapf(ErrDuplicateLabel, "policies %d and %d are both %v", prev, i, p.Label())
		}
		labels[p.Label()] = i
	}
	if len(cfg.Seeds) == 0 {
		return errors.Wrap(bandit.ErrInvalidConfig, "no seed given")
	}
	if cfg.Steps < 0 {
		return errors.Wrapf(ErrInvalidHorizon, "negative horizon %d", cfg.Steps)
	}
	return nil
}

func (cfg BenchmarkConfig) workers() int {
	if cfg.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return cfg.Workers
}

// Benchmark executes all runs of cfg in parallel. Results are returned in
// (policy, seed) order; every finished result is handed to all sinks. The
// first failing run or sink cancels the remaining runs, the results that
// completed are still returned.
func Benchmark(ctx context.Context, cfg BenchmarkConfig, sinks []Sink, log logger.Logger) ([]Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	total := len(cfg.Policies) * len(cfg.Seeds)
	log.Noticef("Benchmark %d policies on %d seeds with %d steps (%d workers)",
		len(cfg.Policies), len(cfg.Seeds), cfg.Steps, cfg.workers())

	results := make([]Result, total)
	g, runCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())

	// sinks are not required to be thread-safe
	var mu sync.Mutex
	done := 0

schedule:
	for i, pc := range cfg.Policies {
		for j, seed := range cfg.Seeds {
			if runCtx.Err() != nil {
				break schedule
			}
			idx := i*len(cfg.Seeds) + j
			g.Go(func() error {
				if err := runCtx.Err(); err != nil {
					return err
				}
				res, err := RunOnce(cfg.Bandit, pc, seed, j, cfg.Steps)
				if err != nil {
					return errors.Wrapf(err, "run %d of policy %v", j, pc.Kind)
				}
				results[idx] = res

				mu.Lock()
				defer mu.Unlock()
				for _, sink := range sinks {
					if err = sink.Write(res); err != nil {
						return errors.Wrapf(err, "cannot record run %d of %v", j, res.Label)
					}
				}
				done++
				log.Debugf("Finished %v run %d (seed %d): reward %.0f, regret %.3f; %d/%d done",
					res.Label, j, seed, res.TotalReward(), res.TotalRegret(), done, total)
				return nil
			})
		}
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return results, err
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Benchmark finished %d runs in %vh %vm %vs", total, hours, minutes, seconds)
	return results, nil
}
