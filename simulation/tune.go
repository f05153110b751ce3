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
	"time"

	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/0xsoniclabs/aida-mab/logger"
	"github.com/0xsoniclabs/aida-mab/policy"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// TuneSeeds are the seeds the epsilon sweep is scored on by default.
var TuneSeeds = []uint64{1, 2432412, 434, 439421094, 86868}

// TuneConfig describes an epsilon sweep of the epsilon-greedy policy.
type TuneConfig struct {
	Bandit   bandit.Config
	Seeds    []uint64
	Steps    int
	Points   int     // number of epsilon values evenly spaced over [0,1]
	ProbInit float64 // initial estimate of every arm
	Workers  int
}

// TuneResult holds the score of every evaluated epsilon.
type TuneResult struct {
	Epsilons []float64
	Scores   []float64 // mean total reward over the seeds
	Best     int       // index of the first maximal score
}

// BestEpsilon returns the epsilon with the highest score.
func (r TuneResult) BestEpsilon() float64 {
	return r.Epsilons[r.Best]
}

// BestScore returns the highest score.
func (r TuneResult) BestScore() float64 {
	return r.Scores[r.Best]
}

// TuneEpsilon scores every epsilon of the sweep by the total reward of
// an epsilon-greedy run, averaged over the seeds.
func TuneEpsilon(ctx context.Context, cfg TuneConfig, log logger.Logger) (TuneResult, error) {
	if cfg.Points < 2 {
		return TuneResult{}, errors.Wrapf(bandit.ErrInvalidConfig, "epsilon sweep needs at least 2 points, got %d", cfg.Points)
	}
	bench := BenchmarkConfig{
		Bandit:   cfg.Bandit,
		Policies: []policy.Config{{Kind: policy.EpsilonGreedyKind, ProbInit: cfg.ProbInit}},
		Seeds:    cfg.Seeds,
		Steps:    cfg.Steps,
		Workers:  cfg.Workers,
	}
	if err := bench.validate(); err != nil {
		return TuneResult{}, err
	}

	start := time.Now()
	res := TuneResult{
		Epsilons: floats.Span(make([]float64, cfg.Points), 0, 1),
		Scores:   make([]float64, cfg.Points),
	}
	log.Noticef("Tune epsilon on %d points, %d seeds and %d steps", cfg.Points, len(cfg.Seeds), cfg.Steps)

	g, runCtx := errgroup.WithContext(ctx)
	g.SetLimit(bench.workers())
	for i, eps := range res.Epsilons {
		if runCtx.Err() != nil {
			break
		}
		pc := bench.Policies[0]
		pc.Epsilon = eps
		g.Go(func() error {
			total := 0.0
			for j, seed := range cfg.Seeds {
				if err := runCtx.Err(); err != nil {
					return err
				}
				r, err := RunOnce(cfg.Bandit, pc, seed, j, cfg.Steps)
				if err != nil {
					return errors.Wrapf(err, "epsilon %v", eps)
				}
				total += r.TotalReward()
			}
			res.Scores[i] = total / float64(len(cfg.Seeds))
			log.Debugf("Epsilon %.4f scored %.2f", eps, res.Scores[i])
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return TuneResult{}, err
	}
	res.Best = floats.MaxIdx(res.Scores)

	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Best epsilon %v with score %.2f; sweep took %vh %vm %vs",
		res.BestEpsilon(), res.BestScore(), hours, minutes, seconds)
	return res, nil
}
