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

// Package simulation drives policies against bandits and aggregates the
// outcome of repeated runs.
package simulation

import (
	"slices"

	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/0xsoniclabs/aida-mab/policy"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrInvalidHorizon = errors.New("invalid horizon")

// Environment is the privileged view of a bandit held by the solver: the
// policy plays it, the solver also reads the true means for regret.
type Environment interface {
	bandit.Player
	bandit.Oracle
}

// Step is the outcome of one selection-pull-update cycle.
type Step struct {
	Arm    int
	Reward float64 // observed reward after binarisation
	Regret float64 // best mean minus the true mean of Arm
}

// Solver runs one policy against one bandit and keeps the run histories.
// Steps of a run are strictly sequential; a solver must not be shared
// between goroutines.
type Solver struct {
	env    Environment
	policy policy.Policy

	counts  []int     // pulls per arm
	rewards []float64 // reward per step
	regrets []float64 // regret per step
}

// NewSolver binds a policy to the bandit it plays.
func NewSolver(env Environment, p policy.Policy) (*Solver, error) {
	if env == nil || p == nil {
		return nil, errors.Wrap(bandit.ErrInvalidConfig, "solver needs a bandit and a policy")
	}
	s := &Solver{env: env, policy: p}
	s.Reset()
	return s, nil
}

// Reset clears the histories and the beliefs of the policy. The bandit's
// generator is not re-seeded.
func (s *Solver) Reset() {
	s.policy.Reset()
	s.counts = make([]int, s.env.NumArms())
	s.rewards = []float64{}
	s.regrets = []float64{}
}

// SolveStep performs exactly one cycle. On error the histories and the
// policy beliefs are left unchanged.
func (s *Solver) SolveStep(step int) (Step, error) {
	if step < 0 {
		return Step{}, errors.Wrapf(ErrInvalidHorizon, "negative step %d", step)
	}
	arm := s.policy.SelectArm()
	raw, err := s.env.Pull(arm)
	if err != nil {
		return Step{}, errors.Wrapf(err, "%v failed in step %d", s.policy.Label(), step)
	}
	reward := s.binarize(raw)
	regret := s.env.BestMean() - s.env.Mean(arm)

	s.policy.Update(arm, reward)
	s.counts[arm]++
	s.rewards = append(s.rewards, reward)
	s.regrets = append(s.regrets, regret)
	return Step{Arm: arm, Reward: reward, Regret: regret}, nil
}

// binarize turns a fractional reward into a Bernoulli outcome with the
// reward as success probability; 0 and 1 are passed through.
func (s *Solver) binarize(r float64) float64 {
	if r <= 0 || r >= 1 {
		return r
	}
	return distuv.Bernoulli{P: r, Src: s.env.Rand()}.Rand()
}

// Run resets the solver and plays numSteps steps.
func (s *Solver) Run(numSteps int) error {
	if numSteps < 0 {
		return errors.Wrapf(ErrInvalidHorizon, "negative horizon %d", numSteps)
	}
	s.Reset()
	s.rewards = make([]float64, 0, numSteps)
	s.regrets = make([]float64, 0, numSteps)
	for step := range numSteps {
		if _, err := s.SolveStep(step); err != nil {
			return err
		}
	}
	return nil
}

// Label returns the label of the solved policy.
func (s *Solver) Label() string {
	return s.policy.Label()
}

// Steps returns the number of steps executed since the last reset.
func (s *Solver) Steps() int {
	return len(s.rewards)
}

func (s *Solver) Counts() []int {
	return slices.Clone(s.counts)
}

func (s *Solver) Rewards() []float64 {
	return slices.Clone(s.rewards)
}

func (s *Solver) Regrets() []float64 {
	return slices.Clone(s.regrets)
}

// Result snapshots the histories of the current run.
func (s *Solver) Result(runID int, seed uint64) Result {
	return Result{
		Label:   s.policy.Label(),
		RunID:   runID,
		Seed:    seed,
		Counts:  s.Counts(),
		Rewards: s.Rewards(),
		Regrets: s.Regrets(),
	}
}
