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

// Package bandit models a stochastic multi-armed bandit: a fixed sequence of
// reward sources sharing one seeded random generator.
package bandit

import (
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
)

var (
	ErrInvalidConfig  = errors.New("invalid bandit configuration")
	ErrArmOutOfRange  = errors.New("arm index out of range")
	ErrNotImplemented = errors.New("not implemented")
)

// Player is the view of a bandit available to a policy. It has
// no access to the arm means.
//
//go:generate mockgen -source bandit.go -destination bandit_mock.go -package bandit
type Player interface {
	// NumArms returns the number of arms.
	NumArms() int
	// Pull samples a reward in [0,1] from the given arm.
	Pull(arm int) (float64, error)
	// Rand returns the generator shared by all arms and by the policy.
	Rand() *rand.Rand
}

// Oracle exposes the true arm means; it is used for regret accounting only.
type Oracle interface {
	BestMean() float64
	Mean(arm int) float64
}

// Bandit owns its reward sources and its random generator.
type Bandit struct {
	arms     []Source
	rg       *rand.Rand
	bestMean float64
}

// NewRand creates the generator for a bandit from an explicit seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// New creates a bandit from its reward sources and a generator.
func New(arms []Source, rg *rand.Rand) (*Bandit, error) {
	if len(arms) < 1 {
		return nil, errors.Wrap(ErrInvalidConfig, "a bandit needs at least one arm")
	}
	if rg == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "missing random generator")
	}
	best := math.Inf(-1)
	for i, arm := range arms {
		if arm == nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "arm %d has no reward source", i)
		}
		best = max(best, arm.Mean())
	}
	return &Bandit{
		arms:     append([]Source(nil), arms...),
		rg:       rg,
		bestMean: best,
	}, nil
}

// NewBernoulliBandit creates a bandit with Bernoulli arms.
func NewBernoulliBandit(means []float64, seed uint64) (*Bandit, error) {
	arms := make([]Source, len(means))
	for i, mean := range means {
		arm, err := NewBernoulli(mean)
		if err != nil {
			return nil, errors.Wrapf(err, "arm %d", i)
		}
		arms[i] = arm
	}
	return New(arms, NewRand(seed))
}

// NewGaussianBandit creates a bandit with truncated Gaussian arms.
func NewGaussianBandit(means, stds []float64, seed uint64) (*Bandit, error) {
	if len(means) != len(stds) {
		return nil, errors.Wrapf(ErrInvalidConfig, "got %d means but %d standard deviations", len(means), len(stds))
	}
	arms := make([]Source, len(means))
	for i := range means {
		arm, err := NewTruncatedGaussian(means[i], stds[i])
		if err != nil {
			return nil, errors.Wrapf(err, "arm %d", i)
		}
		arms[i] = arm
	}
	return New(arms, NewRand(seed))
}

func (b *Bandit) NumArms() int {
	return len(b.arms)
}

func (b *Bandit) Pull(arm int) (float64, error) {
	if arm < 0 || arm >= len(b.arms) {
		return 0, errors.Wrapf(ErrArmOutOfRange, "arm %d of %d", arm, len(b.arms))
	}
	return b.arms[arm].Sample(b.rg)
}

func (b *Bandit) Rand() *rand.Rand {
	return b.rg
}

// BestMean returns the largest arm mean.
func (b *Bandit) BestMean() float64 {
	return b.bestMean
}

// Mean returns the true mean of an arm.
func (b *Bandit) Mean(arm int) float64 {
	return b.arms[arm].Mean()
}

// Arm returns the reward source of an arm.
func (b *Bandit) Arm(arm int) Source {
	return b.arms[arm]
}
