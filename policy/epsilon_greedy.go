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

package policy

import (
	"math"
	"strconv"

	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// EpsilonGreedy explores a uniformly random arm with probability eps and
// otherwise exploits the arm with the highest estimated success rate.
// Estimates start at probInit; an optimistic probInit forces early
// exploration even with eps = 0.
type EpsilonGreedy struct {
	rg       *rand.Rand
	numArms  int
	eps      float64
	probInit float64
	warmup   int // number of initial steps that always explore

	steps  int // updates seen
	counts []int
	probas []float64
}

// NewEpsilonGreedy creates an epsilon-greedy policy. An eps outside [0,1]
// is clamped to the interval.
func NewEpsilonGreedy(player bandit.Player, eps, probInit float64, warmup int) (*EpsilonGreedy, error) {
	if err := checkPlayer(player); err != nil {
		return nil, err
	}
	if math.IsNaN(eps) {
		return nil, errors.Wrap(ErrInvalidPolicy, "epsilon is NaN")
	}
	if math.IsNaN(probInit) || math.IsInf(probInit, 0) {
		return nil, errors.Wrapf(ErrInvalidPolicy, "initial estimate %v is not finite", probInit)
	}
	if warmup < 0 {
		return nil, errors.Wrapf(ErrInvalidPolicy, "negative warm-up %d", warmup)
	}
	p := &EpsilonGreedy{
		rg:       player.Rand(),
		numArms:  player.NumArms(),
		eps:      math.Min(math.Max(eps, 0), 1),
		probInit: probInit,
		warmup:   warmup,
	}
	p.Reset()
	return p, nil
}

func (p *EpsilonGreedy) Label() string {
	label := "eg-" + formatFloat(p.eps) + "_" + formatFloat(p.probInit)
	if p.warmup > 0 {
		label += "_w" + strconv.Itoa(p.warmup)
	}
	return label
}

// Epsilon returns the (clamped) exploration probability.
func (p *EpsilonGreedy) Epsilon() float64 {
	return p.eps
}

func (p *EpsilonGreedy) Reset() {
	p.steps = 0
	p.counts = make([]int, p.numArms)
	p.probas = fill(p.numArms, p.probInit)
}

// SelectArm breaks ties among equal estimates towards the lowest arm index.
func (p *EpsilonGreedy) SelectArm() int {
	explore := p.steps < p.warmup || distuv.Bernoulli{P: p.eps, Src: p.rg}.Rand() == 1
	if explore {
		return p.rg.Intn(p.numArms)
	}
	return floats.MaxIdx(p.probas)
}

// Update moves the estimate of arm to the running mean of its rewards.
// Only updated steps count towards the warm-up.
func (p *EpsilonGreedy) Update(arm int, reward float64) {
	p.steps++
	p.counts[arm]++
	p.probas[arm] += (reward - p.probas[arm]) / float64(p.counts[arm])
}

// Estimate returns the current success-rate estimate of an arm.
func (p *EpsilonGreedy) Estimate(arm int) float64 {
	return p.probas[arm]
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
