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
	"fmt"

	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ThompsonSampling keeps a Beta(s+1, f+1) posterior per arm and plays the
// arm whose posterior sample is largest.
//
// See Agrawal and Goyal, "Analysis of Thompson Sampling for the
// Multi-armed Bandit Problem", COLT 2012.
type ThompsonSampling struct {
	rg        *rand.Rand
	numArms   int
	sInit     int       // prior successes of every arm
	fInit     int       // prior failures of every arm
	successes []float64 // observed successes plus prior
	failures  []float64 // observed failures plus prior
}

// NewThompsonSampling creates a Thompson sampler with the same prior
// pseudo-counts for every arm.
func NewThompsonSampling(player bandit.Player, sInit, fInit int) (*ThompsonSampling, error) {
	if err := checkPlayer(player); err != nil {
		return nil, err
	}
	if sInit < 0 || fInit < 0 {
		return nil, errors.Wrapf(ErrInvalidPolicy, "prior pseudo-counts must be non-negative, got (%d, %d)", sInit, fInit)
	}
	p := &ThompsonSampling{
		rg:      player.Rand(),
		numArms: player.NumArms(),
		sInit:   sInit,
		fInit:   fInit,
	}
	p.Reset()
	return p, nil
}

func (p *ThompsonSampling) Label() string {
	return fmt.Sprintf("ts-%d_%d", p.sInit, p.fInit)
}

func (p *ThompsonSampling) Reset() {
	p.successes = fill(p.numArms, float64(p.sInit))
	p.failures = fill(p.numArms, float64(p.fInit))
}

// SelectArm draws one sample per arm; ties go to the lowest arm index.
func (p *ThompsonSampling) SelectArm() int {
	thetas := make([]float64, p.numArms)
	for i := range thetas {
		thetas[i] = distuv.Beta{
			Alpha: p.successes[i] + 1,
			Beta:  p.failures[i] + 1,
			Src:   p.rg,
		}.Rand()
	}
	return floats.MaxIdx(thetas)
}

func (p *ThompsonSampling) Update(arm int, reward float64) {
	p.successes[arm] += reward
	p.failures[arm] += 1 - reward
}

// Posterior returns the Beta parameters of an arm.
func (p *ThompsonSampling) Posterior(arm int) (alpha, beta float64) {
	return p.successes[arm] + 1, p.failures[arm] + 1
}
