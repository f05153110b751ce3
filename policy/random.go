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
	"github.com/0xsoniclabs/aida-mab/bandit"
	"golang.org/x/exp/rand"
)

// Random selects arms uniformly at random; it is the baseline for comparisons.
type Random struct {
	rg      *rand.Rand
	numArms int
}

// NewRandom creates a random policy for the given bandit.
func NewRandom(player bandit.Player) (*Random, error) {
	if err := checkPlayer(player); err != nil {
		return nil, err
	}
	return &Random{rg: player.Rand(), numArms: player.NumArms()}, nil
}

func (p *Random) Label() string { return "rand" }

func (p *Random) Reset() {}

func (p *Random) SelectArm() int {
	return p.rg.Intn(p.numArms)
}

func (p *Random) Update(int, float64) {}
