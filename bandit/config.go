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

package bandit

import (
	"github.com/cockroachdb/errors"
)

// BenchmarkMeans are the Bernoulli arm means of the reference benchmark;
// arm 5 is optimal.
var BenchmarkMeans = []float64{0.027, 0.03, 0.028, 0.001, 0.05, 0.06, 0.0234, 0.035, 0.01, 0.012}

// Config describes a bandit independently of its random generator so
// that one description can be instantiated for many seeds.
type Config struct {
	Family Family
	Means  []float64
	Stds   []float64 // only used by the Gaussian family
}

// Validate checks the configuration without building a bandit.
func (c Config) Validate() error {
	_, err := c.Build(0)
	return err
}

// Build instantiates the bandit with a generator seeded by seed.
func (c Config) Build(seed uint64) (*Bandit, error) {
	if len(c.Means) < 1 {
		return nil, errors.Wrap(ErrInvalidConfig, "a bandit needs at least one arm")
	}
	switch c.Family {
	case BernoulliFamily:
		return NewBernoulliBandit(c.Means, seed)
	case GaussianFamily:
		return NewGaussianBandit(c.Means, c.Stds, seed)
	case BinomialFamily:
		arms := make([]Source, len(c.Means))
		for i, mean := range c.Means {
			arm, err := NewBinomial(mean)
			if err != nil {
				return nil, errors.Wrapf(err, "arm %d", i)
			}
			arms[i] = arm
		}
		return New(arms, NewRand(seed))
	}
	return nil, errors.Wrapf(ErrInvalidConfig, "unknown reward family %q", c.Family)
}
