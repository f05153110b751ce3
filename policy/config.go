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
	"strings"

	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/cockroachdb/errors"
)

// Kind names a selection strategy.
type Kind string

const (
	RandomKind           Kind = "random"
	ThompsonSamplingKind Kind = "thompson-sampling"
	EpsilonGreedyKind    Kind = "epsilon-greedy"
)

// kinds maps every accepted spelling to its strategy.
var kinds = map[string]Kind{
	"random":            RandomKind,
	"rand":              RandomKind,
	"thompson-sampling": ThompsonSamplingKind,
	"thompson":          ThompsonSamplingKind,
	"ts":                ThompsonSamplingKind,
	"epsilon-greedy":    EpsilonGreedyKind,
	"eg":                EpsilonGreedyKind,
}

// Kinds lists the strategies in presentation order.
var Kinds = []Kind{RandomKind, ThompsonSamplingKind, EpsilonGreedyKind}

// ParseKind resolves a strategy name or its short alias.
func ParseKind(name string) (Kind, error) {
	k, ok := kinds[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", errors.Wrapf(ErrUnknownPolicy, "%q", name)
	}
	return k, nil
}

// Config carries the hyper-parameters of every strategy; fields that do
// not apply to Kind are ignored.
type Config struct {
	Kind        Kind
	SuccessInit int     // Thompson sampling prior successes
	FailureInit int     // Thompson sampling prior failures
	Epsilon     float64 // epsilon-greedy exploration probability
	ProbInit    float64 // epsilon-greedy initial estimate
	Warmup      int     // epsilon-greedy forced exploration steps
}

// DefaultConfig returns the hyper-parameters used when none are given.
func DefaultConfig(kind Kind) Config {
	return Config{
		Kind:        kind,
		SuccessInit: 1,
		FailureInit: 1,
		Epsilon:     0.1,
		ProbInit:    1.0,
	}
}

// New builds the configured policy for a bandit.
func (c Config) New(player bandit.Player) (Policy, error) {
	switch c.Kind {
	case RandomKind:
		return NewRandom(player)
	case ThompsonSamplingKind:
		return NewThompsonSampling(player, c.SuccessInit, c.FailureInit)
	case EpsilonGreedyKind:
		return NewEpsilonGreedy(player, c.Epsilon, c.ProbInit, c.Warmup)
	default:
		return nil, errors.Wrapf(ErrUnknownPolicy, "%q", string(c.Kind))
	}
}
