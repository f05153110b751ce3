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

// Package policy contains the arm-selection strategies. A policy only
// decides which arm to play and learns from observed rewards; pulling,
// binarisation and bookkeeping are done by simulation.Solver.
package policy

import (
	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/cockroachdb/errors"
)

var (
	ErrUnknownPolicy = errors.New("unknown policy")
	ErrInvalidPolicy = errors.New("invalid policy parameter")
)

// Policy is the capability a selection strategy has to provide.
type Policy interface {
	// Label identifies the policy and its hyper-parameters, e.g. "ts-1_1".
	Label() string
	// Reset restores the initial beliefs.
	Reset()
	// SelectArm chooses the arm for the next step.
	SelectArm() int
	// Update incorporates the (binary) reward observed for arm.
	Update(arm int, reward float64)
}

// checkPlayer validates the bandit a policy is bound to.
func checkPlayer(player bandit.Player) error {
	if player == nil {
		return errors.Wrap(ErrInvalidPolicy, "missing bandit")
	}
	if player.NumArms() < 1 {
		return errors.Wrapf(ErrInvalidPolicy, "bandit has %d arms", player.NumArms())
	}
	return nil
}

// fill returns a slice of n copies of v.
func fill[T any](n int, v T) []T {
	s := make([]T, n)
	for i := range s {
		s[i] = v
	}
	return s
}
