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
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// EPS guards the standardisation of the truncation bounds against a zero deviation.
const EPS = 1e-10

// Family tags the distribution family of a reward source.
type Family string

const (
	BernoulliFamily Family = "bernoulli"
	GaussianFamily  Family = "gaussian"
	BinomialFamily  Family = "binomial"
)

// ParseFamily converts a family name into a Family.
func ParseFamily(name string) (Family, error) {
	switch f := Family(name); f {
	case BernoulliFamily, GaussianFamily, BinomialFamily:
		return f, nil
	}
	return "", errors.Wrapf(ErrInvalidConfig, "unknown reward family %q", name)
}

// Source generates i.i.d. rewards in [0,1] for one arm. All randomness
// is taken from the generator passed to Sample.
type Source interface {
	Family() Family
	Mean() float64
	Sample(rg *rand.Rand) (float64, error)
}

// Bernoulli yields 1 with probability mean and 0 otherwise.
type Bernoulli struct {
	mean float64
}

// NewBernoulli creates a Bernoulli reward source.
func NewBernoulli(mean float64) (*Bernoulli, error) {
	if err := checkMean(mean); err != nil {
		return nil, err
	}
	return &Bernoulli{mean: mean}, nil
}

func (s *Bernoulli) Family() Family { return BernoulliFamily }
func (s *Bernoulli) Mean() float64  { return s.mean }

func (s *Bernoulli) Sample(rg *rand.Rand) (float64, error) {
	return distuv.Bernoulli{P: s.mean, Src: rg}.Rand(), nil
}

func (s *Bernoulli) String() string {
	return fmt.Sprintf("Bernoulli(%v)", s.mean)
}

// TruncatedGaussian samples a Gaussian restricted to [0,1] by inverse
// transform sampling between the CDF values of both bounds.
type TruncatedGaussian struct {
	mean float64
	std  float64
}

// NewTruncatedGaussian creates a truncated Gaussian reward source.
func NewTruncatedGaussian(mean, std float64) (*TruncatedGaussian, error) {
	if err := checkMean(mean); err != nil {
		return nil, err
	}
	if std < 0 || math.IsNaN(std) || math.IsInf(std, 0) {
		return nil, errors.Wrapf(ErrInvalidConfig, "standard deviation must be finite and non-negative, got %v", std)
	}
	return &TruncatedGaussian{mean: mean, std: std}, nil
}

func (s *TruncatedGaussian) Family() Family { return GaussianFamily }
func (s *TruncatedGaussian) Mean() float64  { return s.mean }
func (s *TruncatedGaussian) Std() float64   { return s.std }

func (s *TruncatedGaussian) Sample(rg *rand.Rand) (float64, error) {
	if s.std == 0 {
		return s.mean, nil
	}
	lo := distuv.UnitNormal.CDF((0 - s.mean) / (s.std + EPS))
	hi := distuv.UnitNormal.CDF((1 - s.mean) / (s.std + EPS))
	u := lo + rg.Float64()*(hi-lo)
	x := s.mean + s.std*distuv.UnitNormal.Quantile(u)
	if math.IsNaN(x) {
		return s.mean, nil
	}
	return math.Max(0, math.Min(1, x)), nil
}

func (s *TruncatedGaussian) String() string {
	return fmt.Sprintf("TruncatedGaussian(%v, %v)", s.mean, s.std)
}

// Binomial is reserved for binomial rewards; sampling is not supported yet.
type Binomial struct {
	mean float64
}

// NewBinomial creates a binomial reward source placeholder.
func NewBinomial(mean float64) (*Binomial, error) {
	if err := checkMean(mean); err != nil {
		return nil, err
	}
	return &Binomial{mean: mean}, nil
}

func (s *Binomial) Family() Family { return BinomialFamily }
func (s *Binomial) Mean() float64  { return s.mean }

func (s *Binomial) Sample(*rand.Rand) (float64, error) {
	return 0, errors.Wrap(ErrNotImplemented, "binomial rewards")
}

func checkMean(mean float64) error {
	if mean < 0 || mean > 1 || math.IsNaN(mean) {
		return errors.Wrapf(ErrInvalidConfig, "arm mean must be in [0,1], got %v", mean)
	}
	return nil
}
