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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandit_BestMeanIsMaximumArmMean(t *testing.T) {
	b, err := NewBernoulliBandit(BenchmarkMeans, 1)
	require.NoError(t, err)
	assert.Equal(t, len(BenchmarkMeans), b.NumArms())
	assert.Equal(t, 0.06, b.BestMean())
	assert.Equal(t, 0.06, b.Mean(5))
	assert.Equal(t, 0.001, b.Mean(3))
}

func TestBandit_PullRejectsOutOfRangeArms(t *testing.T) {
	b, err := NewBernoulliBandit([]float64{0.2, 0.4}, 1)
	require.NoError(t, err)
	for _, arm := range []int{-1, 2, 100} {
		_, err := b.Pull(arm)
		assert.True(t, errors.Is(err, ErrArmOutOfRange), "arm %d", arm)
	}
	r, err := b.Pull(1)
	require.NoError(t, err)
	assert.True(t, r == 0 || r == 1)
}

func TestBandit_PullsAreDeterministicForSeed(t *testing.T) {
	draw := func(seed uint64) []float64 {
		b, err := NewGaussianBandit([]float64{0.2, 0.7}, []float64{0.1, 0.3}, seed)
		require.NoError(t, err)
		rewards := make([]float64, 100)
		for i := range rewards {
			rewards[i], err = b.Pull(i % 2)
			require.NoError(t, err)
		}
		return rewards
	}
	assert.Equal(t, draw(99), draw(99))
	assert.NotEqual(t, draw(99), draw(100))
}

func TestBandit_PullsStayInUnitInterval(t *testing.T) {
	b, err := NewGaussianBandit([]float64{0, 0.5, 1}, []float64{1, 0.05, 2}, 17)
	require.NoError(t, err)
	for i := range 3 * numSamples {
		r, err := b.Pull(i % 3)
		require.NoError(t, err)
		if r < 0 || r > 1 {
			t.Fatalf("pull of arm %d returned %v", i%3, r)
		}
	}
}

func TestBandit_NewValidatesInput(t *testing.T) {
	_, err := New(nil, NewRand(1))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	arm, err := NewBernoulli(0.5)
	require.NoError(t, err)
	_, err = New([]Source{arm}, nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = New([]Source{arm, nil}, NewRand(1))
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewBernoulliBandit([]float64{}, 1)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewGaussianBandit([]float64{0.1, 0.2}, []float64{0.1}, 1)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = NewGaussianBandit([]float64{0.1}, []float64{-0.1}, 1)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestBandit_BinomialPullFails(t *testing.T) {
	b, err := Config{Family: BinomialFamily, Means: []float64{0.5}}.Build(1)
	require.NoError(t, err)
	_, err = b.Pull(0)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestBandit_CopiesArmSlice(t *testing.T) {
	a, _ := NewBernoulli(0.1)
	c, _ := NewBernoulli(0.9)
	arms := []Source{a}
	b, err := New(arms, NewRand(1))
	require.NoError(t, err)
	arms[0] = c
	assert.Equal(t, 0.1, b.Mean(0))
	assert.Equal(t, Source(a), b.Arm(0))
}

func TestConfig_Build(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		family  Family
		wantErr bool
	}{
		{"bernoulli", Config{Family: BernoulliFamily, Means: []float64{0.1, 0.2}}, BernoulliFamily, false},
		{"gaussian", Config{Family: GaussianFamily, Means: []float64{0.1, 0.2}, Stds: []float64{0.1, 0.1}}, GaussianFamily, false},
		{"binomial", Config{Family: BinomialFamily, Means: []float64{0.1}}, BinomialFamily, false},
		{"no arms", Config{Family: BernoulliFamily}, "", true},
		{"missing stds", Config{Family: GaussianFamily, Means: []float64{0.1}}, "", true},
		{"bad mean", Config{Family: BernoulliFamily, Means: []float64{1.5}}, "", true},
		{"unknown family", Config{Family: "cauchy", Means: []float64{0.1}}, "", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := test.config.Build(3)
			if test.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig), "unexpected error %v", err)
				assert.Error(t, test.config.Validate())
				return
			}
			require.NoError(t, err)
			assert.NoError(t, test.config.Validate())
			assert.Equal(t, len(test.config.Means), b.NumArms())
			assert.Equal(t, test.family, b.Arm(0).Family())
		})
	}
}
