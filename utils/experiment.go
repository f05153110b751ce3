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

package utils

import (
	"bytes"
	"io"
	"os"

	"github.com/0xsoniclabs/aida-mab/bandit"
	"github.com/0xsoniclabs/aida-mab/policy"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Experiment is a benchmark description read from a YAML file. Unset
// fields keep the command-line values.
//
// Example:
//
//	bandit:
//	  family: bernoulli
//	  means: [0.1, 0.5, 0.7]
//	seed: 7
//	runs: 20
//	steps: 5000
//	policies:
//	  - kind: ts
//	  - kind: eg
//	    epsilon: 0.05
//	  - kind: eg
//	    epsilon: 0.2
//	    warmup: 100
type Experiment struct {
	Bandit   ExperimentBandit   `yaml:"bandit"`
	Seed     *uint64            `yaml:"seed"`
	Runs     int                `yaml:"runs"`
	Steps    int                `yaml:"steps"`
	Workers  int                `yaml:"workers"`
	Policies []ExperimentPolicy `yaml:"policies"`
}

// ExperimentBandit describes the simulated arms.
type ExperimentBandit struct {
	Family string    `yaml:"family"`
	Means  []float64 `yaml:"means"`
	Stds   []float64 `yaml:"stds"`
}

// ExperimentPolicy is one policy of the experiment; unset
// hyper-parameters fall back to the command-line values.
type ExperimentPolicy struct {
	Kind        string   `yaml:"kind"`
	SuccessInit *int     `yaml:"success_init"`
	FailureInit *int     `yaml:"failure_init"`
	Epsilon     *float64 `yaml:"epsilon"`
	ProbInit    *float64 `yaml:"prob_init"`
	Warmup      *int     `yaml:"warmup"`
}

// ReadExperiment parses an experiment file; unknown keys are rejected.
func ReadExperiment(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read experiment %v", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	exp := &Experiment{}
	if err := dec.Decode(exp); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(bandit.ErrInvalidConfig, "experiment %v is empty", path)
		}
		return nil, errors.Wrapf(err, "cannot parse experiment %v", path)
	}
	return exp, nil
}

// apply overrides the command-line settings of cfg with the experiment.
func (exp *Experiment) apply(cfg *Config) error {
	if exp.Bandit.Family != "" {
		cfg.Family = exp.Bandit.Family
	}
	if len(exp.Bandit.Means) > 0 {
		cfg.Means = exp.Bandit.Means
	}
	if len(exp.Bandit.Stds) > 0 {
		cfg.Stds = exp.Bandit.Stds
	}
	if exp.Seed != nil {
		cfg.Seed = *exp.Seed
		cfg.SeedSet = true
	}
	if exp.Runs != 0 {
		cfg.Runs = exp.Runs
	}
	if exp.Steps != 0 {
		cfg.Steps = exp.Steps
	}
	if exp.Workers != 0 {
		cfg.Workers = exp.Workers
	}
	if len(exp.Policies) == 0 {
		return nil
	}
	cfg.policies = make([]policy.Config, 0, len(exp.Policies))
	names := make([]string, 0, len(exp.Policies))
	for i, p := range exp.Policies {
		kind, err := policy.ParseKind(p.Kind)
		if err != nil {
			return errors.Wrapf(err, "experiment policy %d", i)
		}
		pc := cfg.policyConfig(kind)
		if p.SuccessInit != nil {
			pc.SuccessInit = *p.SuccessInit
		}
		if p.FailureInit != nil {
			pc.FailureInit = *p.FailureInit
		}
		if p.Epsilon != nil {
			pc.Epsilon = *p.Epsilon
		}
		if p.ProbInit != nil {
			pc.ProbInit = *p.ProbInit
		}
		if p.Warmup != nil {
			pc.Warmup = *p.Warmup
		}
		cfg.policies = append(cfg.policies, pc)
		names = append(names, string(kind))
	}
	cfg.Policies = names
	return nil
}
