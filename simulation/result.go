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

package simulation

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// Result holds the histories of one finished run.
type Result struct {
	Label   string    // policy label
	RunID   int       // index of the run within its label
	Seed    uint64    // seed of the bandit generator
	Counts  []int     // pulls per arm
	Rewards []float64 // reward per step
	Regrets []float64 // regret per step
}

// Steps returns the horizon of the run.
func (r Result) Steps() int {
	return len(r.Rewards)
}

func (r Result) CumulativeRewards() []float64 {
	return floats.CumSum(make([]float64, len(r.Rewards)), r.Rewards)
}

func (r Result) CumulativeRegrets() []float64 {
	return floats.CumSum(make([]float64, len(r.Regrets)), r.Regrets)
}

func (r Result) TotalReward() float64 {
	return floats.Sum(r.Rewards)
}

func (r Result) TotalRegret() float64 {
	return floats.Sum(r.Regrets)
}

// Summary averages the runs of one policy label element-wise.
type Summary struct {
	Label                 string
	Runs                  int
	MeanCounts            []float64
	MeanRewards           []float64
	MeanCumulativeRewards []float64
	MeanCumulativeRegrets []float64
}

// Steps returns the common horizon of the summarised runs.
func (s Summary) Steps() int {
	return len(s.MeanRewards)
}

// MeanTotalReward is the average over runs of the total reward.
func (s Summary) MeanTotalReward() float64 {
	return last(s.MeanCumulativeRewards)
}

// MeanTotalRegret is the average over runs of the total regret.
func (s Summary) MeanTotalRegret() float64 {
	return last(s.MeanCumulativeRegrets)
}

// Summarize groups results by label, in order of first appearance, and
// averages each group. All runs of a label must share horizon and arm count.
func Summarize(results []Result) ([]Summary, error) {
	var summaries []Summary
	index := make(map[string]int)
	for _, r := range results {
		i, found := index[r.Label]
		if !found {
			i = len(summaries)
			index[r.Label] = i
			summaries = append(summaries, Summary{
				Label:                 r.Label,
				MeanCounts:            make([]float64, len(r.Counts)),
				MeanRewards:           make([]float64, r.Steps()),
				MeanCumulativeRewards: make([]float64, r.Steps()),
				MeanCumulativeRegrets: make([]float64, r.Steps()),
			})
		}
		s := &summaries[i]
		if len(r.Counts) != len(s.MeanCounts) || r.Steps() != s.Steps() || len(r.Regrets) != s.Steps() {
			return nil, errors.Newf("run %d of %v has %d arms and %d steps, expected %d arms and %d steps",
				r.RunID, r.Label, len(r.Counts), r.Steps(), len(s.MeanCounts), s.Steps())
		}
		for arm, c := range r.Counts {
			s.MeanCounts[arm] += float64(c)
		}
		floats.Add(s.MeanRewards, r.Rewards)
		floats.Add(s.MeanCumulativeRewards, r.CumulativeRewards())
		floats.Add(s.MeanCumulativeRegrets, r.CumulativeRegrets())
		s.Runs++
	}
	for i := range summaries {
		s := &summaries[i]
		f := 1 / float64(s.Runs)
		floats.Scale(f, s.MeanCounts)
		floats.Scale(f, s.MeanRewards)
		floats.Scale(f, s.MeanCumulativeRewards)
		floats.Scale(f, s.MeanCumulativeRegrets)
	}
	return summaries, nil
}

func last(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}
