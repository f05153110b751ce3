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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_CumulativeHistories(t *testing.T) {
	r := Result{
		Counts:  []int{1, 2},
		Rewards: []float64{1, 0, 1},
		Regrets: []float64{0.5, 0, 0.25},
	}
	assert.Equal(t, 3, r.Steps())
	assert.Equal(t, []float64{1, 1, 2}, r.CumulativeRewards())
	assert.Equal(t, []float64{0.5, 0.5, 0.75}, r.CumulativeRegrets())
	assert.Equal(t, 2.0, r.TotalReward())
	assert.Equal(t, 0.75, r.TotalRegret())

	empty := Result{}
	assert.Empty(t, empty.CumulativeRewards())
	assert.Equal(t, 0.0, empty.TotalRegret())
}

func TestSummarize_AveragesRunsPerLabel(t *testing.T) {
	results := []Result{
		{Label: "ts-1_1", RunID: 0, Counts: []int{2, 0}, Rewards: []float64{1, 1}, Regrets: []float64{0, 0}},
		{Label: "rand", RunID: 0, Counts: []int{1, 1}, Rewards: []float64{0, 1}, Regrets: []float64{0.5, 0}},
		{Label: "ts-1_1", RunID: 1, Counts: []int{1, 1}, Rewards: []float64{0, 1}, Regrets: []float64{0.5, 0}},
	}
	summaries, err := Summarize(results)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	ts := summaries[0]
	assert.Equal(t, "ts-1_1", ts.Label)
	assert.Equal(t, 2, ts.Runs)
	assert.Equal(t, 2, ts.Steps())
	assert.Equal(t, []float64{1.5, 0.5}, ts.MeanCounts)
	assert.Equal(t, []float64{0.5, 1}, ts.MeanRewards)
	assert.Equal(t, []float64{0.5, 1.5}, ts.MeanCumulativeRewards)
	assert.Equal(t, []float64{0.25, 0.25}, ts.MeanCumulativeRegrets)
	assert.Equal(t, 1.5, ts.MeanTotalReward())
	assert.Equal(t, 0.25, ts.MeanTotalRegret())

	random := summaries[1]
	assert.Equal(t, "rand", random.Label)
	assert.Equal(t, 1, random.Runs)
	assert.Equal(t, []float64{0, 1}, random.MeanRewards)
}

func TestSummarize_RejectsMismatchedRuns(t *testing.T) {
	_, err := Summarize([]Result{
		{Label: "rand", Counts: []int{1}, Rewards: []float64{1}, Regrets: []float64{0}},
		{Label: "rand", Counts: []int{1}, Rewards: []float64{1, 0}, Regrets: []float64{0, 0}},
	})
	assert.Error(t, err)

	_, err = Summarize([]Result{
		{Label: "rand", Counts: []int{1}, Rewards: []float64{1}, Regrets: []float64{0}},
		{Label: "rand", Counts: []int{0, 1}, Rewards: []float64{1}, Regrets: []float64{0}},
	})
	assert.Error(t, err)
}

func TestSummarize_EmptyInput(t *testing.T) {
	summaries, err := Summarize(nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
