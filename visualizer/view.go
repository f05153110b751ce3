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

package visualizer

import (
	"sync"

	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// NumChartPoints is the maximum number of points drawn per curve.
const NumChartPoints = 300

type curve struct {
	label  string
	points [][2]float64
}

// viewState holds the chart data derived from the summaries.
type viewState struct {
	summaries         []simulation.Summary
	meanRewards       []curve
	cumulativeRewards []curve
	cumulativeRegrets []curve
	numArms           int
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(summaries []simulation.Summary) error {
	derived, err := buildViewState(summaries)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, errors.New("visualizer: no results loaded")
	}
	return currentState, nil
}

func buildViewState(summaries []simulation.Summary) (*viewState, error) {
	if len(summaries) == 0 {
		return nil, errors.New("visualizer: no results to show")
	}
	view := &viewState{summaries: summaries}
	for _, s := range summaries {
		view.meanRewards = append(view.meanRewards, curve{s.Label, simplifyCurve(s.MeanRewards)})
		view.cumulativeRewards = append(view.cumulativeRewards, curve{s.Label, simplifyCurve(s.MeanCumulativeRewards)})
		view.cumulativeRegrets = append(view.cumulativeRegrets, curve{s.Label, simplifyCurve(s.MeanCumulativeRegrets)})
		view.numArms = max(view.numArms, len(s.MeanCounts))
	}
	return view, nil
}

// simplifyCurve turns a per-step series into (step, value) points, with
// steps counted from 1. Long series are reduced to NumChartPoints points
// using the Visvalingam-Whyatt algorithm, see
// https://en.wikipedia.org/wiki/Visvalingam-Whyatt_algorithm
func simplifyCurve(ys []float64) [][2]float64 {
	ls := make(orb.LineString, len(ys))
	for i, y := range ys {
		ls[i] = orb.Point{float64(i + 1), y}
	}
	if len(ls) > NumChartPoints {
		ls = simplify.VisvalingamKeep(NumChartPoints).Simplify(ls).(orb.LineString)
	}
	points := make([][2]float64, len(ls))
	for i := range ls {
		points[i] = [2]float64(ls[i])
	}
	return points
}
