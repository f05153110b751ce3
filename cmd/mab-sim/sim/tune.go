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

package sim

import (
	"github.com/0xsoniclabs/aida-mab/logger"
	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/0xsoniclabs/aida-mab/utils"
	"github.com/urfave/cli/v2"
)

// TuneEpsilonCommand sweeps the exploration probability of epsilon-greedy.
var TuneEpsilonCommand = cli.Command{
	Action: tuneEpsilonAction,
	Name:   "tune-eps",
	Usage:  "find the best exploration probability of epsilon-greedy",
	Flags: []cli.Flag{
		&utils.FamilyFlag,
		&utils.MeansFlag,
		&utils.StdsFlag,
		&utils.SeedFlag,
		&utils.RunsFlag,
		&utils.StepsFlag,
		&utils.EpsPointsFlag,
		&utils.ProbInitFlag,
		&utils.WorkersFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The tune-eps command scores --eps-points values of epsilon evenly spaced
over [0,1] by the total reward of epsilon-greedy, averaged over a fixed
set of seeds. Giving --seed scores on --runs consecutive seeds instead.`,
}

// tuneEpsilonAction implements the tune-eps command.
func tuneEpsilonAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "TuneEpsilon")

	res, err := simulation.TuneEpsilon(ctx.Context, cfg.TuneConfig(), log)
	if err != nil {
		return err
	}
	return utils.NewPrinters().
		AddPrinterToConsole(false, func() string { return tuneTable(res) }).
		Print()
}
