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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/0xsoniclabs/aida-mab/cmd/mab-sim/sim"
	"github.com/urfave/cli/v2"
)

var mabSimApp = &cli.App{
	Name:      "Multi-Armed Bandit Simulator",
	HelpName:  "mab-sim",
	Usage:     "simulate selection strategies on stochastic multi-armed bandits",
	Copyright: "(c) 2025 Sonic Labs",
	Commands: []*cli.Command{
		&sim.RunCommand,
		&sim.BenchCommand,
		&sim.TuneEpsilonCommand,
		&sim.ReportCommand,
		&sim.VisualizeCommand,
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := mabSimApp.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
