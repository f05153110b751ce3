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
	"github.com/0xsoniclabs/aida-mab/utils"
	"github.com/0xsoniclabs/aida-mab/visualizer"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand serves the charts of stored artifacts.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "serve the charts of stored runs on a local web server",
	ArgsUsage: "<artifact-dir>",
	Flags: []cli.Flag{
		&utils.PortFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The visualize command requires one argument:
<artifact-dir>

<artifact-dir> is a directory written by run or bench with --output.
The charts are served on http://localhost:<port>.`,
}

// visualizeAction implements the visualize command.
func visualizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx, utils.ArtifactDirArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Visualize")

	summaries, err := loadSummaries(cfg.ArtifactDir, log)
	if err != nil {
		return err
	}
	log.Noticef("Open web browser with http://localhost:%v", cfg.Port)
	log.Notice("Cancel visualize with ^C")
	return visualizer.FireUpWeb(summaries, cfg.Port)
}
