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
	"os"

	"github.com/0xsoniclabs/aida-mab/logger"
	"github.com/0xsoniclabs/aida-mab/recorder"
	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/0xsoniclabs/aida-mab/utils"
	"github.com/0xsoniclabs/aida-mab/visualizer"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ReportCommand renders stored artifacts as an HTML report.
var ReportCommand = cli.Command{
	Action:    reportAction,
	Name:      "report",
	Usage:     "render stored runs as an HTML report",
	ArgsUsage: "<artifact-dir> <html-file>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
	},
	Description: `
The report command requires two arguments:
<artifact-dir> <html-file>

<artifact-dir> is a directory written by run or bench with --output,
<html-file> receives the charts of all policies found there.`,
}

// loadSummaries reads the artifacts of dir and averages them per policy.
func loadSummaries(dir string, log logger.Logger) ([]simulation.Summary, error) {
	results, err := recorder.ReadArtifacts(dir)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.Newf("no artifacts found in %v", dir)
	}
	summaries, err := simulation.Summarize(results)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded %d runs of %d policies from %v", len(results), len(summaries), dir)
	return summaries, nil
}

// reportAction implements the report command.
func reportAction(ctx *cli.Context) (err error) {
	cfg, err := utils.NewConfig(ctx, utils.ReportArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Report")

	summaries, err := loadSummaries(cfg.ArtifactDir, log)
	if err != nil {
		return err
	}

	file, err := os.Create(cfg.ReportFile)
	if err != nil {
		return errors.Wrapf(err, "cannot create report %v", cfg.ReportFile)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)
	if err = visualizer.RenderReport(file, summaries); err != nil {
		return err
	}
	log.Noticef("Write report %v", cfg.ReportFile)

	return utils.NewPrinters().
		AddPrinterToConsole(false, func() string { return summaryTable(summaries) }).
		Print()
}
