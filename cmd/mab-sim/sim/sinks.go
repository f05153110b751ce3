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
	"path/filepath"

	"github.com/0xsoniclabs/aida-mab/recorder"
	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/0xsoniclabs/aida-mab/utils"
	"github.com/cockroachdb/errors"
)

// summaryFileName is the text summary written next to the artifacts.
const summaryFileName = "summary.txt"

// outputs are the persistence collaborators enabled on the command line.
type outputs struct {
	sinks []simulation.Sink
	db    recorder.ResultDB
}

// openOutputs creates an artifact writer for --output and opens the
// result database for --db.
func openOutputs(cfg *utils.Config) (*outputs, error) {
	out := &outputs{}
	if cfg.Output != "" {
		w, err := recorder.NewArtifactWriter(cfg.Output, cfg.Compress)
		if err != nil {
			return nil, err
		}
		out.sinks = append(out.sinks, w)
	}
	if cfg.ResultDb != "" {
		db, err := recorder.NewResultDB(cfg.ResultDb)
		if err != nil {
			return nil, err
		}
		out.db = db
		out.sinks = append(out.sinks, db)
	}
	return out, nil
}

// summaryFile returns the text summary path or "" without --output.
func summaryFile(cfg *utils.Config) string {
	if cfg.Output == "" {
		return ""
	}
	return filepath.Join(cfg.Output, summaryFileName)
}

func (o *outputs) Close() error {
	if o.db == nil {
		return nil
	}
	return errors.Wrap(o.db.Close(), "cannot close result database")
}
