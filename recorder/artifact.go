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

// Package recorder persists finished simulation runs, either as one
// artifact file per run and metric or as rows of an SQLite database.
package recorder

import (
	"cmp"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

// Metric names one history of a run.
type Metric string

const (
	CounterMetric Metric = "counter" // pulls per arm
	RewardsMetric Metric = "rewards" // reward per step
	RegretsMetric Metric = "regrets" // regret per step
)

// Metrics lists every metric stored for a run.
var Metrics = []Metric{CounterMetric, RewardsMetric, RegretsMetric}

const (
	jsonExt = ".json"
	gzipExt = ".json.gz"
)

var (
	ErrMalformedName  = errors.New("malformed artifact name")
	ErrArtifactExists = errors.New("artifact already exists")
	ErrIncompleteRun  = errors.New("incomplete run")
)

// ArtifactName returns the base name <label>-<runID>-<metric> of an artifact.
func ArtifactName(label string, runID int, metric Metric) string {
	return label + "-" + strconv.Itoa(runID) + "-" + string(metric)
}

// ParseArtifactName splits a base name produced by ArtifactName. The name is
// split from the right, so labels may contain '-'.
func ParseArtifactName(name string) (string, int, Metric, error) {
	rest, metric, found := cutLast(name, "-")
	if !found {
		return "", 0, "", errors.Wrapf(ErrMalformedName, "%q has no metric", name)
	}
	if !slices.Contains(Metrics, Metric(metric)) {
		return "", 0, "", errors.Wrapf(ErrMalformedName, "%q has unknown metric %q", name, metric)
	}
	label, run, found := cutLast(rest, "-")
	if !found || label == "" {
		return "", 0, "", errors.Wrapf(ErrMalformedName, "%q has no label", name)
	}
	runID, err := strconv.Atoi(run)
	if err != nil || runID < 0 {
		return "", 0, "", errors.Wrapf(ErrMalformedName, "%q has invalid run id %q", name, run)
	}
	return label, runID, Metric(metric), nil
}

func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// ArtifactWriter stores every metric of a run as a JSON array in dir.
// Existing artifacts are never overwritten.
type ArtifactWriter struct {
	dir      string
	compress bool
}

// NewArtifactWriter creates the artifact directory if needed.
func NewArtifactWriter(dir string, compress bool) (*ArtifactWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "cannot create artifact directory %v", dir)
	}
	return &ArtifactWriter{dir: dir, compress: compress}, nil
}

// Path returns the file an artifact is written to.
func (w *ArtifactWriter) Path(label string, runID int, metric Metric) string {
	ext := jsonExt
	if w.compress {
		ext = gzipExt
	}
	return filepath.Join(w.dir, ArtifactName(label, runID, metric)+ext)
}

// Write stores the three histories of a run.
func (w *ArtifactWriter) Write(r simulation.Result) error {
	values := map[Metric]any{
		CounterMetric: r.Counts,
		RewardsMetric: r.Rewards,
		RegretsMetric: r.Regrets,
	}
	for _, metric := range Metrics {
		if err := writeArtifact(w.Path(r.Label, r.RunID, metric), w.compress, values[metric]); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, compress bool, values any) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.Wrapf(ErrArtifactExists, "%v", path)
		}
		return errors.Wrapf(err, "cannot create artifact %v", path)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	var out io.Writer = file
	if compress {
		zw := gzip.NewWriter(file)
		defer func() {
			err = errors.Join(err, zw.Close())
		}()
		out = zw
	}
	if err = json.NewEncoder(out).Encode(values); err != nil {
		return errors.Wrapf(err, "cannot encode artifact %v", path)
	}
	return nil
}

// readArtifact decodes one artifact into values; the extension of path
// decides whether it is gzip compressed.
func readArtifact(path string, values any) (err error) {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "cannot open artifact %v", path)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	var in io.Reader = file
	if strings.HasSuffix(path, gzipExt) {
		zr, err := gzip.NewReader(file)
		if err != nil {
			return errors.Wrapf(err, "cannot create gzip reader for %v", path)
		}
		defer zr.Close()
		in = zr
	}
	if err = json.NewDecoder(in).Decode(values); err != nil {
		return errors.Wrapf(err, "cannot decode artifact %v", path)
	}
	return nil
}

type runKey struct {
	label string
	runID int
}

// ReadArtifacts loads all runs stored in dir, sorted by label and run id.
// Files without an artifact extension are ignored; every run must have
// all three metrics.
func ReadArtifacts(dir string) ([]simulation.Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read artifact directory %v", dir)
	}
	runs := make(map[runKey]*simulation.Result)
	found := make(map[runKey]map[Metric]bool)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		base, ok := trimExt(entry.Name())
		if !ok {
			continue
		}
		label, runID, metric, err := ParseArtifactName(base)
		if err != nil {
			return nil, err
		}
		key := runKey{label, runID}
		r, ok := runs[key]
		if !ok {
			r = &simulation.Result{Label: label, RunID: runID}
			runs[key] = r
			found[key] = make(map[Metric]bool)
		}
		if found[key][metric] {
			return nil, errors.Wrapf(ErrArtifactExists, "%v of %v run %d is stored twice", metric, label, runID)
		}
		found[key][metric] = true

		path := filepath.Join(dir, entry.Name())
		switch metric {
		case CounterMetric:
			err = readArtifact(path, &r.Counts)
		case RewardsMetric:
			err = readArtifact(path, &r.Rewards)
		case RegretsMetric:
			err = readArtifact(path, &r.Regrets)
		}
		if err != nil {
			return nil, err
		}
	}

	results := make([]simulation.Result, 0, len(runs))
	for key, r := range runs {
		for _, metric := range Metrics {
			if !found[key][metric] {
				return nil, errors.Wrapf(ErrIncompleteRun, "%v run %d has no %v", key.label, key.runID, metric)
			}
		}
		if len(r.Rewards) != len(r.Regrets) {
			return nil, errors.Wrapf(ErrIncompleteRun, "%v run %d has %d rewards but %d regrets",
				key.label, key.runID, len(r.Rewards), len(r.Regrets))
		}
		results = append(results, *r)
	}
	slices.SortFunc(results, func(a, b simulation.Result) int {
		return cmp.Or(cmp.Compare(a.Label, b.Label), cmp.Compare(a.RunID, b.RunID))
	})
	return results, nil
}

func trimExt(name string) (string, bool) {
	if base, ok := strings.CutSuffix(name, gzipExt); ok {
		return base, true
	}
	return strings.CutSuffix(name, jsonExt)
}
