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

package recorder

import (
	"math"

	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	// registers the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

const (
	// bufferSize of the in-memory buffer for run records
	bufferSize = 100

	// SQL statement for inserting the totals of a run
	insertRunSQL = `
INSERT INTO runs (
	label, run, seed, steps, totalReward, totalRegret
) VALUES (
	?, ?, ?, ?, ?, ?
)
`
	// SQL statement for inserting the pull count of an arm
	insertArmSQL = `
INSERT INTO arms (
	label, run, arm, count
) VALUES (
	?, ?, ?, ?
)
`
	// SQL statement for creating the result tables
	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS runs (
	label TEXT,
	run INTEGER,
	seed INTEGER,
	steps INTEGER,
	totalReward FLOAT,
	totalRegret FLOAT
);
CREATE TABLE IF NOT EXISTS arms (
	label TEXT,
	run INTEGER,
	arm INTEGER,
	count INTEGER
);
`
	// SQL query averaging the totals of every label
	totalsSQL = `
SELECT label, COUNT(*) AS runs, AVG(totalReward) AS meanReward, AVG(totalRegret) AS meanRegret
FROM runs
GROUP BY label
ORDER BY label
`
)

// ErrSeedOutOfRange is returned for runs whose seed does not fit the
// signed 64-bit seed column.
var ErrSeedOutOfRange = errors.New("seed out of range")

// Totals are the mean run totals of one policy label.
type Totals struct {
	Label           string  `db:"label"`
	Runs            int     `db:"runs"`
	MeanTotalReward float64 `db:"meanReward"`
	MeanTotalRegret float64 `db:"meanRegret"`
}

// ResultDB stores finished runs in an SQLite database.
type ResultDB interface {
	simulation.Sink
	Add(r simulation.Result) error
	Flush() error
	Close() error
	Totals() ([]Totals, error)
}

// resultDB buffers runs and writes them in one transaction per flush.
type resultDB struct {
	sql     *sqlx.DB
	runStmt *sqlx.Stmt          // prepared insert statement for a run
	armStmt *sqlx.Stmt          // prepared insert statement for an arm count
	buffer  []simulation.Result // record buffer
}

// NewResultDB opens (or creates) the result database in dbFile.
func NewResultDB(dbFile string) (ResultDB, error) {
	return newResultDB(dbFile)
}

func newResultDB(dbFile string) (*resultDB, error) {
	sqlDB, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %v", dbFile)
	}
	if _, err = sqlDB.Exec(createSQL); err != nil {
		return nil, errors.Join(errors.Wrap(err, "failed to create result tables"), sqlDB.Close())
	}
	runStmt, err := sqlDB.Preparex(insertRunSQL)
	if err != nil {
		return nil, errors.Join(errors.Wrap(err, "failed to prepare a SQL statement for runs"), sqlDB.Close())
	}
	armStmt, err := sqlDB.Preparex(insertArmSQL)
	if err != nil {
		return nil, errors.Join(errors.Wrap(err, "failed to prepare a SQL statement for arms"), sqlDB.Close())
	}
	return &resultDB{
		sql:     sqlDB,
		runStmt: runStmt,
		armStmt: armStmt,
		buffer:  make([]simulation.Result, 0, bufferSize),
	}, nil
}

// Close flushes the buffer and closes the database.
func (db *resultDB) Close() error {
	err := db.Flush()
	return errors.Join(err, db.armStmt.Close(), db.runStmt.Close(), db.sql.Close())
}

// Write adds a finished run.
func (db *resultDB) Write(r simulation.Result) error {
	return db.Add(r)
}

// Add buffers a run; a full buffer is flushed. Seeds above math.MaxInt64
// are rejected.
func (db *resultDB) Add(r simulation.Result) error {
	if r.Seed > math.MaxInt64 {
		return errors.Wrapf(ErrSeedOutOfRange, "run %d of %v has seed %d", r.RunID, r.Label, r.Seed)
	}
	db.buffer = append(db.buffer, r)
	if len(db.buffer) == cap(db.buffer) {
		if err := db.Flush(); err != nil {
			return errors.Wrap(err, "unable to flush runs")
		}
	}
	return nil
}

// Flush writes the buffered runs in a single transaction. On failure the
// transaction is rolled back and the buffer is kept.
func (db *resultDB) Flush() error {
	if len(db.buffer) == 0 {
		return nil
	}
	tx, err := db.sql.Beginx()
	if err != nil {
		return err
	}
	for _, r := range db.buffer {
		_, err = tx.Stmtx(db.runStmt).Exec(r.Label, r.RunID, int64(r.Seed), r.Steps(), r.TotalReward(), r.TotalRegret())
		if err != nil {
			return errors.Join(err, tx.Rollback())
		}
		for arm, count := range r.Counts {
			if _, err = tx.Stmtx(db.armStmt).Exec(r.Label, r.RunID, arm, count); err != nil {
				return errors.Join(err, tx.Rollback())
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	db.buffer = db.buffer[:0]
	return nil
}

// Totals flushes pending runs and returns the mean totals per label.
func (db *resultDB) Totals() ([]Totals, error) {
	if err := db.Flush(); err != nil {
		return nil, err
	}
	var totals []Totals
	if err := db.sql.Select(&totals, totalsSQL); err != nil {
		return nil, errors.Wrap(err, "failed to query totals")
	}
	return totals, nil
}
