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
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/aida-mab/simulation"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultDB_StoresRunsAndArmCounts(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "results.db")
	db, err := newResultDB(dbFile)
	require.NoError(t, err)

	second := testResult("rand", 1)
	second.Rewards = []float64{1, 1, 1}
	second.Seed = 5
	require.NoError(t, db.Write(testResult("rand", 0)))
	require.NoError(t, db.Add(second))
	require.NoError(t, db.Add(testResult("ts-1_1", 0)))

	totals, err := db.Totals()
	require.NoError(t, err)
	assert.Equal(t, []Totals{
		{Label: "rand", Runs: 2, MeanTotalReward: 2.5, MeanTotalRegret: 0.75},
		{Label: "ts-1_1", Runs: 1, MeanTotalReward: 2, MeanTotalRegret: 0.75},
	}, totals)

	var arms int
	require.NoError(t, db.sql.Get(&arms, "SELECT COUNT(*) FROM arms"))
	assert.Equal(t, 9, arms)
	var seed int64
	require.NoError(t, db.sql.Get(&seed, "SELECT seed FROM runs WHERE label = 'rand' AND run = 1"))
	assert.Equal(t, int64(5), seed)
	require.NoError(t, db.Close())

	// reopening keeps earlier rows
	db, err = newResultDB(dbFile)
	require.NoError(t, err)
	require.NoError(t, db.Add(testResult("ts-1_1", 1)))
	totals, err = db.Totals()
	require.NoError(t, err)
	assert.Equal(t, 2, totals[1].Runs)
	require.NoError(t, db.Close())
}

func TestResultDB_FlushesFullBuffer(t *testing.T) {
	db, err := newResultDB(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, db.Close())
	}()
	for i := range bufferSize {
		require.NoError(t, db.Add(testResult("rand", i)))
	}
	assert.Empty(t, db.buffer)

	var runs int
	require.NoError(t, db.sql.Get(&runs, "SELECT COUNT(*) FROM runs"))
	assert.Equal(t, bufferSize, runs)
}

func TestResultDB_RejectsSeedsBeyondInt64(t *testing.T) {
	db, err := newResultDB(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, db.Close())
	}()

	r := testResult("rand", 0)
	r.Seed = math.MaxInt64
	require.NoError(t, db.Add(r))

	r = testResult("rand", 1)
	r.Seed = math.MaxInt64 + 1
	err = db.Add(r)
	assert.ErrorIs(t, err, ErrSeedOutOfRange)
	assert.Len(t, db.buffer, 1)

	var seed int64
	require.NoError(t, db.Flush())
	require.NoError(t, db.sql.Get(&seed, "SELECT seed FROM runs WHERE run = 0"))
	assert.Equal(t, int64(math.MaxInt64), seed)
}

func TestResultDB_FlushFailures(t *testing.T) {
	mockErr := errors.New("mock error")

	newMockDB := func(t *testing.T) (*resultDB, sqlmock.Sqlmock, *sqlmock.ExpectedPrepare, *sqlmock.ExpectedPrepare) {
		db, mockDb, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		t.Cleanup(func() {
			_ = db.Close()
		})
		sqlDB := sqlx.NewDb(db, "sqlmock")
		mockRunStmt := mockDb.ExpectPrepare("")
		runStmt, err := sqlDB.Preparex("")
		require.NoError(t, err)
		mockArmStmt := mockDb.ExpectPrepare("")
		armStmt, err := sqlDB.Preparex("")
		require.NoError(t, err)
		return &resultDB{
			sql:     sqlDB,
			runStmt: runStmt,
			armStmt: armStmt,
			buffer:  make([]simulation.Result, 0, bufferSize),
		}, mockDb, mockRunStmt, mockArmStmt
	}

	t.Run("Success", func(t *testing.T) {
		db, mockDb, runStmt, armStmt := newMockDB(t)
		mockDb.ExpectBegin()
		runStmt.ExpectExec().WithArgs("rand", 0, int64(0), 3, 2.0, 0.75).WillReturnResult(sqlmock.NewResult(1, 1))
		for arm, count := range []int{2, 1, 0} {
			armStmt.ExpectExec().WithArgs("rand", 0, arm, count).WillReturnResult(sqlmock.NewResult(1, 1))
		}
		mockDb.ExpectCommit()

		require.NoError(t, db.Add(testResult("rand", 0)))
		assert.NoError(t, db.Flush())
		assert.Empty(t, db.buffer)
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("BeginError", func(t *testing.T) {
		db, mockDb, _, _ := newMockDB(t)
		mockDb.ExpectBegin().WillReturnError(mockErr)

		require.NoError(t, db.Add(testResult("rand", 0)))
		err := db.Flush()
		assert.ErrorIs(t, err, mockErr)
		assert.Len(t, db.buffer, 1)
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("WriteRunError", func(t *testing.T) {
		db, mockDb, runStmt, _ := newMockDB(t)
		mockDb.ExpectBegin()
		runStmt.ExpectExec().WillReturnError(mockErr)
		mockDb.ExpectRollback()

		require.NoError(t, db.Add(testResult("rand", 0)))
		err := db.Flush()
		assert.ErrorIs(t, err, mockErr)
		assert.Len(t, db.buffer, 1)
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("WriteArmError", func(t *testing.T) {
		db, mockDb, runStmt, armStmt := newMockDB(t)
		mockDb.ExpectBegin()
		runStmt.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
		armStmt.ExpectExec().WillReturnError(mockErr)
		mockDb.ExpectRollback()

		require.NoError(t, db.Add(testResult("rand", 0)))
		err := db.Flush()
		assert.ErrorIs(t, err, mockErr)
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("EmptyBufferSkipsTransaction", func(t *testing.T) {
		db, mockDb, _, _ := newMockDB(t)
		assert.NoError(t, db.Flush())
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})
}
