package ioingest

import (
	"bytes"
	"context"
	"database/sql/driver"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rncdb/rncdb/pkg/db"
	"github.com/rncdb/rncdb/pkg/rnc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords(t *testing.T, ids ...string) []rnc.Record {
	t.Helper()
	res := make([]rnc.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := rnc.New([]string{
			id, "JUAN  PEREZ", "", "VENTA", "", "", "", "",
			"15/06/2023", "ACTIVO", "NORMAL",
		})
		require.NoError(t, err)
		res = append(res, rec)
	}
	return res
}

func argsOf(records []rnc.Record) []driver.Value {
	var res []driver.Value
	for _, r := range records {
		for _, v := range r.Values() {
			res = append(res, v)
		}
	}
	return res
}

func TestWrite(t *testing.T) {
	ctx := context.Background()
	batch := testRecords(t, "101", "102")
	query := db.Postgres.InsertSQL(rnc.TableName, rnc.Columns, 2)

	t.Run("commits batch", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(
			sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).
			WithArgs(argsOf(batch)...).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		n, err := NewWriter(sqlDB, db.Postgres, nil).Write(ctx, batch)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("trusts rows affected", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(
			sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		n, err := NewWriter(sqlDB, db.Postgres, nil).Write(ctx, batch)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(
			sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer sqlDB.Close()

		cause := errors.New("duplicate key value violates unique constraint")
		mock.ExpectBegin()
		mock.ExpectExec(query).WillReturnError(cause)
		mock.ExpectRollback()

		n, err := NewWriter(sqlDB, db.Postgres, nil).Write(ctx, batch)
		require.Error(t, err)
		assert.Equal(t, 0, n)

		var bwErr *BatchWriteError
		require.ErrorAs(t, err, &bwErr)
		assert.Equal(t, 2, bwErr.Size)
		assert.ErrorIs(t, err, cause)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails on begin", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

		_, err = NewWriter(sqlDB, db.Postgres, nil).Write(ctx, batch)
		var bwErr *BatchWriteError
		assert.ErrorAs(t, err, &bwErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails on commit", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(
			sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		n, err := NewWriter(sqlDB, db.Postgres, nil).Write(ctx, batch)
		var bwErr *BatchWriteError
		assert.ErrorAs(t, err, &bwErr)
		assert.Equal(t, 0, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty batch does nothing", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()

		n, err := NewWriter(sqlDB, db.Postgres, nil).Write(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestWrite_Chunks checks that a batch over the parameter limit is split
// into several statements of one transaction.
func TestWrite_Chunks(t *testing.T) {
	ctx := context.Background()
	batch := testRecords(t, "1", "2", "3", "4", "5")

	// two rows of six columns per statement
	dialect := db.SQLite
	dialect.MaxParams = 12

	sqlDB, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer sqlDB.Close()

	twoRows := dialect.InsertSQL(rnc.TableName, rnc.Columns, 2)
	oneRow := dialect.InsertSQL(rnc.TableName, rnc.Columns, 1)

	mock.ExpectBegin()
	mock.ExpectExec(twoRows).WithArgs(argsOf(batch[0:2])...).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(twoRows).WithArgs(argsOf(batch[2:4])...).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(oneRow).WithArgs(argsOf(batch[4:])...).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := NewWriter(sqlDB, dialect, nil).Write(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestWrite_ChunkFailure checks that a failure in a later statement rolls
// back the earlier ones too.
func TestWrite_ChunkFailure(t *testing.T) {
	ctx := context.Background()
	batch := testRecords(t, "1", "2", "3")

	dialect := db.SQLite
	dialect.MaxParams = 12

	sqlDB, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(dialect.InsertSQL(rnc.TableName, rnc.Columns, 2)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(dialect.InsertSQL(rnc.TableName, rnc.Columns, 1)).
		WillReturnError(errors.New("UNIQUE constraint failed: rnc.rnc"))
	mock.ExpectRollback()

	n, err := NewWriter(sqlDB, dialect, nil).Write(ctx, batch)
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWrite_WarningsUseRunLogger(t *testing.T) {
	ctx := context.Background()
	batch := testRecords(t, "101", "102")
	query := db.Postgres.InsertSQL(rnc.TableName, rnc.Columns, 2)

	newLogger := func() (*slog.Logger, *bytes.Buffer) {
		var buf bytes.Buffer
		h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		return slog.New(h).With("run_id", "run-42"), &buf
	}

	t.Run("rows affected unavailable", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(
			sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).
			WillReturnResult(sqlmock.NewErrorResult(errors.New("not supported")))
		mock.ExpectCommit()

		log, buf := newLogger()
		n, err := NewWriter(sqlDB, db.Postgres, log).Write(ctx, batch)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Contains(t, buf.String(), "Cannot get number of affected rows")
		assert.Contains(t, buf.String(), "run_id=run-42")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback failure", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(
			sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer sqlDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(query).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

		log, buf := newLogger()
		_, err = NewWriter(sqlDB, db.Postgres, log).Write(ctx, batch)
		require.Error(t, err)
		assert.Contains(t, buf.String(), "Rollback failed")
		assert.Contains(t, buf.String(), "run_id=run-42")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
