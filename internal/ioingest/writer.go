package ioingest

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/rncdb/rncdb/pkg/db"
	"github.com/rncdb/rncdb/pkg/rnc"
)

// Writer stores batches of records, one transaction per batch.
type Writer struct {
	db      *sql.DB
	dialect db.Dialect
	log     *slog.Logger
}

// NewWriter creates a Writer on top of an open storage handle. Warnings
// go to log, the default logger is used if it is nil.
func NewWriter(sqlDB *sql.DB, d db.Dialect, log *slog.Logger) *Writer {
	if log == nil {
		log = slog.Default()
	}
	return &Writer{db: sqlDB, dialect: d, log: log}
}

// Write inserts all records of the batch in one transaction and returns
// the number of rows storage reported as affected. That number may be
// smaller than the batch, it is returned as is.
//
// Batches larger than the bind parameter limit of the engine are split
// into several INSERT statements inside the same transaction. On any
// failure the transaction is rolled back and *BatchWriteError is returned.
func (w *Writer) Write(ctx context.Context, batch []rnc.Record) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &BatchWriteError{Size: len(batch), Err: err}
	}

	var affected int64
	step := w.dialect.RowsPerStatement(len(rnc.Columns))
	for start := 0; start < len(batch); start += step {
		chunk := batch[start:min(start+step, len(batch))]

		n, err := w.insert(ctx, tx, chunk)
		if err != nil {
			w.rollback(tx)
			return 0, &BatchWriteError{Size: len(batch), Err: err}
		}
		affected += n
	}

	if err = tx.Commit(); err != nil {
		return 0, &BatchWriteError{Size: len(batch), Err: err}
	}

	return int(affected), nil
}

func (w *Writer) insert(
	ctx context.Context,
	tx *sql.Tx,
	records []rnc.Record,
) (int64, error) {
	query := w.dialect.InsertSQL(rnc.TableName, rnc.Columns, len(records))

	args := make([]any, 0, len(records)*len(rnc.Columns))
	for _, r := range records {
		args = append(args, r.Values()...)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		// some drivers cannot report it, the statement succeeded anyway
		w.log.Warn("Cannot get number of affected rows", "error", err)
		return int64(len(records)), nil
	}
	return n, nil
}

func (w *Writer) rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		w.log.Warn("Rollback failed", "error", err)
	}
}
