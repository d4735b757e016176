// Package ioingest implements Ingester interface for importing a
// delimited registry export into the rnc table.
// This is an impure I/O package that reads the source file and performs
// batched bulk inserts.
package ioingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/rncdb/rncdb/pkg/db"
	"github.com/rncdb/rncdb/pkg/lifecycle"
	"github.com/rncdb/rncdb/pkg/rnc"
)

// ingester implements the lifecycle.Ingester interface.
type ingester struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Ingester. The operator must not be connected, the
// ingester opens the connection once the source file is open and closes
// it at the end of the run.
func New(cfg *config.Config, op db.Operator) lifecycle.Ingester {
	return &ingester{cfg: cfg, operator: op}
}

// run keeps the state of one ingestion.
type run struct {
	log    *slog.Logger
	src    *source
	exists ExistsFunc
	writer *Writer
	acc    *rnc.Accumulator
	bar    progress
	report lifecycle.Report
}

// Ingest reads the source at path and stores its records in batches.
func (in *ingester) Ingest(
	ctx context.Context,
	path string,
) (lifecycle.Report, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	log := slog.With("run_id", runID)
	report := lifecycle.Report{RunID: runID}

	log.Info("Starting ingestion",
		"path", path,
		"batch_size", in.cfg.Import.BatchSize,
		"skip_existing", in.cfg.Import.SkipExisting,
	)

	src, err := openSource(path, in.cfg.Import)
	if err != nil {
		log.Error("Cannot open source", "path", path, "error", err)
		return report, err
	}
	defer src.close()

	if err = in.operator.Connect(ctx, &in.cfg.Database); err != nil {
		log.Error("Cannot connect to database", "error", err)
		return report, err
	}
	defer in.operator.Close()

	exists, err := in.operator.TableExists(ctx, rnc.TableName)
	if err != nil {
		return report, err
	}
	if !exists {
		return report, TableNotFoundError(rnc.TableName)
	}

	r := &run{
		log:    log,
		src:    src,
		exists: NoneExist,
		writer: NewWriter(in.operator.DB(), in.operator.Dialect(), log),
		acc:    rnc.NewAccumulator(in.cfg.Import.BatchSize),
		bar:    newProgress(in.cfg.Import.Quiet),
		report: report,
	}
	if in.cfg.Import.SkipExisting {
		r.exists = SQLExists(in.operator.DB(), in.operator.Dialect())
	}

	err = r.process(ctx)
	r.bar.finish()
	r.report.Duration = time.Since(startTime)
	if err != nil {
		log.Error("Ingestion aborted",
			"total", r.report.Total,
			"rows", r.report.Rows,
			"error", err,
		)
		return r.report, err
	}

	r.summary()
	return r.report, nil
}

// process skips the header, runs the row loop and flushes the tail.
func (r *run) process(ctx context.Context) error {
	_, err := r.src.next()
	if errors.Is(err, io.EOF) {
		r.log.Warn("Source is empty")
		return nil
	}
	if err != nil && !errors.Is(err, rnc.ErrMalformedRow) {
		return err
	}

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return CancelledError(ctxErr)
		}

		fields, err := r.src.next()
		if errors.Is(err, io.EOF) {
			break
		}
		r.report.Rows++
		if errors.Is(err, rnc.ErrMalformedRow) {
			r.report.Malformed++
			r.log.Debug("Skipping row", "row", r.report.Rows, "error", err)
			continue
		}
		if err != nil {
			return err
		}

		if err = r.addRow(ctx, fields); err != nil {
			return err
		}

		if r.acc.IsFull() {
			r.flush(ctx)
			r.bar.add(r.acc.Size())
		}
	}

	if r.acc.Len() > 0 {
		tail := r.acc.Len()
		r.flush(ctx)
		r.bar.add(tail)
	}
	return nil
}

// addRow normalizes the fields, filters out stored records and adds the
// rest to the batch. Only a failed duplicate lookup is returned as error.
func (r *run) addRow(ctx context.Context, fields []string) error {
	rec, err := rnc.New(fields)
	if err != nil {
		r.report.Malformed++
		r.log.Debug("Skipping row",
			"row", r.report.Rows,
			"fields", len(fields),
		)
		return nil
	}

	stored, err := r.exists(ctx, rec.ID)
	if err != nil {
		return err
	}
	if stored {
		r.report.Duplicates++
		return nil
	}

	r.acc.Add(rec)
	return nil
}

// flush writes the accumulated records. A failed batch is logged and
// dropped, the run continues.
func (r *run) flush(ctx context.Context) {
	batch := r.acc.Drain()
	r.report.Batches++

	n, err := r.writer.Write(ctx, batch)
	if err != nil {
		r.report.FailedBatches++
		r.report.FailedRecords += len(batch)

		var bwErr *BatchWriteError
		if errors.As(err, &bwErr) {
			r.log.Error("Cannot add records to the database",
				"batch", r.report.Batches,
				"size", bwErr.Size,
				"error", bwErr.Err,
			)
		}
		return
	}

	r.report.Total += n
	r.log.Debug("Batch stored",
		"batch", r.report.Batches,
		"size", len(batch),
		"added", n,
	)
}

func (r *run) summary() {
	rep := r.report
	dur := gnfmt.TimeString(rep.Duration.Seconds())

	r.log.Info("Ingestion complete",
		"total", rep.Total,
		"rows", rep.Rows,
		"malformed", rep.Malformed,
		"duplicates", rep.Duplicates,
		"accepted", rep.Accepted(),
		"batches", rep.Batches,
		"failed_batches", rep.FailedBatches,
		"failed_records", rep.FailedRecords,
		"duration", dur,
	)

	if rep.FailedBatches > 0 {
		gn.Warn("%d batches (%s records) were not stored, see the log for details",
			rep.FailedBatches, humanize.Comma(int64(rep.FailedRecords)))
	}

	gn.Info(`Ingestion complete
Rows read: %s, malformed: %s, already stored: %s, accepted: %s.
Elapsed time: <em>%s</em>`,
		humanize.Comma(int64(rep.Rows)),
		humanize.Comma(int64(rep.Malformed)),
		humanize.Comma(int64(rep.Duplicates)),
		humanize.Comma(int64(rep.Accepted())),
		dur,
	)
	gn.Message("Total records added: %d", rep.Total)
}
