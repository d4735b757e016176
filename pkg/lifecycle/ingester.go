package lifecycle

import (
	"context"
	"time"
)

// Ingester defines the interface of the batched import of a registry
// export into storage.
type Ingester interface {
	// Ingest reads the delimited file at path and stores its records in
	// batches. Failed batches do not stop the run; they are logged and
	// counted in the report. The returned error is set only when the whole
	// run is aborted (missing or unreadable source, failed duplicate lookup,
	// storage unavailable, cancellation). The report is valid even then and
	// reflects the work done before the abort.
	Ingest(ctx context.Context, path string) (Report, error)
}

// Report summarizes one ingestion run.
type Report struct {
	// RunID tags every log line of the run.
	RunID string

	// Total is the number of records storage reported as added.
	Total int

	// Rows is the number of data rows read, the header excluded.
	Rows int

	// Malformed is the number of rows skipped because they did not have
	// the expected number of fields or an identifier.
	Malformed int

	// Duplicates is the number of records skipped because their
	// identifier was already stored.
	Duplicates int

	// Batches is the number of write attempts.
	Batches int

	// FailedBatches is the number of batches rolled back.
	FailedBatches int

	// FailedRecords is the number of records in rolled back batches.
	FailedRecords int

	// Duration of the run.
	Duration time.Duration
}

// Accepted returns the number of records that reached the writer.
func (r Report) Accepted() int {
	return r.Rows - r.Malformed - r.Duplicates
}
