package ioingest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/rncdb/rncdb/pkg/errcode"
)

// BatchWriteError is returned by Writer when a batch could not be stored.
// The transaction of the batch is rolled back, so none of its records are
// persisted. The ingestion run continues with the next batch.
type BatchWriteError struct {
	// Size is the number of records in the failed batch.
	Size int
	// Err is the storage error that caused the rollback.
	Err error
}

// Error implements the error interface.
func (e *BatchWriteError) Error() string {
	return fmt.Sprintf("failed to write batch of %d records: %v", e.Size, e.Err)
}

// Unwrap returns the underlying storage error.
func (e *BatchWriteError) Unwrap() error {
	return e.Err
}

// SourceNotFoundError is returned when the source file does not exist.
func SourceNotFoundError(path string, err error) error {
	msg := `The source file <em>%s</em> does not exist`

	return &gn.Error{
		Code: errcode.IngestSourceNotFoundError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("source does not exist %s: %w", path, err),
	}
}

// SourceReadError is returned when the source cannot be opened or read.
func SourceReadError(path string, err error) error {
	msg := `Cannot read the source file <em>%s</em>

<em>Possible causes:</em>
  - Insufficient permissions
  - The file is truncated or the disk failed`

	return &gn.Error{
		Code: errcode.IngestSourceReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to read source %s: %w", path, err),
	}
}

// UnknownEncodingError is returned for an unsupported source encoding.
func UnknownEncodingError(enc string) error {
	msg := `Unknown source encoding <em>%s</em>

Supported encodings: utf-8, latin1, windows-1252`

	return &gn.Error{
		Code: errcode.IngestUnknownEncodingError,
		Msg:  msg,
		Vars: []any{enc},
		Err:  fmt.Errorf("unknown encoding %q", enc),
	}
}

// InvalidUTF8Error is returned when a source read as UTF-8 contains bytes
// of another encoding. Line is the last row read successfully.
func InvalidUTF8Error(path string, line int, err error) error {
	msg := `The source file <em>%s</em> is not valid UTF-8 after line %d

<em>How to fix:</em>
  Set <em>import.encoding: latin1</em> (or windows-1252) in config.yaml`

	return &gn.Error{
		Code: errcode.IngestInvalidUTF8Error,
		Msg:  msg,
		Vars: []any{path, line},
		Err:  fmt.Errorf("invalid utf-8 in %s after line %d: %w", path, line, err),
	}
}

// DuplicateLookupError is returned when the existence check of a record
// fails. It aborts the whole run.
func DuplicateLookupError(id string, err error) error {
	msg := `Cannot check if RNC <em>%s</em> is already stored`

	return &gn.Error{
		Code: errcode.IngestDuplicateLookupError,
		Msg:  msg,
		Vars: []any{id},
		Err:  fmt.Errorf("failed to look up %s: %w", id, err),
	}
}

// TableNotFoundError is returned when the registry table is missing.
func TableNotFoundError(table string) error {
	msg := `Table <em>%s</em> does not exist

<em>How to fix:</em>
  Run <em>rncdb create</em> first`

	return &gn.Error{
		Code: errcode.DBTableNotFoundError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("table %s does not exist", table),
	}
}

// CancelledError is returned when the run is interrupted.
func CancelledError(err error) error {
	msg := "Ingestion was cancelled"

	return &gn.Error{
		Code: errcode.IngestCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("ingestion cancelled: %w", err),
	}
}
