package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBUnknownDriverError
	DBTableExistsCheckError
	DBTableNotFoundError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError

	// Ingest errors
	IngestSourceNotFoundError
	IngestSourceReadError
	IngestUnknownEncodingError
	IngestInvalidUTF8Error
	IngestDuplicateLookupError
	IngestCancelledError
)
