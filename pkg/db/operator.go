package db

import (
	"context"
	"database/sql"

	"github.com/rncdb/rncdb/pkg/config"
)

// Operator defines the interface for basic database management operations.
// It owns the single storage handle of a run: the handle is opened with
// Connect at run start and released with Close at run end. The ingestion
// components (duplicate filter, bulk writer) and the schema manager receive
// the handle through DB() and never open connections themselves.
//
// The handle is a database/sql pool so the same components work on top of
// PostgreSQL (pgx), MySQL and SQLite.
type Operator interface {
	// Connect establishes a connection to the database and verifies it.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection.
	Close() error

	// DB returns the handle used for statements and transactions.
	// It is nil before Connect.
	DB() *sql.DB

	// Dialect returns SQL differences of the connected engine.
	Dialect() Dialect

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// DropTable removes a table if it exists.
	DropTable(ctx context.Context, tableName string) error
}
