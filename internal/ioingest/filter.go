package ioingest

import (
	"context"
	"database/sql"

	"github.com/rncdb/rncdb/pkg/db"
	"github.com/rncdb/rncdb/pkg/rnc"
)

// ExistsFunc reports whether a record with the given RNC is already
// stored. Records for which it returns true are not written again.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// NoneExist is the predicate of the plain ingestion mode: nothing is
// considered stored, every record goes to the writer.
func NoneExist(context.Context, string) (bool, error) {
	return false, nil
}

// SQLExists returns a predicate that runs a point lookup on the registry
// table for every record. Lookup failures are returned as
// DuplicateLookupError.
func SQLExists(sqlDB *sql.DB, d db.Dialect) ExistsFunc {
	query := d.ExistsSQL(rnc.TableName, rnc.Columns[0])

	return func(ctx context.Context, id string) (bool, error) {
		var exists bool
		err := sqlDB.QueryRowContext(ctx, query, id).Scan(&exists)
		if err != nil {
			return false, DuplicateLookupError(id, err)
		}
		return exists, nil
	}
}
