// Package lifecycle defines the contracts of the rncdb commands. The
// implementations live in internal/ and receive a connected db.Operator.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for creation of the registry table.
// Creation is idempotent: an existing table is left untouched. Evolving the
// schema of an existing table is out of scope.
type SchemaManager interface {
	// Create creates the registry table if it does not exist yet.
	Create(ctx context.Context) error
}
