package lifecycle_test

import (
	"testing"

	"github.com/rncdb/rncdb/internal/iodb"
	"github.com/rncdb/rncdb/internal/ioingest"
	"github.com/rncdb/rncdb/internal/ioschema"
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/rncdb/rncdb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestContracts ensures that the implementations satisfy the lifecycle
// interfaces. This is mostly a compile-time check.
func TestContracts(t *testing.T) {
	op := iodb.NewOperator()
	var _ lifecycle.SchemaManager = ioschema.NewManager(op)
	var _ lifecycle.Ingester = ioingest.New(config.New(), op)
}

func TestReportAccepted(t *testing.T) {
	r := lifecycle.Report{Rows: 10, Malformed: 2, Duplicates: 3}
	assert.Equal(t, 5, r.Accepted())
}
