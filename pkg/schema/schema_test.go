package schema_test

import (
	"testing"

	"github.com/rncdb/rncdb/pkg/rnc"
	"github.com/rncdb/rncdb/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestTableDDL(t *testing.T) {
	ddl := schema.RNC{}.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS rnc (")
	assert.Contains(t, ddl, "rnc VARCHAR(20) NOT NULL PRIMARY KEY")
	assert.Contains(t, ddl, "fecha DATE,")
	assert.Contains(t, ddl, "tipo_contribuyente VARCHAR(100) NOT NULL")
}

// TestColumnsMatchRecord keeps the model and the pipeline's column
// order in sync.
func TestColumnsMatchRecord(t *testing.T) {
	assert.Equal(t, rnc.Columns, schema.ColumnNames(schema.RNC{}))
	assert.Equal(t, rnc.TableName, schema.RNC{}.TableName())
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	assert.Len(t, models, 1)
	_, ok := models[0].(schema.DDLGenerator)
	assert.True(t, ok)
}
