package ioschema_test

import (
	"context"
	"testing"

	"github.com/rncdb/rncdb/internal/iodb"
	"github.com/rncdb/rncdb/internal/ioschema"
	"github.com/rncdb/rncdb/internal/iotesting"
	"github.com/rncdb/rncdb/pkg/rnc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_NotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewOperator())
	err := mgr.Create(context.Background())
	assert.Error(t, err)
}

func TestCreate_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.SQLiteConfig(t)

	op := iodb.NewOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx))

	exists, err := op.TableExists(ctx, rnc.TableName)
	require.NoError(t, err)
	assert.True(t, exists)

	// second run keeps the table and its data
	_, err = op.DB().ExecContext(ctx,
		`INSERT INTO rnc (rnc, nombre_apellido, actividad_economica,
		  fecha, estado, tipo_contribuyente)
		 VALUES ('101', 'ACME', 'VENTA', NULL, 'ACTIVO', 'NORMAL')`)
	require.NoError(t, err)
	require.NoError(t, mgr.Create(ctx))

	var count int
	err = op.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM rnc").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreate_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()

	op := iodb.NewOperator()
	require.NoError(t, op.Connect(ctx, iotesting.GetTestDatabaseConfig()))
	defer op.Close()

	require.NoError(t, op.DropTable(ctx, rnc.TableName))

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx))

	exists, err := op.TableExists(ctx, rnc.TableName)
	require.NoError(t, err)
	assert.True(t, exists)
}
