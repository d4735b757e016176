// Package ioschema implements SchemaManager interface for
// creation of the registry table. This is an impure I/O package
// that wraps GORM AutoMigrate for PostgreSQL and runs DDL generated
// from the model for the other engines.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/rncdb/rncdb/pkg/db"
	"github.com/rncdb/rncdb/pkg/lifecycle"
	"github.com/rncdb/rncdb/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the registry table. Existing tables are kept.
func (m *manager) Create(ctx context.Context) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}

	if m.operator.Dialect() == db.Postgres {
		return m.createGORM(ctx)
	}

	for _, ddl := range ddlStatements(schema.AllModels()) {
		slog.Debug("Creating table", "ddl", ddl)
		if _, err := sqlDB.ExecContext(ctx, ddl); err != nil {
			return CreateSchemaError(err)
		}
	}
	return nil
}

func (m *manager) createGORM(ctx context.Context) error {
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: m.operator.DB()}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}
	return nil
}
