// Package schema provides the database model of the registry table.
package schema

import (
	"database/sql"

	"github.com/rncdb/rncdb/pkg/rnc"
)

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// TableName returns the table name for this model.
	TableName() string
}

// RNC is one row of the taxpayer registry. Column names follow the
// registry export and are shared with rnc.Columns.
type RNC struct {
	// RNC is the registry identification number, the natural key.
	RNC string `gorm:"column:rnc;type:varchar(20);primaryKey" db:"rnc" ddl:"VARCHAR(20) NOT NULL PRIMARY KEY"`

	// NombreApellido is the name of the person or entity.
	NombreApellido string `gorm:"column:nombre_apellido;type:text;not null" db:"nombre_apellido" ddl:"TEXT NOT NULL"`

	// ActividadEconomica is the economic activity description.
	ActividadEconomica string `gorm:"column:actividad_economica;type:text;not null" db:"actividad_economica" ddl:"TEXT NOT NULL"`

	// Fecha is the effective date of the registration, NULL when unknown.
	Fecha sql.NullTime `gorm:"column:fecha;type:date" db:"fecha" ddl:"DATE"`

	// Estado is the status code (ACTIVO, SUSPENDIDO, ...).
	Estado string `gorm:"column:estado;type:varchar(50);not null" db:"estado" ddl:"VARCHAR(50) NOT NULL"`

	// TipoContribuyente is the taxpayer classification.
	TipoContribuyente string `gorm:"column:tipo_contribuyente;type:varchar(100);not null" db:"tipo_contribuyente" ddl:"VARCHAR(100) NOT NULL"`
}

// TableName returns the table name used by GORM and DDL generation.
func (RNC) TableName() string {
	return rnc.TableName
}

// TableDDL returns the CREATE TABLE statement for the registry table.
func (r RNC) TableDDL() string {
	return generateDDL(r, r.TableName())
}
