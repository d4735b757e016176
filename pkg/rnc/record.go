// Package rnc contains the pure part of the ingestion pipeline: the
// canonical registry record, the normalization of raw source rows and
// the in-memory batch accumulator. Nothing here performs I/O.
package rnc

import (
	"database/sql"
	"errors"
	"strings"
)

// FieldsNum is the number of fields in every well-formed source row.
const FieldsNum = 11

// Positions of the used fields in a source row.
const (
	idxID               = 0
	idxName             = 1
	idxEconomicActivity = 3
	idxEffectiveDate    = 8
	idxStatus           = 9
	idxTaxpayerType     = 10
)

// ErrMalformedRow is returned by New for rows that cannot produce a record.
// Callers drop such rows silently.
var ErrMalformedRow = errors.New("malformed row")

// Record is one taxpayer of the registry, ready to be persisted.
// Records are values and are never modified after New returns them.
type Record struct {
	// ID is the registry identification number (RNC or cédula),
	// the natural key of the rnc table.
	ID string

	// Name of the person or entity with whitespace runs collapsed.
	Name string

	// EconomicActivity is the activity classification text.
	EconomicActivity string

	// EffectiveDate is either a valid calendar date or NULL.
	EffectiveDate sql.NullTime

	// Status code of the record.
	Status string

	// TaxpayerType is the classification of the taxpayer.
	TaxpayerType string
}

// New normalizes one raw source row into a Record.
// The row must contain exactly FieldsNum fields and a non-empty ID,
// otherwise ErrMalformedRow is returned. Problems with the date field
// never fail the row, they result in a NULL date.
func New(fields []string) (Record, error) {
	var res Record
	if len(fields) != FieldsNum {
		return res, ErrMalformedRow
	}

	res = Record{
		ID:               strings.TrimSpace(fields[idxID]),
		Name:             CollapseSpaces(fields[idxName]),
		EconomicActivity: strings.TrimSpace(fields[idxEconomicActivity]),
		EffectiveDate:    ParseDate(fields[idxEffectiveDate]),
		Status:           strings.TrimSpace(fields[idxStatus]),
		TaxpayerType:     strings.TrimSpace(fields[idxTaxpayerType]),
	}

	if res.ID == "" {
		return Record{}, ErrMalformedRow
	}
	return res, nil
}

// DateValue returns the effective date formatted for storage
// (YYYY-MM-DD) or nil for NULL.
func (r Record) DateValue() any {
	if !r.EffectiveDate.Valid {
		return nil
	}
	return r.EffectiveDate.Time.Format(StorageDateLayout)
}

// Values returns the record's column values in the order of Columns.
func (r Record) Values() []any {
	return []any{
		r.ID,
		r.Name,
		r.EconomicActivity,
		r.DateValue(),
		r.Status,
		r.TaxpayerType,
	}
}

// Columns of the rnc table in the order used by Values.
var Columns = []string{
	"rnc",
	"nombre_apellido",
	"actividad_economica",
	"fecha",
	"estado",
	"tipo_contribuyente",
}

// TableName is the name of the table records are stored in.
const TableName = "rnc"

// CollapseSpaces replaces every run of whitespace with a single space
// and removes leading and trailing whitespace.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
