package db

import (
	"fmt"
	"strings"
)

// Dialect captures the SQL differences between supported engines that
// matter for bulk inserts and point lookups.
type Dialect struct {
	// Name of the engine: "postgres", "mysql" or "sqlite".
	Name string

	// MaxParams is the maximum number of bind parameters the engine
	// accepts in one statement.
	MaxParams int

	// numbered is true for $1, $2, ... placeholders and false for '?'.
	numbered bool
}

var (
	Postgres = Dialect{Name: "postgres", MaxParams: 65535, numbered: true}
	MySQL    = Dialect{Name: "mysql", MaxParams: 65535}
	SQLite   = Dialect{Name: "sqlite", MaxParams: 32766}
)

// DialectFor returns the dialect of a configured driver.
func DialectFor(driver string) (Dialect, bool) {
	switch driver {
	case Postgres.Name:
		return Postgres, true
	case MySQL.Name:
		return MySQL, true
	case SQLite.Name:
		return SQLite, true
	default:
		return Dialect{}, false
	}
}

// Placeholder returns the bind parameter marker for the i-th parameter
// (1-based).
func (d Dialect) Placeholder(i int) string {
	if d.numbered {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// InsertSQL builds a multi-row INSERT statement for rowsNum rows of the
// given columns: INSERT INTO t (a, b) VALUES ($1, $2), ($3, $4).
func (d Dialect) InsertSQL(table string, columns []string, rowsNum int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES ",
		table, strings.Join(columns, ", "))

	argIdx := 1
	for i := range rowsNum {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range columns {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.Placeholder(argIdx))
			argIdx++
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// ExistsSQL builds a point lookup that returns true if a row with the
// given key exists.
func (d Dialect) ExistsSQL(table, keyColumn string) string {
	return fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM %s WHERE %s = %s)",
		table, keyColumn, d.Placeholder(1),
	)
}

// RowsPerStatement returns how many rows of columnsNum values fit into
// one statement without exceeding MaxParams.
func (d Dialect) RowsPerStatement(columnsNum int) int {
	if columnsNum <= 0 {
		return 0
	}
	return max(d.MaxParams/columnsNum, 1)
}
