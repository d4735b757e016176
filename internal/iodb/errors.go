package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/rncdb/rncdb/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(cfg *config.DatabaseConfig, err error) error {
	msg := `<title>Database Connection Failed</title>

<warning>Could not connect to the %s database.</warning>

<em>Possible causes:</em>
  • Database server is not running
  • Database configuration is incorrect
  • Network connectivity issues

<em>How to fix:</em>
  1. Check your configuration file:
     <em>~/.config/rncdb/config.yaml</em>
     or RNCDB_DATABASE_* variables (a .env file works too)

  2. Review connection settings:
     Host: %s
     Port: %d
     Database: %s
     User: %s
`
	vars := []any{cfg.Driver, cfg.Host, cfg.Port, cfg.Database, cfg.User}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s %s:%d/%s: %w",
			cfg.Driver, cfg.Host, cfg.Port, cfg.Database, err),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// UnknownDriverError is returned for an unsupported database driver.
func UnknownDriverError(driver string) error {
	msg := `Unknown database driver <em>%s</em>

Supported drivers: postgres, mysql, sqlite`

	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

// TableExistsCheckError is returned when checking for a table fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
