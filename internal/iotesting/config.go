// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rncdb/rncdb/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all PostgreSQL
	// integration tests. This ensures tests never accidentally run against
	// production databases.
	TestDatabaseName = "rnc_test"

	// Header is the first line of a registry export.
	Header = "RNC,RAZON SOCIAL,NOMBRE COMERCIAL,ACTIVIDAD ECONOMICA,F5,F6,F7," +
		"F8,FECHA,ESTADO,REGIMEN"
)

// GetTestConfig returns a configuration suitable for PostgreSQL integration
// tests. Defaults are overridden by RNCDB_DATABASE_* environment variables,
// the database name is always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if s := os.Getenv("RNCDB_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("RNCDB_DATABASE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("RNCDB_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("RNCDB_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts,
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	)
	cfg.Update(opts)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SQLiteConfig returns a configuration that stores data in a fresh SQLite
// file inside a temporary directory of the test.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabaseDatabase(filepath.Join(t.TempDir(), "rnc.db")),
		config.OptImportQuiet(true),
	})
	return cfg
}

// Row builds one 11-field source line. Fields that are not used by the
// importer get filler values.
func Row(id, name, activity, date, status, kind string) string {
	fields := []string{
		id, name, "", activity, "", "", "", "", date, status, kind,
	}
	return strings.Join(fields, ",")
}

// WriteSource writes a registry export with a header followed by the
// given lines and returns its path.
func WriteSource(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rnc.csv")
	content := Header + "\n" + strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}
	return path
}
