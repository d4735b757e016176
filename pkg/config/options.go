package config

import (
	"strings"
	"unicode/utf8"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver sets the storage engine.
// Valid values: "postgres", "mysql", "sqlite".
func OptDatabaseDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the database server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the database server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the database name (or sqlite file path).
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptImportBatchSize sets the number of records per transaction.
func OptImportBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Import.BatchSize = i
		}
	}
}

// OptImportDelimiter sets the field separator of the source file.
// It must be exactly one character. The word "tab" is accepted for "\t".
func OptImportDelimiter(s string) Option {
	if strings.EqualFold(strings.TrimSpace(s), "tab") {
		s = "\t"
	}
	return func(c *Config) {
		if utf8.RuneCountInString(s) != 1 || s == "\n" || s == "\r" ||
			s == "\"" {
			gn.Warn("<em>Import Delimiter</em> must be a single character, "+
				"ignoring '%s'", s)
			return
		}
		c.Import.Delimiter = s
	}
}

// OptImportEncoding sets the text encoding of the source file.
// Valid values: "utf-8", "latin1", "windows-1252".
func OptImportEncoding(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	switch s {
	case "utf8":
		s = "utf-8"
	case "iso-8859-1", "iso8859-1":
		s = "latin1"
	case "cp1252":
		s = "windows-1252"
	}
	return func(c *Config) {
		if isValidEnum("Import.Encoding", s) {
			c.Import.Encoding = s
		}
	}
}

// OptImportSkipExisting enables or disables the duplicate filter.
// Runtime-only field - not in ToOptions().
func OptImportSkipExisting(b bool) Option {
	return func(c *Config) {
		c.Import.SkipExisting = b
	}
}

// OptImportQuiet disables the progress bar.
// Runtime-only field - not in ToOptions().
func OptImportQuiet(b bool) Option {
	return func(c *Config) {
		c.Import.Quiet = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
