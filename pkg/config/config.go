// Package config provides configuration management for rncdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest):
// CLI flags > env vars (.env included) > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode
//   - Import: batch_size, delimiter, encoding
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Import.SkipExisting, Import.Quiet (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use RNCDB_ prefix with underscores for nesting:
//
//	RNCDB_DATABASE_HOST=localhost
//	RNCDB_DATABASE_PORT=5432
//	RNCDB_IMPORT_BATCH_SIZE=1000
//	RNCDB_LOG_LEVEL=info
package config

// Config represents the complete rncdb configuration.
type Config struct {
	// Database contains connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings of the ingestion pipeline.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Driver selects the storage engine.
	// Valid values: "postgres", "mysql", "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the database server hostname or IP address.
	// Ignored by sqlite.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the database server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the database name to connect to. For sqlite it is
	// the path to the database file.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode (postgres only).
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ImportConfig contains settings of the ingestion pipeline.
type ImportConfig struct {
	// BatchSize is the number of records committed to storage in one
	// transaction. Larger batches are faster but use more memory and a
	// failed batch loses more records.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// Delimiter separates fields in the source file.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Encoding of the source file.
	// Valid values: "utf-8", "latin1", "windows-1252".
	Encoding string `mapstructure:"encoding" yaml:"encoding"`

	// SkipExisting enables the duplicate filter: records whose RNC is
	// already stored are not inserted again.
	SkipExisting bool `mapstructure:"skip_existing" yaml:"skip_existing"`

	// Quiet disables the progress bar.
	Quiet bool `mapstructure:"quiet" yaml:"quiet"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "rnc",
			SSLMode:  "disable",
		},
		Import: ImportConfig{
			BatchSize: DefaultBatchSize,
			Delimiter: ",",
			Encoding:  "utf-8",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
