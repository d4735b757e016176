package config

import (
	"path/filepath"
)

const (
	// DefaultBatchSize is the number of records per transaction when
	// nothing else is configured.
	DefaultBatchSize = 1000
)

var (
	// AppName is used in generating file system paths.
	AppName = "rncdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/rncdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/rncdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/rncdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
