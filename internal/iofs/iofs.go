// Package iofs prepares the file system layout used by rncdb: config and
// log directories, the default config file and optional .env files.
package iofs

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/rncdb/rncdb/pkg/templates"
)

// ConfigYAML is the content written to a new config.yaml.
var ConfigYAML = templates.ConfigYAML

// EnvFile is the name of the optional file with environment variables
// in the working directory.
const EnvFile = ".env"

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// LoadEnv loads environment variables from the given files. Missing
// files are skipped, variables that are already set are not overridden.
// Returns the number of files that were loaded.
func LoadEnv(files ...string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return 0, ReadFileError(existing[0], err)
	}
	return len(existing), nil
}
