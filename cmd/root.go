/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/rncdb/rncdb/internal/iofs"
	"github.com/rncdb/rncdb/internal/iologger"
	rncdb "github.com/rncdb/rncdb/pkg"
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", rncdb.Version, rncdb.Build),
		Use:     "rncdb",
		Short:   "rncdb loads the taxpayer registry (RNC) into a database",
		Long: `rncdb imports the registry of taxpayers (RNC) published as a
delimited text export into a relational database table.

Records are inserted in batches, each batch in its own transaction. A batch
that fails is rolled back and skipped, the rest of the file is still loaded.

Commands:
  - create: create the rnc table
  - ingest: import an export file into the table

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (RNCDB_*, a .env file is loaded first)
  3. Config file (~/.config/rncdb/config.yaml)
  4. Built-in defaults

Environment Variables:
    RNCDB_DATABASE_DRIVER           postgres, mysql or sqlite
    RNCDB_DATABASE_HOST             database host (or HOST_DB)
    RNCDB_DATABASE_PORT             database port (or PORT_DB)
    RNCDB_DATABASE_USER             database user (or USER_DB)
    RNCDB_DATABASE_PASSWORD         database password (or PASSWORD_DB)
    RNCDB_DATABASE_DATABASE         database name (or NAME_DB)
    RNCDB_IMPORT_BATCH_SIZE         records per transaction
    RNCDB_LOG_LEVEL                 log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "rncdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for rncdb")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getIngestCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	envNum, err := iofs.LoadEnv(iofs.EnvFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"env_files", envNum,
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	// Names given explicitly are used as is, the prefix is not added to them.
	// The *_DB names are kept for existing .env files.

	// Database configuration
	v.BindEnv("database.driver", "RNCDB_DATABASE_DRIVER")
	v.BindEnv("database.host", "RNCDB_DATABASE_HOST", "HOST_DB")
	v.BindEnv("database.port", "RNCDB_DATABASE_PORT", "PORT_DB")
	v.BindEnv("database.user", "RNCDB_DATABASE_USER", "USER_DB")
	v.BindEnv("database.password", "RNCDB_DATABASE_PASSWORD", "PASSWORD_DB")
	v.BindEnv("database.database", "RNCDB_DATABASE_DATABASE", "NAME_DB")
	v.BindEnv("database.ssl_mode", "RNCDB_DATABASE_SSL_MODE")

	// Import configuration
	v.BindEnv("import.batch_size", "RNCDB_IMPORT_BATCH_SIZE")
	v.BindEnv("import.delimiter", "RNCDB_IMPORT_DELIMITER")
	v.BindEnv("import.encoding", "RNCDB_IMPORT_ENCODING")

	// Log configuration
	v.BindEnv("log.level", "RNCDB_LOG_LEVEL")
	v.BindEnv("log.format", "RNCDB_LOG_FORMAT")
	v.BindEnv("log.destination", "RNCDB_LOG_DESTINATION")
}
