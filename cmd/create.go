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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/rncdb/rncdb/internal/iodb"
	"github.com/rncdb/rncdb/internal/ioschema"
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/rncdb/rncdb/pkg/rnc"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create the rnc table schema",
		Long: `Create the table that keeps the taxpayer registry.

This command:
  1. Connects to the database using configuration settings
  2. Checks if the rnc table exists and prompts before dropping it
  3. Creates the table (GORM AutoMigrate for PostgreSQL,
     generated DDL for MySQL and SQLite)

Use --force to drop an existing table without confirmation.

Examples:
  rncdb create
  rncdb create --force
  rncdb create -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCreate(cmd, args, forceCreate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing table without confirmation")

	return createCmd
}

func runCreate(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	op := iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s</em>", dbLabel(&cfg.Database))

	exists, err := op.TableExists(ctx, rnc.TableName)
	if err != nil {
		return err
	}

	if exists {
		drop := force
		if force {
			gn.Info("Dropping existing table (--force enabled)...")
		} else {
			gn.Warn("\nWarning: Table <em>%s</em> already exists.", rnc.TableName)
			gn.Warn("Recreating it will delete ALL stored records.")
			drop, err = confirm("\nDo you want to drop it? (yes/no): ")
			if err != nil {
				gn.Warn("Failed to read user input")
				return err
			}
		}

		if !drop {
			gn.Info("Aborted. No changes made.")
			return nil
		}

		if err = op.DropTable(ctx, rnc.TableName); err != nil {
			return err
		}
		gn.Info("Table dropped")
	}

	gn.Info("Creating table <em>%s</em>...", rnc.TableName)
	if err = ioschema.NewManager(op).Create(ctx); err != nil {
		return err
	}

	gn.Info(`Table creation complete!

Next steps:
  - Run '<em>rncdb ingest FILE</em>' to import the registry
`)

	return nil
}

// confirm asks a yes/no question on the terminal.
func confirm(question string) (bool, error) {
	fmt.Print(question)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}

// dbLabel describes the database for user messages.
func dbLabel(db *config.DatabaseConfig) string {
	if db.Driver == "sqlite" {
		return "sqlite:" + db.Database
	}
	return fmt.Sprintf("%s://%s@%s:%d/%s",
		db.Driver, db.User, db.Host, db.Port, db.Database)
}
