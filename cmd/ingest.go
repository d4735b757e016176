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
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/rncdb/rncdb/internal/iodb"
	"github.com/rncdb/rncdb/internal/ioingest"
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/spf13/cobra"
)

// getIngestCmd returns the ingest command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getIngestCmd() *cobra.Command {
	var (
		batchSize    int
		skipExisting bool
		quiet        bool
	)

	ingestCmd := &cobra.Command{
		Use:   "ingest FILE",
		Short: "Import registry records from a delimited file",
		Long: `Import taxpayer records from a registry export into the rnc table.

The first line of the file is a header and is skipped. Every other line
must have 11 fields, lines with a different number of fields are ignored.
Used fields: RNC (1), name (2), economic activity (4), date DD/MM/YYYY (9),
status (10) and taxpayer type (11). Dates that are empty, 00/00/0000 or
invalid are stored as NULL.

Records are inserted in batches, one transaction per batch. When a batch
fails it is rolled back and the import continues with the next one.

With --skip-existing every record is looked up first and records already
in the table are not inserted again, so the same file can be imported
repeatedly.

Delimiter and encoding of the file are set in config.yaml
(import.delimiter, import.encoding).

Examples:
  rncdb ingest DGII_RNC.TXT
  rncdb ingest rnc.csv --batch-size 5000
  rncdb ingest rnc.csv -s -b 500`,
		Aliases: []string{"import"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runIngest(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	ingestCmd.Flags().IntVarP(
		&batchSize, "batch-size", "b", config.DefaultBatchSize,
		"number of records per transaction",
	)
	ingestCmd.Flags().BoolVarP(
		&skipExisting, "skip-existing", "s", false,
		"do not insert records that are already stored",
	)
	ingestCmd.Flags().BoolVarP(
		&quiet, "quiet", "q", false,
		"do not show progress bar",
	)

	return ingestCmd
}

func runIngest(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg.Update(collectOptions(cmd,
		batchSizeFlag,
		skipExistingFlag,
		quietFlag,
	))

	gn.Info("Importing <em>%s</em> into <em>%s</em>",
		path, dbLabel(&cfg.Database))

	ingester := ioingest.New(cfg, iodb.NewOperator())
	_, err := ingester.Ingest(ctx, path)
	return err
}
