package cmd

import (
	"github.com/rncdb/rncdb/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag converts an explicitly set flag into config options.
// Flags left at their defaults return nothing, so config.yaml and
// environment settings stay in effect.
type funcFlag func(cmd *cobra.Command) []config.Option

func collectOptions(cmd *cobra.Command, flags ...funcFlag) []config.Option {
	var res []config.Option
	for _, fn := range flags {
		res = append(res, fn(cmd)...)
	}
	return res
}

func batchSizeFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("batch-size") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("batch-size")
	return []config.Option{config.OptImportBatchSize(i)}
}

func skipExistingFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("skip-existing") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("skip-existing")
	return []config.Option{config.OptImportSkipExisting(b)}
}

func quietFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("quiet") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("quiet")
	return []config.Option{config.OptImportQuiet(b)}
}
