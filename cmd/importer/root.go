package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "importer",
		Short:         "Import work order and project spreadsheets",
		SilenceUsage: true,
	}
	cmd.AddCommand(newIngestCmd())
	cmd.AddCommand(newTemplateCmd())
	return cmd
}
