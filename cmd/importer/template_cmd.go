package main

import (
	"os"

	"scmicro_tracker/internal/usecase"

	"github.com/spf13/cobra"
)

func newTemplateCmd() *cobra.Command {
	var (
		importType string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the example spreadsheet for an import type",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := usecase.NewIngestionUseCase(nil, nil, nil, nil, nil, nil, 0)
			name, content, err := uc.Template(importType)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(content)
				return err
			}
			if output == "." {
				output = name
			}
			return os.WriteFile(output, content, 0o644)
		},
	}

	cmd.Flags().StringVar(&importType, "type", "", "Import type: work_orders or projects (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout (\".\" uses the default name)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
