package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	response "scmicro_tracker/internal/adapter/http/dto/response"
	"scmicro_tracker/internal/adapter/persistence"
	"scmicro_tracker/internal/domain/classification"
	"scmicro_tracker/internal/infrastructure/config"
	"scmicro_tracker/internal/infrastructure/logging"
	"scmicro_tracker/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newIngestCmd() *cobra.Command {
	var (
		importType string
		storage    string
	)

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Reconcile a CSV or XLSX file and print the batch report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if storage != "" {
				cfg.StorageBackend = strings.ToLower(storage)
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: "console"})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			repos, err := persistence.Open(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			uc := usecase.NewIngestionUseCase(
				repos.Customers,
				repos.WorkOrders,
				repos.Projects,
				classification.Default(cfg.StrategicAccounts),
				nil,
				logger,
				cfg.MaxUploadBytes,
			)
			report, err := uc.Ingest(cmd.Context(), filepath.Base(args[0]), f, importType)
			if err != nil {
				logger.Error("import aborted", zap.String("file", args[0]), zap.Error(err))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), response.FromBatchReport(report))
		},
	}

	cmd.Flags().StringVar(&importType, "type", "", "Import type: work_orders or projects (required)")
	cmd.Flags().StringVar(&storage, "storage", "", "Override STORAGE_BACKEND (memory or dynamodb)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
