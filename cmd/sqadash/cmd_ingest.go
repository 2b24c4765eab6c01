package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqa-dashboard/internal/ingestion"
	"sqa-dashboard/internal/observability"
)

var (
	ingestInput   string
	ingestDataset string
	ingestStore   string
	ingestMigrate bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load a CSV/XLSX project table into a project store",
	Long: `Copies the input rows into Postgres or ClickHouse under a dataset name.
Only input values are stored. Missing cells are stored as NULL and are
default-filled when a report reads them back.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestInput, "input", "i", "", "Input file (default: input.path from config)")
	ingestCmd.Flags().StringVar(&ingestDataset, "dataset", "", "Dataset name (default: source.dataset from config)")
	ingestCmd.Flags().StringVar(&ingestStore, "store", storePostgres, "Store: postgres or clickhouse")
	ingestCmd.Flags().BoolVar(&ingestMigrate, "migrate", true, "Apply migrations before ingesting")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := cfg.Input.Path
	if ingestInput != "" {
		path = ingestInput
	}
	dataset := cfg.Source.Dataset
	if ingestDataset != "" {
		dataset = ingestDataset
	}

	source, err := ingestion.NewFileSource(ingestion.FileOptions{
		Path:     path,
		Format:   ingestion.Format(cfg.Input.Format),
		Sheet:    cfg.Input.Sheet,
		Required: cfg.Input.RequiredColumns,
	})
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, ingestStore, ingestMigrate)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := observability.NewMetrics("")
	n, err := ingestion.NewManager(ingestion.ManagerOptions{
		Source:  source,
		Store:   store,
		Logger:  logger,
		Metrics: metrics,
	}).Ingest(ctx, dataset)
	if path := cfg.Output.MetricsFile; path != "" {
		if werr := metrics.WriteTextfile(path); werr != nil {
			logger.Warn("metrics textfile not written", zap.String("path", path), zap.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d project(s) into %s dataset %q\n", n, ingestStore, dataset)
	return nil
}
