package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateStore string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateStore, "store", storePostgres, "Store: postgres or clickhouse")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if migrateStore == storeMemory {
		return fmt.Errorf("memory store has no schema")
	}
	_, closeStore, err := openStore(cmd.Context(), migrateStore, true)
	if err != nil {
		return err
	}
	defer closeStore()

	logger.Info("migrations applied", zap.String("store", migrateStore))
	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to %s\n", migrateStore)
	return nil
}
