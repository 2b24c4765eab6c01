package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sqa-dashboard/internal/ingestion"
)

var mockdataOutput string

var mockdataCmd = &cobra.Command{
	Use:   "mockdata",
	Short: "Write the five-project sample table",
	Long: `Writes the sample projects as CSV, or as XLSX when the output path ends
in .xlsx.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ingestion.WriteMockFile(mockdataOutput); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Mock data written to %s\n", mockdataOutput)
		return nil
	},
}

func init() {
	mockdataCmd.Flags().StringVarP(&mockdataOutput, "output", "o", "data/mock_data.csv", "Output file")
}
