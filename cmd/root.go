package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "datasnap",
	Short: "CSV profiling CLI",
	Long: `A data profiling tool for CSV files: column types, missingness,
cardinality and summary statistics for data-quality triage`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
