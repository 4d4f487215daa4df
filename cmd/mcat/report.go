package main

import (
	"fmt"

	"github.com/franz/music-catalog/internal/report"
	"github.com/franz/music-catalog/internal/store"
	"github.com/franz/music-catalog/internal/util"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a summary of the catalog",
	Long: `Print a summary of the catalog.

The report includes:
- Row counts per entity
- Row counts per association
- Albums whose rows disagree on the song total
- Association rows that reference deleted records`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	return withStore(func(db *store.Store) error {
		summary, err := report.Generate(db)
		if err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		summary.DatabasePath = GetConfigString("db", defaultDB)

		if err := summary.Write(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		if !summary.Healthy() {
			util.WarnLog("Consistency problems found; run 'mcat doctor' for details")
		}
		return nil
	})
}
