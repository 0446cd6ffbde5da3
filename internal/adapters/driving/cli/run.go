package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape the exclusion list and report changes",
	Long: `Fetches the exclusion list, renders the full report, diffs the rows
against the previous run and persists a new snapshot.

A changes report and a notification are produced only when the list
moved since the previous run.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if runOrchestrator == nil {
		return errors.New("run service not configured")
	}

	ctx := context.Background()

	rec, err := runOrchestrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if rec.ChangesReportPath != "" {
		cmd.Printf("Run %s completed: %d records, %d added, %d deleted\n",
			rec.ID, rec.RecordCount, rec.AddedCount, rec.DeletedCount)
		cmd.Printf("Changes report: %s\n", rec.ChangesReportPath)
	} else {
		cmd.Printf("Run %s completed: %d records, no changes\n",
			rec.ID, rec.RecordCount)
	}

	cmd.Printf("Full report: %s\n", rec.FullReportPath)
	cmd.Printf("Snapshot: %s\n", rec.SnapshotPath)

	return nil
}
