package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	Long: `Lists the most recent runs recorded in the run-history ledger,
newest first, with the record and change counts of each run.`,
	RunE: runHistoryList,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10,
		"maximum number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if runHistory == nil {
		return errors.New("run history not configured")
	}

	runs, err := runHistory.List(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	cmd.Printf("%-8s  %-10s  %7s  %5s  %7s\n",
		"RUN", "DATE", "RECORDS", "ADDED", "DELETED")
	for _, run := range runs {
		cmd.Printf("%-8s  %-10s  %7d  %5d  %7d\n",
			shortID(run.ID), run.Date,
			run.RecordCount, run.AddedCount, run.DeletedCount)
	}

	return nil
}

// shortID truncates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
