package driving

import (
	"context"

	"github.com/custodia-labs/exwatch-cli/internal/core/domain"
)

// RunOrchestrator executes one complete scrape-diff-persist run.
type RunOrchestrator interface {
	// Run sequences the stages of a single run: prepare storage, fetch
	// and validate rows, deduplicate, render the full report, diff
	// against the previous snapshot, render the changes report and
	// notify when changes were found, and persist the new snapshot.
	// Only structural failures (storage directory uncreatable, source
	// table absent) return an error; everything else degrades and is
	// logged. The returned RunRecord summarises the outcome.
	Run(ctx context.Context) (*domain.RunRecord, error)
}
