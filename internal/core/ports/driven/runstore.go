package driven

import (
	"context"

	"github.com/custodia-labs/exwatch-cli/internal/core/domain"
)

// RunStore persists the run-history ledger.
type RunStore interface {
	// Save records a completed run.
	Save(ctx context.Context, run domain.RunRecord) error

	// List returns the most recent runs, newest first, up to limit.
	// A limit of 0 or less returns all runs.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Close releases the underlying storage.
	Close() error
}
