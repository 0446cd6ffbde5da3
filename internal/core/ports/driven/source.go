package driven

import (
	"context"

	"github.com/custodia-labs/exwatch-cli/internal/core/domain"
)

// SourceProvider fetches the published exclusion table and extracts its
// rows as trimmed text fields. Row-level validation and identity
// assignment are the orchestrator's concern; the provider only
// guarantees the structural contract.
type SourceProvider interface {
	// FetchRows retrieves the current table contents in document order.
	// Returns domain.ErrTableNotFound (wrapped) when the page yields no
	// recognisable table rows at all; that is a structural contract
	// violation and aborts the run.
	FetchRows(ctx context.Context) ([]domain.RawRow, error)
}
