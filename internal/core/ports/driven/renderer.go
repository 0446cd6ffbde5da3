package driven

import "github.com/custodia-labs/exwatch-cli/internal/core/domain"

// ReportRenderer produces the human-readable spreadsheet reports.
// The column set is fixed to the record's four attributes.
type ReportRenderer interface {
	// RenderFull writes the whole Generation as the "all records"
	// report at path.
	RenderFull(gen domain.Generation, path string) error

	// RenderChanges writes the added/deleted sections of a ChangeSet
	// as the "changes" report at path.
	RenderChanges(cs *domain.ChangeSet, path string) error
}
