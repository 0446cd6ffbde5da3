package domain

import "time"

// RunRecord summarises one completed run for display and for the
// run-history ledger. Path fields are empty when the corresponding file
// was not produced (no changes detected, or the write failed).
type RunRecord struct {
	// ID is a unique identifier for the run.
	ID string

	// Date is the run's date stamp (YYYY-MM-DD), used in every
	// generated filename.
	Date string

	// StartedAt and FinishedAt bound the run's execution.
	StartedAt  time.Time
	FinishedAt time.Time

	// RecordCount is the size of the deduplicated Generation.
	RecordCount int

	// AddedCount and DeletedCount come from the diff against the
	// previous snapshot; both are zero when diffing was skipped or
	// found nothing.
	AddedCount   int
	DeletedCount int

	// FullReportPath is the "all records" spreadsheet.
	FullReportPath string

	// ChangesReportPath is the "changes" spreadsheet, only produced
	// when the diff was non-empty.
	ChangesReportPath string

	// SnapshotPath is the snapshot written for the next run.
	SnapshotPath string
}
