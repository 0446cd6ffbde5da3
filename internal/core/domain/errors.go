package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMissingField indicates a source row is missing one of the three
	// required fields after trimming. The row is skipped, not fatal.
	ErrMissingField = errors.New("missing required field")

	// ErrMalformedDate indicates an effective date that does not match the
	// source format (DD.MM.YYYY). Identity cannot be derived for the row.
	ErrMalformedDate = errors.New("malformed effective date")

	// ErrSnapshotNotFound indicates the previous-run snapshot file does not
	// exist. Treated as a first run: diffing is skipped.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSnapshotCorrupt indicates the snapshot file exists but cannot be
	// parsed as a record array. Diffing is skipped for this run.
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")

	// ErrTableNotFound indicates the fetched page contains no recognisable
	// data table. This is a structural contract violation and aborts the run.
	ErrTableNotFound = errors.New("data table not found in source")
)
