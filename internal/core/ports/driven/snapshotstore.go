package driven

import "github.com/custodia-labs/exwatch-cli/internal/core/domain"

// SnapshotStore is the sole reader and writer of the durable
// previous-run snapshot. It enforces the at-most-one-authoritative-
// snapshot rule under a failure model where earlier runs may have
// crashed between writing and cleanup.
type SnapshotStore interface {
	// Reconcile scans storage for candidate snapshot files. Zero
	// candidates returns an empty path (first-run state). One candidate
	// returns its path. More than one is a consolidation case: the
	// candidate with the latest date embedded in its filename is kept
	// (ties broken by filename order) and the rest are deleted
	// best-effort; deletion failures are logged and ignored. The kept
	// path is returned either way, so repeated calls converge on the
	// same choice.
	Reconcile() (string, error)

	// Load reads one snapshot file into a Generation. Returns
	// domain.ErrSnapshotNotFound when the path no longer exists and
	// domain.ErrSnapshotCorrupt when it cannot be parsed; callers treat
	// both as "diff not possible this run".
	Load(path string) (domain.Generation, error)

	// Persist writes the Generation as a new snapshot file stamped with
	// the run's date (YYYY-MM-DD). Called unconditionally at the end of
	// every run so the next run always has a comparison baseline.
	Persist(gen domain.Generation, runDate string) (string, error)
}
