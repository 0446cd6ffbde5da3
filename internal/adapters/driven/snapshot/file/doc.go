// Package file implements the SnapshotStore port on top of date-stamped
// JSON files in the storage directory. It owns the at-most-one-
// authoritative-snapshot rule: discovery scans for candidates by naming
// convention and consolidates stray files left behind by crashed runs.
package file
