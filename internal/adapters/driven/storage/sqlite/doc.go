// Package sqlite implements the RunStore port on an embedded SQLite
// database. It keeps the run-history ledger: one row per completed run
// with counts and produced file paths.
package sqlite
