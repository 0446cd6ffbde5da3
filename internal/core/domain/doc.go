// Package domain defines the core business entities for exwatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: One exclusion-list entry with a content-derived identity
//   - Generation: The deduplicated record set produced by one run
//   - ChangeSet: Added/deleted records between two Generations
//   - RawRow: Trimmed text fields extracted from one source table row
//
// It also holds the pure functions of the pipeline: identity derivation
// (DeriveID), deduplication (Deduplicate) and set difference (Diff).
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
