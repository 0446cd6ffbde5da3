// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for a run to execute:
//
//   - SourceProvider: Fetches raw table rows from the published list
//   - SnapshotStore: Previous-run snapshot discovery, read and write
//   - ReportRenderer: Spreadsheet rendering of record sets
//   - Notifier: Change notification delivery
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Run-history ledger. Without it, `exwatch history` is
//     unavailable and run outcomes are only logged.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
