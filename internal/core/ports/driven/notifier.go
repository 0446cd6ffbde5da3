package driven

import "context"

// Notifier delivers a change notification referencing the generated
// changes report. Only invoked when a run produced a non-empty
// ChangeSet. Failures are logged by the orchestrator, never fatal.
type Notifier interface {
	Notify(ctx context.Context, changesReportPath string) error
}
