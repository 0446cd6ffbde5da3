package notify

import (
	"context"

	"github.com/custodia-labs/exwatch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/exwatch-cli/internal/logger"
)

// Ensure Console implements the interface.
var _ driven.Notifier = (*Console)(nil)

// Console is the default notifier. It surfaces the changes report in
// the run log, which cron forwards to the operator's mailbox.
type Console struct{}

// NewConsole creates a console notifier.
func NewConsole() *Console {
	return &Console{}
}

// Notify logs the report location.
func (*Console) Notify(_ context.Context, changesReportPath string) error {
	logger.Info("changes detected, report written to %s", changesReportPath)
	return nil
}
