package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/exwatch-cli/internal/core/domain"
	"github.com/custodia-labs/exwatch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/exwatch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/exwatch-cli/internal/logger"
)

// Report file prefixes. The full report shares its prefix with the JSON
// snapshot; snapshot discovery matches on the .json extension so the
// two never collide.
const (
	fullReportPrefix    = "previous_run"
	changesReportPrefix = "changes_run"

	reportExtension = ".xlsx"
)

// Ensure Runner implements the interface.
var _ driving.RunOrchestrator = (*Runner)(nil)

// Runner executes one complete run: prepare storage, fetch, dedupe,
// report, diff, notify, persist. The previous-snapshot path is threaded
// from the prepare stage into the diff stage as a local value; no state
// outlives a Run call.
type Runner struct {
	source    driven.SourceProvider
	snapshots driven.SnapshotStore
	renderer  driven.ReportRenderer
	notifier  driven.Notifier
	runs      driven.RunStore // optional

	storageDir string

	now func() time.Time
}

// NewRunner creates a run orchestrator. The runs ledger may be nil, in
// which case run outcomes are only logged.
func NewRunner(
	source driven.SourceProvider,
	snapshots driven.SnapshotStore,
	renderer driven.ReportRenderer,
	notifier driven.Notifier,
	runs driven.RunStore,
	storageDir string,
) *Runner {
	return &Runner{
		source:     source,
		snapshots:  snapshots,
		renderer:   renderer,
		notifier:   notifier,
		runs:       runs,
		storageDir: storageDir,
		now:        time.Now,
	}
}

// Run executes the run state machine. Only structural failures return
// an error: an uncreatable storage directory or a source page without
// the expected table. Every other failure degrades the run (row
// skipped, diff skipped, file write logged) and later stages still
// execute, so a snapshot is persisted whenever fetching succeeded.
func (r *Runner) Run(ctx context.Context) (*domain.RunRecord, error) {
	started := r.now()
	rec := &domain.RunRecord{
		ID:        uuid.NewString(),
		Date:      started.Format("2006-01-02"),
		StartedAt: started,
	}

	logger.Info("run %s starting (date %s)", rec.ID, rec.Date)

	// PREPARE_STORAGE
	if err := os.MkdirAll(r.storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", r.storageDir, err)
	}

	previousPath, err := r.snapshots.Reconcile()
	if err != nil {
		// Discovery failure only costs us the diff; the run continues.
		logger.Warn("snapshot reconcile failed: %v", err)
		previousPath = ""
	}

	// FETCH
	rows, err := r.source.FetchRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch source rows: %w", err)
	}

	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		record, err := domain.NewRecord(row.Subject, row.Decision, row.EffectiveDate)
		if err != nil {
			logger.Warn("skipping row (subject=%q decision=%q date=%q): %v",
				row.Subject, row.Decision, row.EffectiveDate, err)
			continue
		}
		records = append(records, record)
	}

	// DEDUPE
	gen := domain.Deduplicate(records)
	rec.RecordCount = len(gen)
	logger.Info("scraped %d rows, %d records after validation and dedupe", len(rows), len(gen))

	// REPORT_FULL
	fullPath := r.reportPath(fullReportPrefix, rec.Date)
	if err := r.renderer.RenderFull(gen, fullPath); err != nil {
		logger.Error("write full report %s: %v", fullPath, err)
	} else {
		rec.FullReportPath = fullPath
		logger.Info("wrote %d records to %s", len(gen), filepath.Base(fullPath))
	}

	// DIFF
	changes := r.diffAgainst(previousPath, gen)

	// REPORT_CHANGES / NOTIFY
	if changes != nil {
		rec.AddedCount = len(changes.Added)
		rec.DeletedCount = len(changes.Deleted)
		logger.Info("detected %d added and %d deleted records", rec.AddedCount, rec.DeletedCount)

		changesPath := r.reportPath(changesReportPrefix, rec.Date)
		if err := r.renderer.RenderChanges(changes, changesPath); err != nil {
			logger.Error("write changes report %s: %v", changesPath, err)
		} else {
			rec.ChangesReportPath = changesPath
			logger.Info("wrote changes report %s", filepath.Base(changesPath))

			if err := r.notifier.Notify(ctx, changesPath); err != nil {
				logger.Error("send notification: %v", err)
			}
		}
	} else {
		logger.Info("no changes detected")
	}

	// PERSIST_SNAPSHOT
	snapshotPath, err := r.snapshots.Persist(gen, rec.Date)
	if err != nil {
		logger.Error("persist snapshot: %v", err)
	} else {
		rec.SnapshotPath = snapshotPath
		logger.Info("persisted snapshot %s", filepath.Base(snapshotPath))
	}

	rec.FinishedAt = r.now()

	if r.runs != nil {
		if err := r.runs.Save(ctx, *rec); err != nil {
			logger.Error("record run in ledger: %v", err)
		}
	}

	return rec, nil
}

// diffAgainst loads the previous snapshot and diffs the current
// Generation against it. Any load failure means "no ChangeSet
// available" for this run; a fresh snapshot still gets persisted.
func (r *Runner) diffAgainst(previousPath string, current domain.Generation) *domain.ChangeSet {
	if previousPath == "" {
		logger.Info("no previous snapshot, assuming first run")
		return nil
	}

	previous, err := r.snapshots.Load(previousPath)
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		logger.Info("previous snapshot %s disappeared, assuming first run", previousPath)
		return nil
	case errors.Is(err, domain.ErrSnapshotCorrupt):
		logger.Warn("previous snapshot %s unreadable, skipping diff: %v", previousPath, err)
		return nil
	case err != nil:
		logger.Warn("load previous snapshot %s: %v", previousPath, err)
		return nil
	}

	return domain.Diff(current, previous)
}

func (r *Runner) reportPath(prefix, runDate string) string {
	return filepath.Join(r.storageDir, prefix+"_"+runDate+reportExtension)
}
