package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/exwatch-cli/internal/core/domain"
)

// --- Mock implementations of the driven ports ---

type mockSource struct {
	rows []domain.RawRow
	err  error
}

func (m *mockSource) FetchRows(_ context.Context) ([]domain.RawRow, error) {
	return m.rows, m.err
}

type mockSnapshotStore struct {
	reconcilePath string
	reconcileErr  error
	loaded        domain.Generation
	loadErr       error
	persisted     domain.Generation
	persistDate   string
	persistErr    error
}

func (m *mockSnapshotStore) Reconcile() (string, error) {
	return m.reconcilePath, m.reconcileErr
}

func (m *mockSnapshotStore) Load(_ string) (domain.Generation, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loaded, nil
}

func (m *mockSnapshotStore) Persist(gen domain.Generation, runDate string) (string, error) {
	m.persisted = gen
	m.persistDate = runDate
	if m.persistErr != nil {
		return "", m.persistErr
	}
	return "/snapshots/previous_run_" + runDate + ".json", nil
}

type mockRenderer struct {
	fullGen       domain.Generation
	fullPath      string
	fullErr       error
	changes       *domain.ChangeSet
	changesPath   string
	changesErr    error
	changesCalled bool
}

func (m *mockRenderer) RenderFull(gen domain.Generation, path string) error {
	m.fullGen = gen
	m.fullPath = path
	return m.fullErr
}

func (m *mockRenderer) RenderChanges(cs *domain.ChangeSet, path string) error {
	m.changesCalled = true
	m.changes = cs
	m.changesPath = path
	return m.changesErr
}

type mockNotifier struct {
	notifiedPath string
	called       bool
	err          error
}

func (m *mockNotifier) Notify(_ context.Context, path string) error {
	m.called = true
	m.notifiedPath = path
	return m.err
}

type mockRunStore struct {
	saved []domain.RunRecord
	err   error
}

func (m *mockRunStore) Save(_ context.Context, run domain.RunRecord) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, run)
	return nil
}

func (m *mockRunStore) List(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return m.saved, nil
}

func (m *mockRunStore) Close() error { return nil }

// --- Helpers ---

func newTestRunner(t *testing.T, source *mockSource, snaps *mockSnapshotStore, renderer *mockRenderer, notifier *mockNotifier, runs *mockRunStore) *Runner {
	t.Helper()
	r := NewRunner(source, snaps, renderer, notifier, nil, t.TempDir())
	if runs != nil {
		r.runs = runs
	}
	r.now = func() time.Time {
		return time.Date(2023, 6, 15, 8, 0, 0, 0, time.UTC)
	}
	return r
}

func validRows() []domain.RawRow {
	return []domain.RawRow{
		{Subject: "Acme Corp", Decision: "Exclusion", EffectiveDate: "10.01.2023"},
		{Subject: "Beta Ltd", Decision: "Observation", EffectiveDate: "01.02.2023"},
	}
}

// --- Scenario: first run, no prior snapshot ---

func TestRun_FirstRun(t *testing.T) {
	source := &mockSource{rows: validRows()}
	snaps := &mockSnapshotStore{reconcilePath: ""}
	renderer := &mockRenderer{}
	notifier := &mockNotifier{}

	runner := newTestRunner(t, source, snaps, renderer, notifier, nil)
	rec, err := runner.Run(context.Background())
	require.NoError(t, err)

	// Diff stage skipped, no changes report, no notification.
	assert.False(t, renderer.changesCalled)
	assert.False(t, notifier.called)
	assert.Zero(t, rec.AddedCount)
	assert.Zero(t, rec.DeletedCount)

	// Full report and snapshot still produced.
	assert.Len(t, renderer.fullGen, 2)
	assert.Len(t, snaps.persisted, 2)
	assert.Equal(t, "2023-06-15", snaps.persistDate)
	assert.Equal(t, "2023-06-15", rec.Date)
	assert.NotEmpty(t, rec.SnapshotPath)
	assert.Equal(t, 2, rec.RecordCount)
}

// --- Scenario: identical scrapes, second run finds no changes ---

func TestRun_NoChanges(t *testing.T) {
	previous := domain.Deduplicate(mustRecords(t, validRows()))

	source := &mockSource{rows: validRows()}
	snaps := &mockSnapshotStore{
		reconcilePath: "/snapshots/previous_run_2023-06-14.json",
		loaded:        previous,
	}
	renderer := &mockRenderer{}
	notifier := &mockNotifier{}

	runner := newTestRunner(t, source, snaps, renderer, notifier, nil)
	rec, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, renderer.changesCalled, "no changes report expected")
	assert.False(t, notifier.called)
	// Snapshot rewritten anyway.
	assert.Len(t, snaps.persisted, 2)
	assert.Empty(t, rec.ChangesReportPath)
}

// --- Scenario: one record removed, one added ---

func TestRun_AddedAndDeleted(t *testing.T) {
	acme, err := domain.NewRecord("Acme Corp", "Exclusion", "10.01.2023")
	require.NoError(t, err)

	source := &mockSource{rows: []domain.RawRow{
		{Subject: "Beta Ltd", Decision: "Exclusion", EffectiveDate: "01.02.2023"},
	}}
	snaps := &mockSnapshotStore{
		reconcilePath: "/snapshots/previous_run_2023-06-14.json",
		loaded:        domain.Generation{acme},
	}
	renderer := &mockRenderer{}
	notifier := &mockNotifier{}
	runs := &mockRunStore{}

	runner := newTestRunner(t, source, snaps, renderer, notifier, runs)
	rec, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.True(t, renderer.changesCalled)
	require.NotNil(t, renderer.changes)
	require.Len(t, renderer.changes.Added, 1)
	assert.Equal(t, "beta-ltd-exclusion-2023-02-01", renderer.changes.Added[0].ID)
	require.Len(t, renderer.changes.Deleted, 1)
	assert.Equal(t, "acme-corp-exclusion-2023-01-10", renderer.changes.Deleted[0].ID)

	assert.True(t, notifier.called)
	assert.Equal(t, renderer.changesPath, notifier.notifiedPath)

	assert.Equal(t, 1, rec.AddedCount)
	assert.Equal(t, 1, rec.DeletedCount)

	// Outcome recorded in the ledger.
	require.Len(t, runs.saved, 1)
	assert.Equal(t, rec.ID, runs.saved[0].ID)
}

// --- Row-level failures are recovered ---

func TestRun_MalformedRowsSkipped(t *testing.T) {
	source := &mockSource{rows: []domain.RawRow{
		{Subject: "Acme Corp", Decision: "Exclusion", EffectiveDate: "not-a-date"},
		{Subject: "", Decision: "Exclusion", EffectiveDate: "10.01.2023"},
		{Subject: "Beta Ltd", Decision: "Observation", EffectiveDate: "01.02.2023"},
	}}
	snaps := &mockSnapshotStore{}
	renderer := &mockRenderer{}
	notifier := &mockNotifier{}

	runner := newTestRunner(t, source, snaps, renderer, notifier, nil)
	rec, err := runner.Run(context.Background())
	require.NoError(t, err)

	// Only the valid row survives; the run itself is unaffected.
	assert.Equal(t, 1, rec.RecordCount)
	require.Len(t, snaps.persisted, 1)
	assert.Equal(t, "beta-ltd-observation-2023-02-01", snaps.persisted[0].ID)
}

func TestRun_DuplicateRowsCollapsed(t *testing.T) {
	rows := append(validRows(), validRows()...)
	source := &mockSource{rows: rows}
	snaps := &mockSnapshotStore{}

	runner := newTestRunner(t, source, snaps, &mockRenderer{}, &mockNotifier{}, nil)
	rec, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, rec.RecordCount)
}

// --- Structural failures abort the run ---

func TestRun_FetchFailureIsFatal(t *testing.T) {
	source := &mockSource{err: domain.ErrTableNotFound}
	snaps := &mockSnapshotStore{}

	runner := newTestRunner(t, source, snaps, &mockRenderer{}, &mockNotifier{}, nil)
	_, err := runner.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
	// No snapshot mutation before the abort.
	assert.Empty(t, snaps.persistDate)
}

// --- Degraded-but-complete paths ---

func TestRun_CorruptSnapshotSkipsDiff(t *testing.T) {
	source := &mockSource{rows: validRows()}
	snaps := &mockSnapshotStore{
		reconcilePath: "/snapshots/previous_run_2023-06-14.json",
		loadErr:       domain.ErrSnapshotCorrupt,
	}
	renderer := &mockRenderer{}
	notifier := &mockNotifier{}

	runner := newTestRunner(t, source, snaps, renderer, notifier, nil)
	rec, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, renderer.changesCalled)
	assert.False(t, notifier.called)
	// Fresh snapshot persisted regardless.
	assert.Len(t, snaps.persisted, 2)
	assert.NotEmpty(t, rec.SnapshotPath)
}

func TestRun_ReconcileFailureIsRecovered(t *testing.T) {
	source := &mockSource{rows: validRows()}
	snaps := &mockSnapshotStore{reconcileErr: errors.New("permission denied")}

	runner := newTestRunner(t, source, snaps, &mockRenderer{}, &mockNotifier{}, nil)
	_, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, snaps.persisted, 2)
}

func TestRun_FullReportFailureDoesNotAbort(t *testing.T) {
	source := &mockSource{rows: validRows()}
	snaps := &mockSnapshotStore{}
	renderer := &mockRenderer{fullErr: errors.New("disk full")}

	runner := newTestRunner(t, source, snaps, renderer, &mockNotifier{}, nil)
	rec, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rec.FullReportPath)
	// Later stages still ran.
	assert.Len(t, snaps.persisted, 2)
}

func TestRun_ChangesReportFailureSkipsNotify(t *testing.T) {
	source := &mockSource{rows: validRows()}
	snaps := &mockSnapshotStore{
		reconcilePath: "/snapshots/previous_run_2023-06-14.json",
		loaded:        domain.Generation{},
	}
	renderer := &mockRenderer{changesErr: errors.New("disk full")}
	notifier := &mockNotifier{}

	runner := newTestRunner(t, source, snaps, renderer, notifier, nil)
	rec, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, renderer.changesCalled)
	assert.False(t, notifier.called, "no notification without a report file")
	assert.Empty(t, rec.ChangesReportPath)
	assert.Len(t, snaps.persisted, 2)
}

func TestRun_NotifierFailureDoesNotAbort(t *testing.T) {
	source := &mockSource{rows: validRows()}
	snaps := &mockSnapshotStore{
		reconcilePath: "/snapshots/previous_run_2023-06-14.json",
		loaded:        domain.Generation{},
	}
	notifier := &mockNotifier{err: errors.New("smtp unreachable")}

	runner := newTestRunner(t, source, snaps, &mockRenderer{}, notifier, nil)
	rec, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, notifier.called)
	assert.NotEmpty(t, rec.SnapshotPath)
}

func TestRun_PersistFailureSurfacedNotFatal(t *testing.T) {
	source := &mockSource{rows: validRows()}
	snaps := &mockSnapshotStore{persistErr: errors.New("storage unavailable")}

	runner := newTestRunner(t, source, snaps, &mockRenderer{}, &mockNotifier{}, nil)
	rec, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rec.SnapshotPath)
}

func TestRun_LedgerFailureDoesNotAbort(t *testing.T) {
	source := &mockSource{rows: validRows()}
	snaps := &mockSnapshotStore{}
	runs := &mockRunStore{err: errors.New("database locked")}

	runner := newTestRunner(t, source, snaps, &mockRenderer{}, &mockNotifier{}, runs)
	rec, err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func mustRecords(t *testing.T, rows []domain.RawRow) []domain.Record {
	t.Helper()
	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := domain.NewRecord(row.Subject, row.Decision, row.EffectiveDate)
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}
