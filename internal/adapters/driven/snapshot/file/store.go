package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/exwatch-cli/internal/core/domain"
	"github.com/custodia-labs/exwatch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/exwatch-cli/internal/logger"
)

// Snapshot filename convention: previous_run_<YYYY-MM-DD>.json.
const (
	snapshotPrefix    = "previous_run"
	snapshotExtension = ".json"
)

// Ensure Store implements the interface.
var _ driven.SnapshotStore = (*Store)(nil)

// Store is the file-based snapshot store. All snapshot files live
// directly in dir.
type Store struct {
	dir string
}

// NewStore creates a snapshot store over the given directory.
// The directory is expected to exist by the time Reconcile or Persist
// is called; the orchestrator creates it during its prepare stage.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Reconcile scans the storage directory for snapshot candidates and
// reduces them to one. Consolidation happens on read rather than on
// write: a crash between persist and cleanup leaves extra files, and
// any later reader converges on the same latest-by-embedded-date
// choice. Stale candidates are deleted best-effort; a failed delete is
// logged and the file left in place, since correctness only depends on
// picking the right file.
func (s *Store) Reconcile() (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("scan snapshot directory: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, snapshotPrefix+"_") && strings.HasSuffix(name, snapshotExtension) {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) == 0 {
		return "", nil
	}

	// Latest embedded date first; the date is the only variable part of
	// the name, so full-name comparison breaks ties deterministically.
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := embeddedDate(candidates[i]), embeddedDate(candidates[j])
		if di != dj {
			return di > dj
		}
		return candidates[i] > candidates[j]
	})

	for _, stale := range candidates[1:] {
		stalePath := filepath.Join(s.dir, stale)
		if err := os.Remove(stalePath); err != nil {
			logger.Warn("delete stale snapshot %s: %v", stale, err)
			continue
		}
		logger.Info("deleted stale snapshot %s", stale)
	}

	return filepath.Join(s.dir, candidates[0]), nil
}

// Load reads a snapshot file into a Generation.
func (s *Store) Load(path string) (domain.Generation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, path)
		}
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var gen domain.Generation
	if err := json.Unmarshal(data, &gen); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrSnapshotCorrupt, path, err)
	}

	return gen, nil
}

// Persist writes the Generation as the snapshot for runDate. The write
// is whole-file: an empty Generation still produces a valid JSON array
// so the next run has a baseline.
func (s *Store) Persist(gen domain.Generation, runDate string) (string, error) {
	if gen == nil {
		gen = domain.Generation{}
	}

	data, err := json.MarshalIndent(gen, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	path := filepath.Join(s.dir, snapshotPrefix+"_"+runDate+snapshotExtension)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", path, err)
	}

	return path, nil
}

// embeddedDate extracts the date stamp from a candidate filename.
func embeddedDate(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix+"_"), snapshotExtension)
}
