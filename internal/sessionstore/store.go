// Package sessionstore persists the pane tree between runs.
package sessionstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/regenrek/taskpit/internal/appdirs"
	"github.com/regenrek/taskpit/internal/atomicfile"
	"github.com/regenrek/taskpit/internal/mux"
)

// CurrentSchemaVersion identifies the persisted schema version.
const CurrentSchemaVersion = 1

const (
	quarantineDirName = "quarantine"

	// DefaultSnapshotLines is how much text each pane keeps on disk.
	DefaultSnapshotLines = 200
	// MaxSnapshotBytes caps a single pane's persisted text.
	MaxSnapshotBytes = 64 * 1024
)

// File is the on-disk document.
type File struct {
	SchemaVersion int          `json:"schemaVersion"`
	SavedAt       time.Time    `json:"savedAt"`
	State         mux.Metadata `json:"state"`
}

// Store reads and writes a single state file.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore returns a store for path.
func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sessionstore: path is required")
	}
	return &Store{path: filepath.Clean(path), now: time.Now}, nil
}

// DefaultStore returns the store at the standard state file location.
func DefaultStore() (*Store, error) {
	path, err := appdirs.StateFilePath()
	if err != nil {
		return nil, err
	}
	return NewStore(path)
}

// Path returns the state file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Save writes meta atomically. Snapshots are trimmed to MaxSnapshotBytes.
func (s *Store) Save(ctx context.Context, meta mux.Metadata) error {
	if s == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	panes := make([]mux.PaneMeta, len(meta.Panes))
	for i, pm := range meta.Panes {
		pm.Snapshot = TrimLinesByBytes(pm.Snapshot, MaxSnapshotBytes)
		panes[i] = pm
	}
	meta.Panes = panes
	doc := File{
		SchemaVersion: CurrentSchemaVersion,
		SavedAt:       s.now().UTC(),
		State:         meta,
	}
	if err := atomicfile.SaveJSON(s.path, doc, 0o600); err != nil {
		return fmt.Errorf("sessionstore: save: %w", err)
	}
	return nil
}

// Load reads the state file. It reports false when there is nothing to
// restore. Unreadable or unknown-schema files are moved aside into a
// quarantine directory and reported as nothing to restore.
func (s *Store) Load(ctx context.Context) (File, bool, error) {
	if s == nil {
		return File{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return File{}, false, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, false, nil
		}
		return File{}, false, fmt.Errorf("sessionstore: read: %w", err)
	}
	doc, err := decode(data)
	if err != nil {
		target := s.quarantine()
		slog.Warn("sessionstore: quarantined state file",
			slog.String("path", s.path),
			slog.String("moved_to", target),
			slog.Any("err", err),
		)
		return File{}, false, nil
	}
	return doc, true, nil
}

// Delete removes the state file.
func (s *Store) Delete() error {
	if s == nil {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("sessionstore: delete: %w", err)
	}
	return nil
}

func decode(data []byte) (File, error) {
	var doc File
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return File{}, fmt.Errorf("sessionstore: decode: %w", err)
	}
	if doc.SchemaVersion != CurrentSchemaVersion {
		return File{}, fmt.Errorf("sessionstore: unknown schema %d", doc.SchemaVersion)
	}
	return doc, nil
}

func (s *Store) quarantine() string {
	dir := filepath.Join(filepath.Dir(s.path), quarantineDirName)
	_ = os.MkdirAll(dir, 0o700)
	target := filepath.Join(dir, filepath.Base(s.path)+"-"+s.now().UTC().Format("20060102-150405"))
	if err := os.Rename(s.path, target); err != nil {
		return ""
	}
	return target
}
