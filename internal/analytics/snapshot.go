package analytics

// In this file: snapshot persistence.  The whole aggregate is written as a
// single JSON document, overwritten on every save.

import (
	"encoding/json"
	"fmt"
	"os"
)

// Store loads and saves analytics snapshots.  Implementations other than
// FileStore exist only in tests.
type Store interface {
	Load() (*State, error)
	Save(*State) error
}

// FileStore persists the snapshot as a JSON file at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the snapshot.  It returns an error if the file is
// missing or does not parse; the caller decides whether that is fatal
// (Tracker.Load treats it as "start from zero").
func (fs *FileStore) Load() (*State, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", fs.path, err)
	}
	st.normalise()
	return &st, nil
}

// Save overwrites the snapshot file with the given state.
func (fs *FileStore) Save(st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", fs.path, err)
	}
	return nil
}
