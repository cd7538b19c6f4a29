package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fleetpulse/fleetpulse-be/internal/models"
)

// StorageError wraps a failure to read, parse or write the directory file.
// It propagates to the web layer; nothing below it attempts a retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("user directory %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store persists the user directory as a single JSON file keyed by vehicle
// number. Every Load reads the whole file and every Save rewrites it in
// full; there is no locking or atomic replace at this layer, so interleaved
// Load/Save sequences from different callers are last-write-wins.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at path. The file does not
// need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns all records in the backing file. A missing file is an empty
// directory, not an error.
func (s *Store) Load() (map[string]models.UserRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]models.UserRecord{}, nil
		}
		return nil, &StorageError{Op: "read", Err: err}
	}

	users := make(map[string]models.UserRecord)
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, &StorageError{Op: "parse", Err: err}
	}
	return users, nil
}

// Save replaces the backing file contents with the given directory.
func (s *Store) Save(users map[string]models.UserRecord) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}
