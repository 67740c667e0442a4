// Package settings is a durable string-keyed store for user preferences,
// independent of the flashcard database. Values are last-write-wins and
// non-critical: writes that fail are logged and swallowed.
package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store persists settings as a single JSON file. All access goes through one
// Store instance; the in-memory map is the source of truth between writes.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// Open loads the settings file at path, creating parent directories as
// needed. A missing file is an empty store. A corrupt file is treated the
// same way, since settings are recoverable by the user re-selecting them.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	s := &Store{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		slog.Warn("settings file is corrupt, starting empty", "path", path, "error", err)
		s.values = make(map[string]string)
	}
	return s, nil
}

// Set overwrites the value for key unconditionally and persists the store.
// Persistence failures are logged, not returned: callers treat settings
// writes as fire-and-forget.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	if err := s.flushLocked(); err != nil {
		slog.Error("failed to persist setting", "key", key, "error", err)
	}
}

// Get returns the stored value for key, and whether one was ever set.
// Absence is explicit: an empty string that was stored is ("", true).
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok
}

// flushLocked writes the store atomically via a temp file rename.
// Caller must hold s.mu.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
