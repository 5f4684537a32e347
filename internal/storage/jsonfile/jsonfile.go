// Package jsonfile persists the session list as a single pretty-printed JSON
// array, the form downstream stages and analysts read.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/haldis/badgeflow/internal/model"
	"github.com/haldis/badgeflow/internal/storage"
)

// Store reads and writes a session JSON file.
type Store struct {
	path string
}

// New creates a Store for the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// WriteSessions replaces the file with the given session list. The parent
// directory is created if needed.
func (s *Store) WriteSessions(_ context.Context, sessions []model.Session) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal sessions")
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", s.path)
	}
	return nil
}

// ReadSessions loads a previously written session list.
func (s *Store) ReadSessions(_ context.Context) ([]model.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(storage.ErrMissingInput, "sessions %s", s.path)
		}
		return nil, errors.Wrapf(err, "read %s", s.path)
	}
	var sessions []model.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, errors.Wrapf(err, "parse %s", s.path)
	}
	return sessions, nil
}
