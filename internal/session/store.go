package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession is returned by Load when no state file exists on disk.
var ErrNoSession = errors.New("no active session")

// Store persists the session State.
type Store interface {
	Save(s *State) error
	Load() (*State, error) // returns ErrNoSession if none exists
}

// CorruptStateError is returned by Load when the state file exists but does
// not hold a usable State. trail refuses to guess a session id over it.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("session state %s is corrupt (delete it to start a new session): %v", e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

var errNoSessionID = errors.New("current_session_id is empty")

// fileStore keeps the state as one JSON document at path.
type fileStore struct {
	path string
}

// NewStore returns a Store backed by the file at path, creating its directory.
func NewStore(path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &fileStore{path: path}, nil
}

// Save replaces the state file. Readers see either the old or the new state.
func (f *fileStore) Save(s *State) error {
	if s.CurrentSessionID == "" {
		return fmt.Errorf("saving session state: %w", errNoSessionID)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	if err := replaceFile(f.path, append(data, '\n')); err != nil {
		return fmt.Errorf("saving session state: %w", err)
	}
	return nil
}

// Load returns ErrNoSession when the file is missing and *CorruptStateError
// when it cannot be used.
func (f *fileStore) Load() (*State, error) {
	data, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, ErrNoSession
	case err != nil:
		return nil, fmt.Errorf("reading session state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &CorruptStateError{Path: f.path, Err: err}
	}
	if s.CurrentSessionID == "" {
		return nil, &CorruptStateError{Path: f.path, Err: errNoSessionID}
	}
	return &s, nil
}

// replaceFile writes data to a temp file beside path and renames it over
// path.
func replaceFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
