package sharesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// SessionState is the credential pair held for the current session: the bearer
// token and the PEM-encoded private key. Both travel together; there is no
// valid state with one present and the other absent.
type SessionState struct {
	Token      string `json:"token"`
	PrivateKey string `json:"private_key"`
}

// SessionStore persists session state across program runs, the way a browser
// keeps it in per-origin storage across page loads. Implementations perform no
// validation; they are pure accessors.
type SessionStore interface {
	// Load returns the stored state, or the zero value when nothing is stored.
	Load() (SessionState, error)

	// Save replaces the stored state. Both fields must become visible
	// together; a reader must never observe a token without its key.
	Save(state SessionState) error

	// Clear removes both fields atomically.
	Clear() error
}

// FileStore persists session state as a JSON file with 0600 permissions.
// Writes go through a temp file and rename so both fields land together.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore rooted at path. Parent directories are
// created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() (SessionState, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return SessionState{}, nil
	}
	if err != nil {
		return SessionState{}, fmt.Errorf("sharesdk: failed to read session file: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return SessionState{}, fmt.Errorf("sharesdk: failed to parse session file: %w", err)
	}
	return state, nil
}

func (f *FileStore) Save(state SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("sharesdk: failed to encode session state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("sharesdk: failed to create session directory: %w", err)
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("sharesdk: failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("sharesdk: failed to replace session file: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("sharesdk: failed to remove session file: %w", err)
	}
	return nil
}

// MemStore is an in-memory SessionStore for tests and short-lived tools.
type MemStore struct {
	mu    sync.Mutex
	state SessionState
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) Load() (SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *MemStore) Save(state SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = SessionState{}
	return nil
}
