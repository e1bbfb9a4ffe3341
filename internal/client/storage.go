package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// PersistedState is what survives a restart.
type PersistedState struct {
	AuthToken           string `json:"authToken,omitempty"`
	OnboardingCompleted bool   `json:"onboardingCompleted,omitempty"`
}

type Storage interface {
	Load() (PersistedState, error)
	Save(state PersistedState) error
	Clear() error
}

// FileStorage keeps the state as a small JSON document.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultStatePath is <user config dir>/vybr8r/session.json.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "vybr8r", "session.json"), nil
}

func (s *FileStorage) Load() (PersistedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var state PersistedState
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return PersistedState{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return state, nil
}

// Save replaces the file atomically.
func (s *FileStorage) Save(state PersistedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(s.path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type MemoryStorage struct {
	mu    sync.Mutex
	state PersistedState
}

func NewMemoryStorage(initial PersistedState) *MemoryStorage {
	return &MemoryStorage{state: initial}
}

func (m *MemoryStorage) Load() (PersistedState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *MemoryStorage) Save(state PersistedState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = PersistedState{}
	return nil
}
