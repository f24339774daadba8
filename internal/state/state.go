// Package state persists per-document view preferences. The current page
// is deliberately not stored; every document opens on page 1.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const stateFileName = "view_prefs.json"

// ViewPrefs are the preferences remembered for a single document.
type ViewPrefs struct {
	Scale float64 `json:"scale"`
	Mode  string  `json:"mode"`
}

// StateStore manages persistent view preferences keyed by document ID.
type StateStore struct {
	path string
	data map[string]ViewPrefs
	mu   sync.RWMutex
}

// NewStateStore creates or loads the store in dir.
func NewStateStore(dir string) (*StateStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	store := &StateStore{
		path: filepath.Join(dir, stateFileName),
		data: make(map[string]ViewPrefs),
	}
	if err := store.load(); err != nil {
		// Non-fatal - start with empty state
		store.data = make(map[string]ViewPrefs)
	}
	return store, nil
}

// Path returns the backing file.
func (s *StateStore) Path() string {
	return s.path
}

// Get returns the saved preferences for id.
func (s *StateStore) Get(id string) (ViewPrefs, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[id]
	return p, ok
}

// Set saves preferences for id.
func (s *StateStore) Set(id string, p ViewPrefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.data[id]; ok && old == p {
		return nil
	}
	s.data[id] = p
	return s.save()
}

// Clear removes saved preferences for id
func (s *StateStore) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return nil
	}
	delete(s.data, id)
	return s.save()
}

func (s *StateStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

// save writes through a temp file so a crash never leaves half a file.
func (s *StateStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
