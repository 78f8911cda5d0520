// Package prefs defines the read/write interface the core consumes for
// persisted editor state, plus a YAML-backed default implementation.
package prefs

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Store loads and saves preference values keyed by a hierarchical path
// string (e.g. "Grid/Size", "View/Layout"). Load reports whether a value
// was found at path; a missing path is not an error, it just leaves v
// unmodified and returns false.
type Store interface {
	Load(path string, v any) (bool, error)
	Save(path string, v any) error
}

// FileStore persists every path under a single YAML document on disk.
// It is not safe for concurrent use from multiple goroutines; callers
// needing that guard it themselves.
type FileStore struct {
	path   string
	values map[string]any
}

// NewFileStore returns a store backed by the YAML document at path. The
// file need not exist yet; it is created on the first Save.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, values: map[string]any{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return fs, nil
	}
	if err := yaml.Unmarshal(data, &fs.values); err != nil {
		return nil, err
	}
	return fs, nil
}

// Load decodes the value stored at path into v via a YAML round trip
// (marshal the stored node, unmarshal into v), so callers can pass any
// concrete type just as the design load(path, T&) does.
func (fs *FileStore) Load(path string, v any) (bool, error) {
	raw, ok := fs.values[path]
	if !ok {
		return false, nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

// Save stores v at path and rewrites the backing file.
func (fs *FileStore) Save(path string, v any) error {
	fs.values[path] = v
	data, err := yaml.Marshal(fs.values)
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path, data, 0o644)
}

// MemStore is an in-memory Store for tests and for embedding contexts
// that have no filesystem of their own.
type MemStore struct {
	values map[string]any
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: map[string]any{}}
}

func (m *MemStore) Load(path string, v any) (bool, error) {
	raw, ok := m.values[path]
	if !ok {
		return false, nil
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemStore) Save(path string, v any) error {
	m.values[path] = v
	return nil
}
