// Package store provides a flat JSON document store over a base directory.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store reads and writes JSON documents inside one directory. It does not
// interpret document contents; callers own the serialization contract.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory is not specified")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the base directory.
func (s *Store) Dir() string { return s.dir }

// List returns the JSON filenames in the store, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list store directory %s: %w", s.dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the text of the named document.
func (s *Store) Read(name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(b), nil
}

// Write stores text under the given name, replacing any previous document.
func (s *Store) Write(name, text string) error {
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Exists reports whether the named document is present.
func (s *Store) Exists(name string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
