package models

import (
	"encoding/json"
	"sort"
	"strings"
)

// FileStructure is the root container of the tree: a set of top-level
// directories keyed by name. One instance serves one session; a freshly
// constructed empty structure is a valid starting state, and Import or
// FromText is the only transition that replaces it wholesale.
type FileStructure struct {
	directories map[string]*Directory
	order       []string
}

// NewFileStructure creates an empty structure.
func NewFileStructure() *FileStructure {
	return &FileStructure{directories: make(map[string]*Directory)}
}

// AddDirectory inserts a top-level directory, returning it for chaining.
func (s *FileStructure) AddDirectory(name string) (*Directory, error) {
	d, err := NewDirectory(name)
	if err != nil {
		return nil, err
	}
	if _, ok := s.directories[name]; ok {
		return nil, &DuplicateNameError{Name: name, Parent: "/"}
	}
	s.directories[name] = d
	s.order = append(s.order, name)
	return d, nil
}

// RemoveDirectory removes a top-level directory and everything under it.
func (s *FileStructure) RemoveDirectory(name string) error {
	if _, ok := s.directories[name]; !ok {
		return &NotFoundError{Kind: "directory", Name: name, Parent: "/"}
	}
	delete(s.directories, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindDirectory searches depth-first from each top-level directory in
// insertion order and returns the first match, or nil. Sibling uniqueness
// is per level, not structure-wide, so unrelated branches may reuse a name;
// first match in traversal order wins.
func (s *FileStructure) FindDirectory(name string) *Directory {
	for _, top := range s.order {
		d := s.directories[top]
		if d.Name() == name {
			return d
		}
		if found := d.FindDirectory(name, true); found != nil {
			return found
		}
	}
	return nil
}

// FindFile searches depth-first from each top-level directory in insertion
// order and returns the first matching file, or nil.
func (s *FileStructure) FindFile(name string) *File {
	for _, top := range s.order {
		if found := s.directories[top].FindFile(name, true); found != nil {
			return found
		}
	}
	return nil
}

// ListDirectories returns the top-level directory names in insertion order.
func (s *FileStructure) ListDirectories() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Directory returns the named top-level directory, or nil.
func (s *FileStructure) Directory(name string) *Directory { return s.directories[name] }

// GetDirectoryByPath resolves a slash-separated path top-down, e.g.
// "projects/api/tests". Returns nil when any segment is missing.
func (s *FileStructure) GetDirectoryByPath(path string) *Directory {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil
	}
	current, ok := s.directories[parts[0]]
	if !ok {
		return nil
	}
	for _, part := range parts[1:] {
		current = current.FindDirectory(part, false)
		if current == nil {
			return nil
		}
	}
	return current
}

// Export returns the plain-data form of the whole structure.
func (s *FileStructure) Export() map[string]interface{} {
	dirs := make(map[string]interface{}, len(s.directories))
	for name, d := range s.directories {
		dirs[name] = d.Export()
	}
	return map[string]interface{}{"directories": dirs}
}

// Import replaces the structure's entire tree from plain data. The new tree
// is built aside and only swapped in once every subtree imported cleanly, so
// a failure leaves the existing structure untouched.
func (s *FileStructure) Import(data map[string]interface{}) error {
	dirsData, err := mappingKey("", data, "directories")
	if err != nil {
		return malformed("directories", "expected a mapping")
	}

	directories := make(map[string]*Directory, len(dirsData))
	for name, raw := range dirsData {
		path := "directories." + name
		dirData, ok := raw.(map[string]interface{})
		if !ok {
			return malformed(path, "expected a mapping")
		}
		d, err := DirectoryFromData(path, name, dirData)
		if err != nil {
			return err
		}
		directories[name] = d
	}

	order := make([]string, 0, len(directories))
	for name := range directories {
		order = append(order, name)
	}
	sort.Strings(order)

	s.directories = directories
	s.order = order
	return nil
}

// StructureFromData builds a new structure from plain data.
func StructureFromData(data map[string]interface{}) (*FileStructure, error) {
	s := NewFileStructure()
	if err := s.Import(data); err != nil {
		return nil, err
	}
	return s, nil
}

// ToText renders the structure as compact JSON with deterministic key
// order, so the same tree always yields the same text.
func (s *FileStructure) ToText() (string, error) {
	b, err := json.Marshal(s.doc())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromText parses JSON text into a new structure. Parse failures surface as
// MalformedDataError like any other contract violation.
func FromText(text string) (*FileStructure, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, malformedWrap("", err)
	}
	return StructureFromData(data)
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
