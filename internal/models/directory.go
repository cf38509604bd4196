package models

import "sort"

// Directory is a composite node owning files and subdirectories. Direct
// children of either kind share one namespace: a file and a subdirectory
// cannot carry the same name at the same level. Ownership is strict tree
// containment, with no parent pointers; navigation is always top-down.
type Directory struct {
	name     string
	files    map[string]*File
	subdirs  map[string]*Directory
	children []string // insertion order of child names, both kinds
}

// NewDirectory creates an empty directory.
func NewDirectory(name string) (*Directory, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Directory{
		name:    name,
		files:   make(map[string]*File),
		subdirs: make(map[string]*Directory),
	}, nil
}

// Name returns the directory name.
func (d *Directory) Name() string { return d.name }

// AddDirectory creates and inserts a child directory, returning it for
// chaining. A sibling of either kind already using the name makes this a
// DuplicateNameError and leaves the tree unchanged.
func (d *Directory) AddDirectory(name string) (*Directory, error) {
	child, err := NewDirectory(name)
	if err != nil {
		return nil, err
	}
	if err := d.attachDirectory(child); err != nil {
		return nil, err
	}
	return child, nil
}

// RemoveDirectory detaches and discards the named child subtree. Every
// descendant becomes unreachable from the root.
func (d *Directory) RemoveDirectory(name string) error {
	if _, ok := d.subdirs[name]; !ok {
		return &NotFoundError{Kind: "directory", Name: name, Parent: d.name}
	}
	delete(d.subdirs, name)
	d.dropChild(name)
	return nil
}

// AddFile creates and inserts a file without content.
func (d *Directory) AddFile(name string) (*File, error) {
	f, err := NewFile(name)
	if err != nil {
		return nil, err
	}
	if err := d.attachFile(f); err != nil {
		return nil, err
	}
	return f, nil
}

// AddFileWithContent creates and inserts a file carrying content.
func (d *Directory) AddFileWithContent(name, content string) (*File, error) {
	f, err := NewFileWithContent(name, content)
	if err != nil {
		return nil, err
	}
	if err := d.attachFile(f); err != nil {
		return nil, err
	}
	return f, nil
}

// RemoveFile removes the named file.
func (d *Directory) RemoveFile(name string) error {
	if _, ok := d.files[name]; !ok {
		return &NotFoundError{Kind: "file", Name: name, Parent: d.name}
	}
	delete(d.files, name)
	d.dropChild(name)
	return nil
}

// FindDirectory looks for a directory by name, direct children first. With
// recursive set it continues depth-first through the subtree in insertion
// order, so repeated calls on an unmodified tree return the same match.
// Absence is an expected outcome and returns nil, never an error.
func (d *Directory) FindDirectory(name string, recursive bool) *Directory {
	if sub, ok := d.subdirs[name]; ok {
		return sub
	}
	if !recursive {
		return nil
	}
	for _, child := range d.children {
		sub, ok := d.subdirs[child]
		if !ok {
			continue
		}
		if found := sub.FindDirectory(name, true); found != nil {
			return found
		}
	}
	return nil
}

// FindFile is the file-sided counterpart of FindDirectory.
func (d *Directory) FindFile(name string, recursive bool) *File {
	if f, ok := d.files[name]; ok {
		return f
	}
	if !recursive {
		return nil
	}
	for _, child := range d.children {
		sub, ok := d.subdirs[child]
		if !ok {
			continue
		}
		if found := sub.FindFile(name, true); found != nil {
			return found
		}
	}
	return nil
}

// Files returns the file names in insertion order.
func (d *Directory) Files() []string {
	names := make([]string, 0, len(d.files))
	for _, child := range d.children {
		if _, ok := d.files[child]; ok {
			names = append(names, child)
		}
	}
	return names
}

// Subdirectories returns the subdirectory names in insertion order.
func (d *Directory) Subdirectories() []string {
	names := make([]string, 0, len(d.subdirs))
	for _, child := range d.children {
		if _, ok := d.subdirs[child]; ok {
			names = append(names, child)
		}
	}
	return names
}

// File returns the named direct child file, or nil.
func (d *Directory) File(name string) *File { return d.files[name] }

// Subdirectory returns the named direct child directory, or nil.
func (d *Directory) Subdirectory(name string) *Directory { return d.subdirs[name] }

// Export returns the plain-data form: files first, then subdirectories,
// each as a mapping keyed by child name.
func (d *Directory) Export() map[string]interface{} {
	files := make(map[string]interface{}, len(d.files))
	for name, f := range d.files {
		files[name] = f.Export()
	}
	subdirs := make(map[string]interface{}, len(d.subdirs))
	for name, sub := range d.subdirs {
		subdirs[name] = sub.Export()
	}
	return map[string]interface{}{
		"files":          files,
		"subdirectories": subdirs,
	}
}

// DirectoryFromData reconstructs a directory subtree. Missing "files" or
// "subdirectories" keys mean empty; any other shape violation, including a
// child whose embedded name mismatches its mapping key, is a
// MalformedDataError. The partially built subtree is discarded on failure.
func DirectoryFromData(path, name string, data map[string]interface{}) (*Directory, error) {
	d, err := NewDirectory(name)
	if err != nil {
		return nil, malformedWrap(path, err)
	}

	filesData, err := mappingKey(path, data, "files")
	if err != nil {
		return nil, err
	}
	for fileName, raw := range filesData {
		childPath := path + ".files." + fileName
		fileData, ok := raw.(map[string]interface{})
		if !ok {
			return nil, malformed(childPath, "expected a mapping")
		}
		f, err := FileFromData(childPath, fileData)
		if err != nil {
			return nil, err
		}
		if f.Name() != fileName {
			return nil, malformed(childPath, "embedded name does not match mapping key")
		}
		if err := d.attachFile(f); err != nil {
			return nil, malformedWrap(childPath, err)
		}
	}

	subdirsData, err := mappingKey(path, data, "subdirectories")
	if err != nil {
		return nil, err
	}
	for subName, raw := range subdirsData {
		childPath := path + ".subdirectories." + subName
		subData, ok := raw.(map[string]interface{})
		if !ok {
			return nil, malformed(childPath, "expected a mapping")
		}
		sub, err := DirectoryFromData(childPath, subName, subData)
		if err != nil {
			return nil, err
		}
		if err := d.attachDirectory(sub); err != nil {
			return nil, malformedWrap(childPath, err)
		}
	}

	d.normalizeOrder()
	return d, nil
}

// mappingKey fetches an optional mapping-valued key, treating absence as an
// empty mapping.
func mappingKey(path string, data map[string]interface{}, key string) (map[string]interface{}, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, malformed(path+"."+key, "expected a mapping")
	}
	return m, nil
}

func (d *Directory) attachFile(f *File) error {
	if d.hasChild(f.Name()) {
		return &DuplicateNameError{Name: f.Name(), Parent: d.name}
	}
	d.files[f.Name()] = f
	d.children = append(d.children, f.Name())
	return nil
}

func (d *Directory) attachDirectory(sub *Directory) error {
	if d.hasChild(sub.Name()) {
		return &DuplicateNameError{Name: sub.Name(), Parent: d.name}
	}
	d.subdirs[sub.Name()] = sub
	d.children = append(d.children, sub.Name())
	return nil
}

func (d *Directory) hasChild(name string) bool {
	if _, ok := d.files[name]; ok {
		return true
	}
	_, ok := d.subdirs[name]
	return ok
}

func (d *Directory) dropChild(name string) {
	for i, child := range d.children {
		if child == name {
			d.children = append(d.children[:i], d.children[i+1:]...)
			return
		}
	}
}

// normalizeOrder sorts children after an import. JSON objects carry no
// order, so imported trees traverse in sorted-name order, which keeps
// repeated searches deterministic.
func (d *Directory) normalizeOrder() {
	sort.Strings(d.children)
}
