package models

import "strings"

// File is a leaf node in the structure: a name plus optional content. Its
// identity never changes after creation; to change content, callers replace
// the instance.
type File struct {
	name       string
	content    string
	hasContent bool
}

// NewFile creates a file without content.
func NewFile(name string) (*File, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &File{name: name}, nil
}

// NewFileWithContent creates a file carrying content.
func NewFileWithContent(name, content string) (*File, error) {
	f, err := NewFile(name)
	if err != nil {
		return nil, err
	}
	f.content = content
	f.hasContent = true
	return f, nil
}

// Name returns the file name.
func (f *File) Name() string { return f.name }

// Content returns the content and whether any is present.
func (f *File) Content() (string, bool) { return f.content, f.hasContent }

// Export returns the plain-data form of the file. Absent content exports as
// nil; absent and null are treated as the same state on import.
func (f *File) Export() map[string]interface{} {
	data := map[string]interface{}{
		"name":    f.name,
		"content": nil,
	}
	if f.hasContent {
		data["content"] = f.content
	}
	return data
}

// FileFromData reconstructs a File from its plain-data form. The data path
// is used to locate errors in nested imports.
func FileFromData(path string, data map[string]interface{}) (*File, error) {
	rawName, ok := data["name"]
	if !ok {
		return nil, malformed(path, "missing required key \"name\"")
	}
	name, ok := rawName.(string)
	if !ok {
		return nil, malformed(path+".name", "expected a string")
	}
	var f *File
	var err error
	switch content := data["content"].(type) {
	case nil:
		f, err = NewFile(name)
	case string:
		f, err = NewFileWithContent(name, content)
	default:
		return nil, malformed(path+".content", "expected a string or null")
	}
	if err != nil {
		// An invalid name inside persisted data is a data defect, not a
		// caller mistake.
		return nil, malformedWrap(path+".name", err)
	}
	return f, nil
}

// validateName rejects empty names and names embedding a path separator.
// A separator in a file or directory name means the caller wanted a nested
// path and must create the intermediate directories explicitly.
func validateName(name string) error {
	if name == "" {
		return &InvalidNameError{Name: name, Reason: "name must not be empty"}
	}
	if strings.ContainsAny(name, `/\`) {
		return &InvalidNameError{Name: name, Reason: "name must not contain a path separator"}
	}
	return nil
}
