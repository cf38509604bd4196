package models

import "fmt"

// InvalidNameError is returned when an entity is created with an empty name
// or a name containing a path separator.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}

// DuplicateNameError is returned when an add operation targets a name already
// occupied by a sibling file or directory. The tree is left unchanged.
type DuplicateNameError struct {
	Name   string
	Parent string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("name %q already exists in %q", e.Name, e.Parent)
}

// NotFoundError is returned when a remove operation targets a name absent
// from the expected level. Find operations signal absence with a nil return
// instead.
type NotFoundError struct {
	Kind   string // "file" or "directory"
	Name   string
	Parent string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in %q", e.Kind, e.Name, e.Parent)
}

// MalformedDataError is returned when plain data fails the serialization
// contract during import. Path identifies the offending field, e.g.
// "directories.docs.files".
type MalformedDataError struct {
	Path   string
	Reason string

	cause error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed data at %q: %s", e.Path, e.Reason)
}

// Unwrap exposes a wrapped cause, if any, for errors.Is/As chains.
func (e *MalformedDataError) Unwrap() error { return e.cause }

func malformed(path, reason string) *MalformedDataError {
	return &MalformedDataError{Path: path, Reason: reason}
}

func malformedWrap(path string, cause error) *MalformedDataError {
	return &MalformedDataError{Path: path, Reason: cause.Error(), cause: cause}
}
