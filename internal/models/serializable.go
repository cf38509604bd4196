// Package models holds the in-memory file-structure tree: File and Directory
// entities plus the FileStructure root, with plain-data serialization for
// JSON persistence.
package models

// Serializable is implemented by entities that can be exported to plain
// data: nested values built only from strings, numbers, booleans, nil,
// slices and string-keyed maps, suitable for direct JSON encoding.
//
// The import half of the contract lives in per-type factories
// (FileFromData, DirectoryFromData, StructureFromData), since Go interfaces
// cannot express constructors.
type Serializable interface {
	Export() map[string]interface{}
}

var (
	_ Serializable = (*File)(nil)
	_ Serializable = (*Directory)(nil)
	_ Serializable = (*FileStructure)(nil)
)
