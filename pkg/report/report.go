// Package report renders a loaded file structure into a human-readable
// summary document.
package report

import (
	"fmt"
	"path"
	"strings"

	"github.com/filestruct/filestruct/internal/models"
)

// Formatter converts a file structure into a formatted document.
type Formatter interface {
	Format(structure *models.FileStructure) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(structure *models.FileStructure) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(structure *models.FileStructure) string {
	return f(structure)
}

// Entry is one file in the report: its full path and, when present, its
// content.
type Entry struct {
	Path       string
	Content    string
	HasContent bool
}

// Collect walks a directory subtree and returns every file as an Entry,
// in the directory's own traversal order.
func Collect(prefix string, dir *models.Directory) []Entry {
	var entries []Entry
	base := path.Join(prefix, dir.Name())
	for _, name := range dir.Files() {
		f := dir.File(name)
		content, ok := f.Content()
		entries = append(entries, Entry{
			Path:       path.Join(base, name),
			Content:    content,
			HasContent: ok,
		})
	}
	for _, name := range dir.Subdirectories() {
		entries = append(entries, Collect(base, dir.Subdirectory(name))...)
	}
	return entries
}

// Markdown returns the markdown formatter: every file path grouped by
// top-level directory, with fenced content blocks where content exists.
func Markdown() Formatter {
	return FormatFunc(func(structure *models.FileStructure) string {
		var b strings.Builder
		b.WriteString("# File Structure Report\n\n")
		b.WriteString("Every file tracked by the structure, grouped by top-level directory.\n")

		names := structure.ListDirectories()
		if len(names) == 0 {
			b.WriteString("\n*(No directories found in the structure.)*\n")
			return b.String()
		}

		for _, name := range names {
			fmt.Fprintf(&b, "\n## Directory: `%s`\n\n", name)

			entries := Collect("", structure.Directory(name))
			if len(entries) == 0 {
				b.WriteString("*No files found in this directory.*\n")
				continue
			}

			for _, entry := range entries {
				fmt.Fprintf(&b, "### `%s`\n", entry.Path)
				if entry.HasContent {
					b.WriteString("```\n")
					b.WriteString(entry.Content)
					if !strings.HasSuffix(entry.Content, "\n") {
						b.WriteString("\n")
					}
					b.WriteString("```\n\n")
				} else {
					b.WriteString("*(no content)*\n\n")
				}
			}
		}

		return b.String()
	})
}
