package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/filestruct/filestruct/internal/models"
)

// Writer writes formatted reports to files.
type Writer struct {
	formatter Formatter
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(formatter Formatter) *Writer {
	return &Writer{formatter: formatter}
}

// Write formats the structure and writes the report to the given path,
// creating parent directories if they don't exist.
func (w *Writer) Write(path string, structure *models.FileStructure) error {
	content := w.formatter.Format(structure)

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
