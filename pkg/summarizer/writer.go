package summarizer

import (
	"fmt"

	"github.com/user/framecollate/pkg/ports"
)

// Writer renders summaries through a Formatter and saves them.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a Writer that formats with formatter and writes
// through fs.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{
		formatter: formatter,
		fs:        fs,
	}
}

// Write formats the summary and saves it at path. Parent directories
// are created by the file system.
func (w *Writer) Write(path string, summary *Summary) error {
	content := w.formatter.Format(summary)
	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
