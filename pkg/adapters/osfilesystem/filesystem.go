// Package osfilesystem implements ports.FileSystem on the local disk.
package osfilesystem

import (
	"os"
	"path/filepath"

	"github.com/user/framecollate/pkg/ports"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileSystem reads and writes files through the os package.
type FileSystem struct{}

// New creates a new FileSystem.
func New() *FileSystem {
	return &FileSystem{}
}

// ReadFile returns the entire contents of the file at path.
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating parent directories as needed.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, filePerm)
}

// MkdirAll creates the directory at path along with any missing parents.
func (f *FileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, dirPerm)
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
