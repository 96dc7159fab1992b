package mocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/framecollate/pkg/ports"
)

// FileSystem is a mock implementation of ports.FileSystem backed by an
// in-memory map of paths to contents.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
}

// NewFileSystem creates a new mock FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	return nil
}

// GetFile returns the contents of a file (for test verification).
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	return data, ok
}

// FilesUnder returns the paths of all files below a directory prefix
// (for test verification).
func (m *FileSystem) FilesUnder(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var paths []string
	for k := range m.files {
		if strings.HasPrefix(k, prefix) {
			paths = append(paths, k)
		}
	}
	return paths
}

var _ ports.FileSystem = (*FileSystem)(nil)
