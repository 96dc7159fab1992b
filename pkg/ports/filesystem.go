package ports

// FileSystem abstracts file system operations so stores and sinks can be
// tested against an in-memory implementation.
type FileSystem interface {
	// ReadFile returns the entire contents of the file at path.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path, creating parent directories as needed.
	WriteFile(path string, data []byte) error

	// MkdirAll creates the directory at path along with any missing parents.
	MkdirAll(path string) error
}
