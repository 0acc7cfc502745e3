package tempfile

import "io"

// TempFileManager defines the interface for temporary file operations
type TempFileManager interface {
	// CreateTempDir creates a new temporary directory and returns its path
	CreateTempDir() (string, error)

	// CleanupDir removes a temporary directory and its contents
	CleanupDir(dirPath string) error

	// CleanupAll removes all managed temporary directories
	CleanupAll() error

	// Stage copies r into a fresh managed directory. release removes it again.
	Stage(r io.Reader, ext string) (path string, release func(), err error)

	// IsManaged checks if a directory is managed by this manager
	IsManaged(dirPath string) bool
}
