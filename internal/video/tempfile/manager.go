package tempfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/consensuslabs/reelstream/backend/internal/logger"
	"github.com/google/uuid"
)

// Manager tracks the staging directories used while an upload is probed
type Manager struct {
	baseDir     string
	activeDirs  map[string]bool
	logger      logger.Logger
	mu          sync.RWMutex
	permissions os.FileMode
}

// Config represents the configuration for the temporary file manager
type Config struct {
	BaseDir     string      // defaults to the OS temp dir
	Permissions os.FileMode // defaults to 0o755
}

// NewManager creates a new temporary file manager
func NewManager(config *Config, logger logger.Logger) (*Manager, error) {
	baseDir := config.BaseDir
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "reelstream-uploads")
	}
	permissions := config.Permissions
	if permissions == 0 {
		permissions = 0o755
	}
	if err := os.MkdirAll(baseDir, permissions); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Manager{
		baseDir:     baseDir,
		activeDirs:  make(map[string]bool),
		logger:      logger,
		permissions: permissions,
	}, nil
}

// CreateTempDir creates a new temporary directory and returns its path
func (m *Manager) CreateTempDir() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dirPath := filepath.Join(m.baseDir, uuid.New().String())
	if err := os.MkdirAll(dirPath, m.permissions); err != nil {
		m.logger.LogError(err, fmt.Sprintf("Failed to create temporary directory: path=%s", dirPath))
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}
	m.activeDirs[dirPath] = true
	return dirPath, nil
}

// CleanupDir removes a temporary directory and its contents
func (m *Manager) CleanupDir(dirPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.activeDirs[dirPath] {
		return fmt.Errorf("not a managed temporary directory: %s", dirPath)
	}
	if err := os.RemoveAll(dirPath); err != nil {
		m.logger.LogError(err, fmt.Sprintf("Failed to cleanup temporary directory: path=%s", dirPath))
		return fmt.Errorf("failed to cleanup temporary directory: %w", err)
	}
	delete(m.activeDirs, dirPath)
	return nil
}

// CleanupAll removes all managed temporary directories
func (m *Manager) CleanupAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for dirPath := range m.activeDirs {
		if err := os.RemoveAll(dirPath); err != nil {
			m.logger.LogError(err, fmt.Sprintf("Failed to cleanup temporary directory: path=%s", dirPath))
			lastErr = err
		} else {
			delete(m.activeDirs, dirPath)
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to cleanup all temporary directories: %w", lastErr)
	}
	return nil
}

// Stage copies r to <dir>/upload<ext> inside a new managed directory
func (m *Manager) Stage(r io.Reader, ext string) (string, func(), error) {
	dir, err := m.CreateTempDir()
	if err != nil {
		return "", nil, err
	}
	release := func() {
		if err := m.CleanupDir(dir); err != nil {
			m.logger.LogWarn("Failed to release staged upload", map[string]interface{}{
				"path":  dir,
				"error": err.Error(),
			})
		}
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	path := filepath.Join(dir, "upload"+strings.ToLower(ext))

	file, err := os.Create(path)
	if err != nil {
		release()
		return "", nil, fmt.Errorf("failed to create staged file: %w", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		release()
		return "", nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	if err := file.Close(); err != nil {
		release()
		return "", nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	return path, release, nil
}

// IsManaged checks if a directory is managed by this manager
func (m *Manager) IsManaged(dirPath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeDirs[dirPath]
}
