package testhelper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/consensuslabs/reelstream/backend/internal/storage"
)

// MemoryStorage is an in-memory storage.StorageService for tests
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailPrefixes makes uploads of keys starting with a listed prefix fail
	FailPrefixes map[string]error
	// UploadErr, when set, fails every upload
	UploadErr error
}

var _ storage.StorageService = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: map[string][]byte{}, FailPrefixes: map[string]error{}}
}

func (m *MemoryStorage) UploadFile(ctx context.Context, filePath, key string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return m.UploadFileStream(ctx, bytes.NewReader(data), int64(len(data)), key, "")
}

func (m *MemoryStorage) UploadFileStream(ctx context.Context, reader io.Reader, size int64, key, contentType string) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	for prefix, err := range m.FailPrefixes {
		if strings.HasPrefix(key, prefix) {
			return "", err
		}
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if size >= 0 && int64(len(data)) != size {
		return "", fmt.Errorf("short write: %d of %d bytes", len(data), size)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return key, nil
}

func (m *MemoryStorage) DeleteFile(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryStorage) URL(key string) string {
	return storage.JoinURL("/media", key)
}

func (m *MemoryStorage) Close() error {
	return nil
}

// Keys returns the stored keys in sorted order
func (m *MemoryStorage) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns a stored object
func (m *MemoryStorage) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}
