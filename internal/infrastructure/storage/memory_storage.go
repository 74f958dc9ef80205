package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Darkingtail/mall4r/internal/application/upload"
)

var _ upload.ObjectStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage keeps objects in process memory. Used when no bucket is
// configured (local development) and in tests.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]MemoryObject
}

// MemoryObject is a stored object
type MemoryObject struct {
	Data        []byte
	ContentType string
}

// NewMemoryObjectStorage creates an empty in-memory store
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{objects: make(map[string]MemoryObject)}
}

// Put stores an object
func (m *MemoryObjectStorage) Put(_ context.Context, key string, body io.Reader, size int64, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	data, err := io.ReadAll(io.LimitReader(body, size+1))
	if err != nil {
		return fmt.Errorf("failed to read object body: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("object size mismatch: declared %d, read %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = MemoryObject{Data: data, ContentType: contentType}
	return nil
}

// Delete removes an object; deleting a missing key succeeds
func (m *MemoryObjectStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Exists checks if an object exists
func (m *MemoryObjectStorage) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

// Get returns a stored object
func (m *MemoryObjectStorage) Get(key string) (MemoryObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}
