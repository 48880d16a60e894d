package storage

import (
	"context"
	"errors"
	"strings"
	"sync"

	guestapp "github.com/innkeep/backend/internal/application/guest"
)

// Ensure MemoryObjectStorage implements ObjectStorageService
var _ guestapp.ObjectStorageService = (*MemoryObjectStorage)(nil)

type storedObject struct {
	data        []byte
	contentType string
}

// MemoryObjectStorage keeps objects in process memory. It backs local
// development and tests when no S3-compatible backend is configured.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]storedObject

	// BaseURL is the base for the URLs returned by PublicURL
	BaseURL string
}

// NewMemoryObjectStorage creates a new MemoryObjectStorage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string]storedObject),
		BaseURL: "https://storage.example.com",
	}
}

// Upload stores a blob under the given key
func (s *MemoryObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = storedObject{data: buf, contentType: contentType}
	return nil
}

// PublicURL returns the URL an uploaded object would be served under
func (s *MemoryObjectStorage) PublicURL(storageKey string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(storageKey, "/")
}

// DeleteObject removes a stored object; deleting a missing key is not an error
func (s *MemoryObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether a key holds an object
func (s *MemoryObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// Object returns a stored blob and its content type
func (s *MemoryObjectStorage) Object(storageKey string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[storageKey]
	return obj.data, obj.contentType, ok
}
