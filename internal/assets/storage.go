package assets

import (
	"context"
	"io"
	"sync"
)

// ObjectStorage writes uploaded bytes to durable storage and returns the
// public URL callers embed in rendered pages.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// MemoryStorage keeps uploaded objects in memory for scaffolding/tests.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	// BaseURL prefixes generated object URLs.
	BaseURL string
}

// NewMemoryStorage constructs the storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte), BaseURL: "memory://uploads"}
}

func (m *MemoryStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return m.BaseURL + "/" + key, nil
}

// Len reports how many objects have been written.
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
