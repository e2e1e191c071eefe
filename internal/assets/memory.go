package assets

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-portfolio/assets"
)

// MemoryRepository is an in-memory asset store for scaffolding/tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*assets.Asset
	hashIndex map[string]uuid.UUID
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:   make(map[uuid.UUID]*assets.Asset),
		hashIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied asset. Duplicate hashes are rejected the way
// the unique constraint would reject them.
func (m *MemoryRepository) Create(_ context.Context, record *assets.Asset) (*assets.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.hashIndex[record.Hash]; ok {
		return nil, fmt.Errorf("asset repository create: hash %q already exists", record.Hash)
	}

	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.records[copied.ID] = &copied
	m.hashIndex[copied.Hash] = copied.ID

	out := copied
	return &out, nil
}

// GetByID retrieves an asset by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*assets.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("asset %q: %w", id, assets.ErrNotFound)
	}
	copied := *record
	return &copied, nil
}

// GetByHash retrieves an asset by content hash.
func (m *MemoryRepository) GetByHash(_ context.Context, hash string) (*assets.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.hashIndex[hash]
	if !ok {
		return nil, fmt.Errorf("asset %q: %w", hash, assets.ErrNotFound)
	}
	copied := *m.records[id]
	return &copied, nil
}

// List returns every asset, newest first.
func (m *MemoryRepository) List(_ context.Context) ([]*assets.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*assets.Asset, 0, len(m.records))
	for _, record := range m.records {
		copied := *record
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
