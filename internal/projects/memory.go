package projects

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/projects"
)

// MemoryRepository is an in-memory project store for scaffolding/tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*projects.Project
	slugIndex map[string]uuid.UUID
	rows      map[uuid.UUID][]*blocks.Row
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:   make(map[uuid.UUID]*projects.Project),
		slugIndex: make(map[string]uuid.UUID),
		rows:      make(map[uuid.UUID][]*blocks.Row),
	}
}

// Create inserts the supplied project.
func (m *MemoryRepository) Create(_ context.Context, record *projects.Project) (*projects.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneProject(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return m.hydrate(cloneProject(copied)), nil
}

// GetByID retrieves a project by identifier with its block rows attached.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*projects.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return nil, &projects.NotFoundError{Resource: "project", Key: id.String()}
	}
	return m.hydrate(cloneProject(record)), nil
}

// GetBySlug retrieves a project by slug regardless of status.
func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*projects.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &projects.NotFoundError{Resource: "project", Key: slug}
	}
	return m.hydrate(cloneProject(m.records[id])), nil
}

// List returns matching projects ordered by most recently updated.
func (m *MemoryRepository) List(_ context.Context, filter projects.ListFilter) ([]*projects.Project, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*projects.Project, 0, len(m.records))
	for _, record := range m.records {
		if record == nil {
			continue
		}
		if filter.Status != nil && record.Status != *filter.Status {
			continue
		}
		if !matchesQuery(record, filter.Query) {
			continue
		}
		copied := cloneProject(record)
		copied.BlockCount = len(m.rows[record.ID])
		matched = append(matched, copied)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	total := len(matched)
	if filter.Limit > 0 {
		start := filter.Offset
		if start > total {
			start = total
		}
		end := start + filter.Limit
		if end > total {
			end = total
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

// UpdateWithBlocks persists scalar changes and, when rows is non-nil,
// replaces the stored block rows.
func (m *MemoryRepository) UpdateWithBlocks(_ context.Context, record *projects.Project, rows []*blocks.Row) (*projects.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.records[record.ID]
	if !ok {
		return nil, &projects.NotFoundError{Resource: "project", Key: record.ID.String()}
	}

	updated := cloneProject(record)
	updated.Slug = current.Slug
	updated.CreatedAt = current.CreatedAt
	m.records[record.ID] = updated

	if rows != nil {
		replaced := make([]*blocks.Row, 0, len(rows))
		for _, row := range rows {
			if row == nil {
				continue
			}
			cloned := *row
			cloned.ProjectID = record.ID
			if cloned.ID == uuid.Nil {
				cloned.ID = uuid.New()
			}
			replaced = append(replaced, &cloned)
		}
		m.rows[record.ID] = replaced
	}

	return m.hydrate(cloneProject(updated)), nil
}

// Delete removes the project and its block rows.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return &projects.NotFoundError{Resource: "project", Key: id.String()}
	}
	delete(m.records, id)
	delete(m.slugIndex, record.Slug)
	delete(m.rows, id)
	return nil
}

// SlugExists reports whether a project already claims the slug.
func (m *MemoryRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.slugIndex[slug]
	return ok, nil
}

func (m *MemoryRepository) hydrate(record *projects.Project) *projects.Project {
	if record == nil {
		return nil
	}
	stored := m.rows[record.ID]
	record.BlockRows = cloneRows(stored)
	record.BlockCount = len(stored)
	return record
}

func matchesQuery(record *projects.Project, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	haystacks := []string{record.TitlePT, record.TitleEN, record.Slug}
	if record.SubtitlePT != nil {
		haystacks = append(haystacks, *record.SubtitlePT)
	}
	if record.SubtitleEN != nil {
		haystacks = append(haystacks, *record.SubtitleEN)
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), query) {
			return true
		}
	}
	return false
}

func cloneProject(src *projects.Project) *projects.Project {
	if src == nil {
		return nil
	}
	copied := *src
	copied.HeroMetaPT = append([]projects.HeroMetaItem(nil), src.HeroMetaPT...)
	copied.HeroMetaEN = append([]projects.HeroMetaItem(nil), src.HeroMetaEN...)
	copied.BlockRows = cloneRows(src.BlockRows)
	copied.Blocks = append([]blocks.Block(nil), src.Blocks...)
	return &copied
}

func cloneRows(src []*blocks.Row) []*blocks.Row {
	if len(src) == 0 {
		return nil
	}
	out := make([]*blocks.Row, 0, len(src))
	for _, row := range src {
		if row == nil {
			continue
		}
		cloned := *row
		out = append(out, &cloned)
	}
	return out
}
