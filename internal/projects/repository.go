package projects

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/projects"
)

// Repository is the storage contract for the project aggregate. Reads return
// the project with its block rows (ordered) and joined assets attached;
// writes that touch blocks replace the whole collection atomically.
type Repository interface {
	Create(ctx context.Context, record *projects.Project) (*projects.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*projects.Project, error)
	GetBySlug(ctx context.Context, slug string) (*projects.Project, error)
	List(ctx context.Context, filter projects.ListFilter) ([]*projects.Project, int, error)
	// UpdateWithBlocks persists the scalar columns and, when rows is non-nil,
	// replaces the block collection in the same transaction. A nil rows slice
	// leaves existing blocks untouched; an empty non-nil slice clears them.
	UpdateWithBlocks(ctx context.Context, record *projects.Project, rows []*blocks.Row) (*projects.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// NewProjectRepository builds the generic bun repository for project records.
func NewProjectRepository(db *bun.DB) repository.Repository[*projects.Project] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*projects.Project]{
		NewRecord: func() *projects.Project { return &projects.Project{} },
		GetID: func(p *projects.Project) uuid.UUID {
			return p.ID
		},
		SetID: func(p *projects.Project, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *projects.Project) string {
			return p.Slug
		},
	})
}

// NewBlockRowRepository builds the generic bun repository for block rows.
func NewBlockRowRepository(db *bun.DB) repository.Repository[*blocks.Row] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*blocks.Row]{
		NewRecord: func() *blocks.Row { return &blocks.Row{} },
		GetID: func(r *blocks.Row) uuid.UUID {
			return r.ID
		},
		SetID: func(r *blocks.Row, id uuid.UUID) {
			r.ID = id
		},
		// Rows have no natural identifier besides the primary key.
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *blocks.Row) string {
			return r.ID.String()
		},
	})
}
