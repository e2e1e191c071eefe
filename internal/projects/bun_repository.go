package projects

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/projects"
)

// BunProjectRepository persists project aggregates through bun. Block rows
// are replaced wholesale inside the project update transaction.
type BunProjectRepository struct {
	db   *bun.DB
	repo repository.Repository[*projects.Project]
	rows repository.Repository[*blocks.Row]
}

func NewBunProjectRepository(db *bun.DB) *BunProjectRepository {
	return NewBunProjectRepositoryWithCache(db, nil, nil)
}

// NewBunProjectRepositoryWithCache constructs a Repository backed by bun with optional caching.
func NewBunProjectRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunProjectRepository {
	return &BunProjectRepository{
		db:   db,
		repo: wrapWithCache(NewProjectRepository(db), cacheService, keySerializer),
		rows: wrapWithCache(NewBlockRowRepository(db), cacheService, keySerializer),
	}
}

func (r *BunProjectRepository) Create(ctx context.Context, record *projects.Project) (*projects.Project, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("project repository create: %w", err)
	}
	return created, nil
}

func (r *BunProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return withAggregateRelations(q).Where("?TableAlias.id = ?", id)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "project", id.String())
	}
	if len(records) == 0 {
		return nil, &projects.NotFoundError{Resource: "project", Key: id.String()}
	}
	return records[0], nil
}

func (r *BunProjectRepository) GetBySlug(ctx context.Context, slug string) (*projects.Project, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return withAggregateRelations(q).Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "project", slug)
	}
	if len(records) == 0 {
		return nil, &projects.NotFoundError{Resource: "project", Key: slug}
	}
	return records[0], nil
}

func (r *BunProjectRepository) List(ctx context.Context, filter projects.ListFilter) ([]*projects.Project, int, error) {
	criteria := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Relation("CoverImage").OrderExpr("?TableAlias.updated_at DESC")
		}),
	}
	if filter.Status != nil {
		status := *filter.Status
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.status = ?", status)
		}))
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.
					Where("LOWER(?TableAlias.title_pt) LIKE ?", pattern).
					WhereOr("LOWER(?TableAlias.title_en) LIKE ?", pattern).
					WhereOr("LOWER(?TableAlias.subtitle_pt) LIKE ?", pattern).
					WhereOr("LOWER(?TableAlias.subtitle_en) LIKE ?", pattern).
					WhereOr("LOWER(?TableAlias.slug) LIKE ?", pattern)
			})
		}))
	}
	if filter.Limit > 0 {
		criteria = append(criteria, repository.SelectPaginate(filter.Limit, filter.Offset))
	}

	records, total, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return nil, 0, fmt.Errorf("project repository list: %w", err)
	}
	if err := r.attachBlockCounts(ctx, records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// attachBlockCounts fills BlockCount for listing reads without decoding rows.
func (r *BunProjectRepository) attachBlockCounts(ctx context.Context, records []*projects.Project) error {
	if len(records) == 0 || r.db == nil {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}

	var counts []struct {
		ProjectID uuid.UUID `bun:"project_id"`
		Count     int       `bun:"count"`
	}
	if err := r.db.NewSelect().
		Model((*blocks.Row)(nil)).
		ColumnExpr("?TableAlias.project_id AS project_id").
		ColumnExpr("COUNT(*) AS count").
		Where("?TableAlias.project_id IN (?)", bun.In(ids)).
		GroupExpr("?TableAlias.project_id").
		Scan(ctx, &counts); err != nil {
		return fmt.Errorf("project repository block counts: %w", err)
	}

	byID := make(map[uuid.UUID]int, len(counts))
	for _, c := range counts {
		byID[c.ProjectID] = c.Count
	}
	for _, record := range records {
		record.BlockCount = byID[record.ID]
	}
	return nil
}

// UpdateWithBlocks writes through the repository transaction API rather than
// raw bun queries so the caching layer sees every mutation and drops its
// entries before the re-read.
func (r *BunProjectRepository) UpdateWithBlocks(ctx context.Context, record *projects.Project, rows []*blocks.Row) (*projects.Project, error) {
	if r.db == nil {
		return nil, fmt.Errorf("project repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := r.repo.UpdateTx(ctx, tx, record, repository.UpdateColumns(
			"status",
			"title_pt",
			"subtitle_pt",
			"hero_meta_pt",
			"hero_back_label_pt",
			"title_en",
			"subtitle_en",
			"hero_meta_en",
			"hero_back_label_en",
			"seo_title",
			"seo_description",
			"preview_image",
			"preview_title_pt",
			"preview_title_en",
			"cover_image_id",
			"updated_at",
		)); err != nil {
			if goerrors.IsCategory(err, repository.CategoryDatabaseExpectedCount) {
				return &projects.NotFoundError{Resource: "project", Key: record.ID.String()}
			}
			return fmt.Errorf("update project: %w", err)
		}

		if rows == nil {
			return nil
		}

		if err := r.rows.DeleteWhereTx(ctx, tx,
			repository.DeleteBy("project_id", "=", record.ID.String()),
		); err != nil {
			return fmt.Errorf("delete project blocks: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		now := time.Now().UTC()
		toInsert := make([]*blocks.Row, 0, len(rows))
		for _, row := range rows {
			if row == nil {
				continue
			}
			cloned := *row
			cloned.ProjectID = record.ID
			if cloned.ID == uuid.Nil {
				cloned.ID = uuid.New()
			}
			if cloned.CreatedAt.IsZero() {
				cloned.CreatedAt = now
			}
			toInsert = append(toInsert, &cloned)
		}
		if len(toInsert) == 0 {
			return nil
		}

		if _, err := r.rows.CreateManyTx(ctx, tx, toInsert); err != nil {
			return fmt.Errorf("insert project blocks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, record.ID)
}

func (r *BunProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("project repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*projects.Project)(nil)).
			Where("?TableAlias.id = ?", id).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("project delete lookup: %w", err)
		}
		if !exists {
			return &projects.NotFoundError{Resource: "project", Key: id.String()}
		}

		if err := r.rows.DeleteWhereTx(ctx, tx,
			repository.DeleteBy("project_id", "=", id.String()),
		); err != nil {
			return fmt.Errorf("delete project blocks: %w", err)
		}

		if err := r.repo.DeleteTx(ctx, tx, &projects.Project{ID: id}); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
}

func (r *BunProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	if r.db == nil {
		return false, fmt.Errorf("project repository: database not configured")
	}
	exists, err := r.db.NewSelect().
		Model((*projects.Project)(nil)).
		Where("?TableAlias.slug = ?", slug).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("project repository slug lookup: %w", err)
	}
	return exists, nil
}

func withAggregateRelations(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("CoverImage").
		Relation("BlockRows", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("position ASC")
		}).
		Relation("BlockRows.Asset")
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}

	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &projects.NotFoundError{Resource: resource, Key: key}
	}

	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
