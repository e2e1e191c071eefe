package assets

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-portfolio/assets"
)

// BunAssetRepository persists asset records through bun.
type BunAssetRepository struct {
	repo repository.Repository[*assets.Asset]
}

func NewBunAssetRepository(db *bun.DB) *BunAssetRepository {
	return NewBunAssetRepositoryWithCache(db, nil, nil)
}

// NewBunAssetRepositoryWithCache constructs a Repository backed by bun with optional caching.
func NewBunAssetRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunAssetRepository {
	base := NewAssetRepository(db)
	return &BunAssetRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunAssetRepository) Create(ctx context.Context, record *assets.Asset) (*assets.Asset, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("asset repository create: %w", err)
	}
	return created, nil
}

func (r *BunAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*assets.Asset, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunAssetRepository) GetByHash(ctx context.Context, hash string) (*assets.Asset, error) {
	record, err := r.repo.GetByIdentifier(ctx, hash)
	if err != nil {
		return nil, mapRepositoryError(err, hash)
	}
	return record, nil
}

func (r *BunAssetRepository) List(ctx context.Context) ([]*assets.Asset, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("asset repository list: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return fmt.Errorf("asset %q: %w", key, assets.ErrNotFound)
	}
	return fmt.Errorf("asset repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
