package assets

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-portfolio/assets"
)

// Repository is the storage contract for asset records. The content hash is
// the natural identifier; GetByHash is the dedup probe.
type Repository interface {
	Create(ctx context.Context, record *assets.Asset) (*assets.Asset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*assets.Asset, error)
	GetByHash(ctx context.Context, hash string) (*assets.Asset, error)
	List(ctx context.Context) ([]*assets.Asset, error)
}

// NewAssetRepository builds the generic bun repository for asset records.
func NewAssetRepository(db *bun.DB) repository.Repository[*assets.Asset] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*assets.Asset]{
		NewRecord: func() *assets.Asset { return &assets.Asset{} },
		GetID: func(a *assets.Asset) uuid.UUID {
			return a.ID
		},
		SetID: func(a *assets.Asset, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "hash"
		},
		GetIdentifierValue: func(a *assets.Asset) string {
			return a.Hash
		},
	})
}
