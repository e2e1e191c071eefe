package assets

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Asset is an uploaded image stored on the object storage provider. Assets
// are immutable once created; re-uploading different bytes produces a new
// record under a new hash, while identical bytes converge on the existing one.
type Asset struct {
	bun.BaseModel `bun:"table:assets,alias:a"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	URL       string    `bun:"url,notnull" json:"url"`
	Width     int       `bun:"width" json:"width,omitempty"`
	Height    int       `bun:"height" json:"height,omitempty"`
	Mime      string    `bun:"mime,notnull" json:"mime"`
	Hash      string    `bun:"hash,notnull,unique" json:"hash"`
	Alt       string    `bun:"alt" json:"alt,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
