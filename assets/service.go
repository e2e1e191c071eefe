package assets

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("assets: not found")
	ErrNotImage  = errors.New("assets: file is not an image")
	ErrEmptyFile = errors.New("assets: file is empty")
	ErrTooLarge  = errors.New("assets: file exceeds the upload limit")
)

// Service exposes the asset upload and lookup use-cases.
type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	Get(ctx context.Context, id uuid.UUID) (*Asset, error)
	List(ctx context.Context) ([]*Asset, error)
}

// UploadRequest carries one incoming file. Size is advisory; the service
// enforces its own limit while reading.
type UploadRequest struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Alt         string
}

// UploadResult reports the stored asset. Created is false when the upload
// deduplicated against an existing record, in which case no bytes were
// written to storage.
type UploadResult struct {
	Asset   *Asset `json:"asset"`
	Created bool   `json:"created"`
}
