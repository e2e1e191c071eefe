package assets

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"

	"github.com/goliatone/go-portfolio/assets"
	"github.com/goliatone/go-portfolio/internal/identity"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// DefaultMaxUploadBytes caps uploads at 10 MiB.
const DefaultMaxUploadBytes = 10 << 20

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithMaxUploadBytes overrides the upload size limit.
func WithMaxUploadBytes(limit int64) ServiceOption {
	return func(s *service) {
		if limit > 0 {
			s.maxBytes = limit
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// service implements assets.Service.
type service struct {
	repo     Repository
	storage  ObjectStorage
	now      func() time.Time
	maxBytes int64
	logger   interfaces.Logger
}

// NewService constructs an asset service with the required dependencies.
func NewService(repo Repository, storage ObjectStorage, opts ...ServiceOption) assets.Service {
	s := &service{
		repo:     repo,
		storage:  storage,
		now:      time.Now,
		maxBytes: DefaultMaxUploadBytes,
		logger:   logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Upload stores an image, deduplicating by content hash. Identical bytes
// return the existing record without touching storage; new bytes are written
// under a hash-derived key and recorded with a hash-derived identifier.
func (s *service) Upload(ctx context.Context, req assets.UploadRequest) (*assets.UploadResult, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(req.ContentType)), "image/") {
		return nil, assets.ErrNotImage
	}
	if req.Body == nil {
		return nil, assets.ErrEmptyFile
	}

	data, err := io.ReadAll(io.LimitReader(req.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("assets: read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, assets.ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return nil, assets.ErrTooLarge
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	if existing, err := s.repo.GetByHash(ctx, hash); err == nil {
		s.logger.Debug("asset upload deduplicated", "asset_id", existing.ID, "hash", hash)
		return &assets.UploadResult{Asset: existing, Created: false}, nil
	} else if !errors.Is(err, assets.ErrNotFound) {
		return nil, err
	}

	width, height := imageDimensions(data)
	key := objectKey(hash, req.ContentType)

	url, err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), req.ContentType)
	if err != nil {
		return nil, err
	}

	record := &assets.Asset{
		ID:        identity.AssetUUID(hash),
		URL:       url,
		Width:     width,
		Height:    height,
		Mime:      req.ContentType,
		Hash:      hash,
		Alt:       strings.TrimSpace(req.Alt),
		CreatedAt: s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		// A concurrent upload of the same bytes can win the insert race;
		// the stored record is equivalent, so return it.
		if existing, lookupErr := s.repo.GetByHash(ctx, hash); lookupErr == nil {
			return &assets.UploadResult{Asset: existing, Created: false}, nil
		}
		return nil, err
	}

	s.logger.Info("asset uploaded", "asset_id", created.ID, "bytes", len(data), "mime", created.Mime)
	return &assets.UploadResult{Asset: created, Created: true}, nil
}

// Get fetches an asset by identifier.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*assets.Asset, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every stored asset, newest first.
func (s *service) List(ctx context.Context) ([]*assets.Asset, error) {
	return s.repo.List(ctx)
}

// imageDimensions decodes just the header. Formats outside the registered
// decoders report zero dimensions rather than failing the upload.
func imageDimensions(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

func objectKey(hash, contentType string) string {
	ext := ""
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/gif":
		ext = ".gif"
	case "image/webp":
		ext = ".webp"
	case "image/svg+xml":
		ext = ".svg"
	case "image/avif":
		ext = ".avif"
	}
	return hash + ext
}
