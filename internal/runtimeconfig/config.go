package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageDriverUnknown = errors.New("portfolio config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("portfolio config: storage dsn is required when a driver is configured")
var ErrLoggingLevelInvalid = errors.New("portfolio config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("portfolio config: logging format is invalid")
var ErrUploadLimitInvalid = errors.New("portfolio config: upload size limit must be zero or positive")
var ErrPageSizeInvalid = errors.New("portfolio config: page sizes must be zero or positive")
var ErrObjectStoreBucketRequired = errors.New("portfolio config: object store bucket is required when an endpoint is configured")

// Config aggregates runtime bindings for the portfolio module. Fields use
// simple types so host applications can populate them from flags or env vars.
type Config struct {
	DefaultLocale string
	Storage       StorageConfig
	Cache         CacheConfig
	Uploads       UploadConfig
	Pagination    PaginationConfig
	HTTP          HTTPConfig
	Auth          AuthConfig
	Logging       LoggingConfig
}

// StorageConfig selects the SQL backend. An empty driver leaves the module on
// in-memory repositories, which is the default for tests and previews.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig captures read-through cache behaviour for the repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// UploadConfig bounds incoming images and points at the object store.
type UploadConfig struct {
	// MaxBytes caps a single upload. Zero falls back to the service default.
	MaxBytes    int64
	ObjectStore ObjectStoreConfig
}

// ObjectStoreConfig holds S3-compatible storage credentials. An empty
// endpoint keeps uploads in process memory.
type ObjectStoreConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// PaginationConfig bounds project listings. Zero values fall back to the
// service defaults (10 per page, capped at 100).
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// HTTPConfig shapes the mounted REST surface.
type HTTPConfig struct {
	Addr     string
	BasePath string
}

// AuthConfig carries the admin credential. An empty token disables every
// write route.
type AuthConfig struct {
	AdminToken string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the baseline runtime configuration: Portuguese-first
// locales, in-memory repositories, cache enabled with a short TTL.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "pt",
		Storage:       StorageConfig{},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Uploads: UploadConfig{},
		HTTP: HTTPConfig{
			Addr:     ":8080",
			BasePath: "/api",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "",
		},
	}
}

// Validate ensures the configuration is internally consistent before any
// dependency is built from it.
func (cfg Config) Validate() error {
	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch driver {
	// Mirrors the drivers storage.Open accepts.
	case "", "sqlite3", "sqlite", "postgres", "postgresql", "pg":
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if driver != "" && strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}

	if cfg.Uploads.MaxBytes < 0 {
		return ErrUploadLimitInvalid
	}
	if cfg.Pagination.DefaultPageSize < 0 || cfg.Pagination.MaxPageSize < 0 {
		return ErrPageSizeInvalid
	}
	store := cfg.Uploads.ObjectStore
	if strings.TrimSpace(store.Endpoint) != "" && strings.TrimSpace(store.Bucket) == "" {
		return ErrObjectStoreBucketRequired
	}

	level := strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	switch level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Logging.Level)
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	switch format {
	case "", "json", "console", "text", "pretty":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Logging.Format)
	}

	return nil
}
