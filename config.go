package portfolio

import "github.com/goliatone/go-portfolio/internal/runtimeconfig"

var (
	ErrStorageDriverUnknown      = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired        = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
	ErrUploadLimitInvalid        = runtimeconfig.ErrUploadLimitInvalid
	ErrPageSizeInvalid           = runtimeconfig.ErrPageSizeInvalid
	ErrObjectStoreBucketRequired = runtimeconfig.ErrObjectStoreBucketRequired
)

type (
	Config            = runtimeconfig.Config
	StorageConfig     = runtimeconfig.StorageConfig
	CacheConfig       = runtimeconfig.CacheConfig
	UploadConfig      = runtimeconfig.UploadConfig
	ObjectStoreConfig = runtimeconfig.ObjectStoreConfig
	PaginationConfig  = runtimeconfig.PaginationConfig
	HTTPConfig        = runtimeconfig.HTTPConfig
	AuthConfig        = runtimeconfig.AuthConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
