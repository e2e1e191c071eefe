package di

import (
	"context"
	"time"

	"github.com/goliatone/go-portfolio/assets"
	"github.com/goliatone/go-portfolio/auth"
	internalassets "github.com/goliatone/go-portfolio/internal/assets"
	httpapi "github.com/goliatone/go-portfolio/internal/http"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/logging/gologger"
	internalprojects "github.com/goliatone/go-portfolio/internal/projects"
	"github.com/goliatone/go-portfolio/internal/runtimeconfig"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
	"github.com/goliatone/go-portfolio/projects"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Memory-backed repositories and object
// storage are the default; WithBunDB swaps every repository for the SQL
// implementation, and configuring an object store endpoint swaps uploads onto
// MinIO.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	objectStorage  internalassets.ObjectStorage
	guard          auth.Guard

	projectRepo internalprojects.Repository
	assetRepo   internalassets.Repository

	projectSvc projects.Service
	assetSvc   assets.Service

	api *httpapi.API
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds every repository to the provided bun database handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithObjectStorage overrides where uploaded images are persisted.
func WithObjectStorage(storage internalassets.ObjectStorage) Option {
	return func(c *Container) {
		c.objectStorage = storage
	}
}

// WithGuard overrides the guard protecting the write routes.
func WithGuard(guard auth.Guard) Option {
	return func(c *Container) {
		c.guard = guard
	}
}

// WithLoggerProvider overrides the default logging provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithProjectRepository overrides the default project repository binding.
func WithProjectRepository(repo internalprojects.Repository) Option {
	return func(c *Container) {
		c.projectRepo = repo
	}
}

// WithAssetRepository overrides the default asset repository binding.
func WithAssetRepository(repo internalassets.Repository) Option {
	return func(c *Container) {
		c.assetRepo = repo
	}
}

// WithProjectService overrides the default project service binding.
func WithProjectService(svc projects.Service) Option {
	return func(c *Container) {
		c.projectSvc = svc
	}
}

// WithAssetService overrides the default asset service binding.
func WithAssetService(svc assets.Service) Option {
	return func(c *Container) {
		c.assetSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:      cfg,
		cacheTTL:    cacheTTL,
		projectRepo: internalprojects.NewMemoryRepository(),
		assetRepo:   internalassets.NewMemoryRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureObjectStorage(); err != nil {
		return nil, err
	}
	c.configureAuth()

	if c.projectSvc == nil {
		projectOpts := []internalprojects.ServiceOption{
			internalprojects.WithLogger(logging.ProjectsLogger(c.loggerProvider)),
		}
		if pg := cfg.Pagination; pg.DefaultPageSize > 0 || pg.MaxPageSize > 0 {
			projectOpts = append(projectOpts, internalprojects.WithPageSizes(pg.DefaultPageSize, pg.MaxPageSize))
		}
		c.projectSvc = internalprojects.NewService(c.projectRepo, projectOpts...)
	}

	if c.assetSvc == nil {
		assetOpts := []internalassets.ServiceOption{
			internalassets.WithLogger(logging.AssetsLogger(c.loggerProvider)),
		}
		if cfg.Uploads.MaxBytes > 0 {
			assetOpts = append(assetOpts, internalassets.WithMaxUploadBytes(cfg.Uploads.MaxBytes))
		}
		c.assetSvc = internalassets.NewService(c.assetRepo, c.objectStorage, assetOpts...)
	}

	c.api = httpapi.NewAPI(
		httpapi.WithBasePath(cfg.HTTP.BasePath),
		httpapi.WithProjectService(c.projectSvc),
		httpapi.WithAssetService(c.assetSvc),
		httpapi.WithGuard(c.guard),
		httpapi.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	)

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.projectRepo = internalprojects.NewBunProjectRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.assetRepo = internalassets.NewBunAssetRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureObjectStorage() error {
	if c.objectStorage != nil {
		return nil
	}

	store := c.Config.Uploads.ObjectStore
	if store.Endpoint == "" {
		c.objectStorage = internalassets.NewMemoryStorage()
		return nil
	}

	minioStorage, err := internalassets.NewMinioStorage(context.Background(), internalassets.MinioConfig{
		Endpoint:      store.Endpoint,
		AccessKey:     store.AccessKey,
		SecretKey:     store.SecretKey,
		Bucket:        store.Bucket,
		UseSSL:        store.UseSSL,
		PublicBaseURL: store.PublicBaseURL,
	})
	if err != nil {
		return err
	}
	c.objectStorage = minioStorage
	return nil
}

func (c *Container) configureAuth() {
	if c.guard != nil {
		return
	}
	if c.Config.Auth.AdminToken == "" {
		return
	}
	c.guard = auth.NewStaticTokenGuard(c.Config.Auth.AdminToken, "admin")
}

// API returns the configured HTTP surface.
func (c *Container) API() *httpapi.API {
	return c.api
}

// DB returns the bun handle when SQL storage is configured, nil otherwise.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// LoggerProvider returns the active logging provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Guard returns the configured auth guard, nil when writes are disabled.
func (c *Container) Guard() auth.Guard {
	return c.guard
}

// ObjectStorage returns the storage backend receiving uploaded images.
func (c *Container) ObjectStorage() internalassets.ObjectStorage {
	return c.objectStorage
}

// ProjectRepository returns the active project repository binding.
func (c *Container) ProjectRepository() internalprojects.Repository {
	return c.projectRepo
}

// AssetRepository returns the active asset repository binding.
func (c *Container) AssetRepository() internalassets.Repository {
	return c.assetRepo
}

// ProjectService returns the configured project service.
func (c *Container) ProjectService() projects.Service {
	return c.projectSvc
}

// AssetService returns the configured asset service.
func (c *Container) AssetService() assets.Service {
	return c.assetSvc
}
