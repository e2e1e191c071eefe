// Package portfolio assembles a bilingual project showcase: a block-based
// content model, image uploads backed by object storage, and a REST surface
// whose public reads are publish gated. The module is embeddable; hosts hand
// it a config plus optional dependency overrides and mount the handler.
package portfolio

import (
	"context"
	nethttp "net/http"

	"github.com/goliatone/go-portfolio/assets"
	"github.com/goliatone/go-portfolio/internal/di"
	"github.com/goliatone/go-portfolio/internal/storage"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
	"github.com/goliatone/go-portfolio/projects"
	"github.com/uptrace/bun"
)

// ProjectService exports the project service contract for consumers of the
// portfolio package.
type ProjectService = projects.Service

// AssetService exports the upload service contract.
type AssetService = assets.Service

// Module represents the top level portfolio runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a portfolio module using the provided configuration and
// optional DI overrides. When the config names a storage driver and no
// database was injected, the module opens the connection and runs the schema
// migration itself.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}

	if container.DB() == nil && cfg.Storage.Driver != "" {
		db, err := storage.Open(cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		if err := storage.Migrate(context.Background(), db); err != nil {
			db.Close()
			return nil, err
		}
		container, err = di.NewContainer(cfg, append(opts, di.WithBunDB(db))...)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Projects returns the configured project service.
func (m *Module) Projects() ProjectService {
	return m.container.ProjectService()
}

// Assets returns the configured upload service.
func (m *Module) Assets() AssetService {
	return m.container.AssetService()
}

// DB returns the bun handle backing the repositories, nil when the module
// runs on in-memory storage.
func (m *Module) DB() *bun.DB {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.DB()
}

// LoggerProvider returns the logging provider shared by the services.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}

// Register mounts the REST routes on the provided mux.
func (m *Module) Register(mux *nethttp.ServeMux) error {
	return m.container.API().Register(mux)
}

// Handler returns a standalone handler serving the module routes.
func (m *Module) Handler() (nethttp.Handler, error) {
	mux := nethttp.NewServeMux()
	if err := m.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Migrate creates the portfolio schema on the provided database. Hosts that
// inject their own bun handle call this once at boot.
func Migrate(ctx context.Context, db *bun.DB) error {
	return storage.Migrate(ctx, db)
}
