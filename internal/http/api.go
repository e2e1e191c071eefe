// Package http exposes the portfolio REST surface on the standard library
// mux. Write routes sit behind the auth guard; the public read path is the
// publish-gated slug lookup.
package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-portfolio/assets"
	"github.com/goliatone/go-portfolio/auth"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
	"github.com/goliatone/go-portfolio/projects"
	"github.com/goliatone/go-portfolio/render"
)

// API registers the project and upload endpoints.
type API struct {
	basePath string
	projects projects.Service
	assets   assets.Service
	resolver *render.Resolver
	guard    auth.Guard
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		resolver: render.NewResolver(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithProjectService wires the project service.
func WithProjectService(service projects.Service) Option {
	return func(api *API) {
		api.projects = service
	}
}

// WithAssetService wires the asset service.
func WithAssetService(service assets.Service) Option {
	return func(api *API) {
		api.assets = service
	}
}

// WithGuard wires the authentication guard for write routes.
func WithGuard(guard auth.Guard) Option {
	return func(api *API) {
		api.guard = guard
	}
}

// WithLogger wires the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")
	api.registerProjectRoutes(mux, base)
	api.registerUploadRoutes(mux, base)
	api.registerOpenAPIRoute(mux, base)
	return nil
}

// requireAdmin authenticates the request and rejects non-admin callers.
// It writes the response itself and reports whether the handler may proceed.
// An identity already established upstream on the context is trusted; the
// guard is only consulted when there is none.
func (api *API) requireAdmin(w http.ResponseWriter, r *http.Request) (*http.Request, bool) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		if api.guard == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: "no guard configured"})
			return r, false
		}
		var err error
		identity, err = api.guard.Authenticate(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return r, false
		}
		r = r.WithContext(auth.WithIdentity(r.Context(), identity))
	}
	if !identity.Admin() {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden", Message: auth.ErrForbidden.Error()})
		return r, false
	}
	return r, true
}
