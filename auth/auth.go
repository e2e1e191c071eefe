// Package auth defines the authentication boundary for the admin surface.
// The HTTP layer asks a Guard who is calling; everything else about identity
// management lives outside this module.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("auth: unauthenticated")
	ErrForbidden       = errors.New("auth: forbidden")
)

// Role names a coarse permission tier.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Identity is the authenticated caller.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role Role   `json:"role"`
}

// Admin reports whether the identity can mutate content.
func (i *Identity) Admin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Guard authenticates incoming requests. Implementations return
// ErrUnauthenticated when no acceptable credentials are present.
type Guard interface {
	Authenticate(r *http.Request) (*Identity, error)
}

type contextKey struct{}

// WithIdentity stores the identity on the context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFrom retrieves the identity stored by the middleware, if any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*Identity)
	return identity, ok && identity != nil
}

// StaticTokenGuard authenticates a single shared bearer token as the admin.
// It is the minimal guard for a single-author portfolio; anything richer
// plugs in behind the Guard interface.
type StaticTokenGuard struct {
	token string
	name  string
}

// NewStaticTokenGuard constructs the guard. An empty token disables it:
// Authenticate then always fails.
func NewStaticTokenGuard(token, name string) *StaticTokenGuard {
	return &StaticTokenGuard{token: strings.TrimSpace(token), name: strings.TrimSpace(name)}
}

func (g *StaticTokenGuard) Authenticate(r *http.Request) (*Identity, error) {
	if g == nil || g.token == "" {
		return nil, ErrUnauthenticated
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(value) != g.token {
		return nil, ErrUnauthenticated
	}
	name := g.name
	if name == "" {
		name = "admin"
	}
	return &Identity{ID: "static-token", Name: name, Role: RoleAdmin}, nil
}
