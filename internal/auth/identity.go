package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "admindash/internal/errors"
	"admindash/internal/model"
)

// Identity is the authenticated admin attached to a protected request.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// NewIdentity builds the request identity from a stored admin.
func NewIdentity(admin *model.Admin) *Identity {
	return &Identity{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
		Role:  admin.Role,
	}
}

type identityKey struct{}

// ContextWithIdentity returns a copy of ctx carrying id.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by the gateway, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

// IdentityHandlerFunc is a handler that receives the caller's identity explicitly.
type IdentityHandlerFunc func(c echo.Context, id *Identity) error

// WithIdentity adapts an IdentityHandlerFunc to echo. Requests that did not
// pass through the gateway are rejected as unauthorized.
func WithIdentity(h IdentityHandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := IdentityFromContext(c.Request().Context())
		if !ok {
			return reject(apperrors.ErrUnauthorized)
		}
		return h(c, id)
	}
}
