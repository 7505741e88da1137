package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "admindash/internal/errors"
	"admindash/internal/model"
)

const adminIDKey = "admin_id"

// AdminResolver looks up the admin a verified token refers to. It returns
// apperrors.ErrAdminNotFound when the admin no longer exists.
type AdminResolver interface {
	ResolveAdmin(ctx context.Context, id uuid.UUID) (*model.Admin, error)
}

// Gateway guards protected routes: it extracts the bearer token, verifies it
// and resolves the admin before the request reaches a handler.
type Gateway struct {
	tokens *JWTService
	admins AdminResolver
}

// NewGateway creates the auth gateway.
func NewGateway(tokens *JWTService, admins AdminResolver) *Gateway {
	return &Gateway{tokens: tokens, admins: admins}
}

// Middleware returns the echo middleware for protected route groups.
func (g *Gateway) Middleware() echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:  adminIDKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return g.tokens.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return reject(errors.Join(apperrors.ErrUnauthorized, err))
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(g.resolve(next))
	}
}

func (g *Gateway) resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		adminID, ok := c.Get(adminIDKey).(uuid.UUID)
		if !ok {
			return reject(apperrors.ErrUnauthorized)
		}

		ctx := c.Request().Context()
		admin, err := g.admins.ResolveAdmin(ctx, adminID)
		if err != nil {
			if errors.Is(err, apperrors.ErrAdminNotFound) {
				return reject(apperrors.ErrAdminNotAuthorized)
			}
			return reject(err)
		}

		c.SetRequest(c.Request().WithContext(ContextWithIdentity(ctx, NewIdentity(admin))))
		return next(c)
	}
}

func reject(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
