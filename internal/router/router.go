package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"admindash/internal/auth"
	"admindash/internal/config"
	apperrors "admindash/internal/errors"
	"admindash/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	gateway *auth.Gateway,
	authHandler *handler.AuthHandler,
	customerHandler *handler.CustomerHandler,
	analyticsHandler *handler.AnalyticsHandler,
) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/verify-token", authHandler.VerifyToken)

	// Secured routes (require a bearer token naming an existing admin). The
	// gateway is attached per route so unknown paths still answer 404.
	protect := gateway.Middleware()

	api.GET("/customers", auth.WithIdentity(customerHandler.List), protect)
	api.POST("/customers", auth.WithIdentity(customerHandler.Create), protect)
	api.PUT("/customers/:id", auth.WithIdentity(customerHandler.Update), protect)
	api.DELETE("/customers/:id", auth.WithIdentity(customerHandler.Delete), protect)

	api.GET("/analytics/admins", auth.WithIdentity(analyticsHandler.AdminStats), protect)
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Status >= http.StatusInternalServerError {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

// NewHTTPErrorHandler renders every error as {"message": ...}. Errors that
// did not come from a handler as *echo.HTTPError are mapped through the
// domain taxonomy first; 5xx causes are logged and never sent to clients.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			mapped := apperrors.MapErrorToHTTP(err)
			he = echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse()).SetInternal(err)
		}

		if he.Code >= http.StatusInternalServerError {
			cause := he.Internal
			if cause == nil {
				cause = err
			}
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(cause),
			)
		}

		c.Echo().DefaultHTTPErrorHandler(he, c)
	}
}
