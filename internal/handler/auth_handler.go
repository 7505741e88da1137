package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"admindash/internal/errors"
	"admindash/internal/model"
	"admindash/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents an admin login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyTokenRequest carries a previously issued token.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *model.Admin `json:"user"`
}

// UserResponse wraps the admin a token belongs to.
type UserResponse struct {
	User *model.Admin `json:"user"`
}

// Login godoc
// @Summary Login admin
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	token, admin, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{Token: token, User: admin})
}

// VerifyToken godoc
// @Summary Verify a token and return its admin
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyTokenRequest true "Token"
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/verify-token [post]
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	var req VerifyTokenRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	admin, err := h.authService.VerifyToken(c.Request().Context(), req.Token)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, UserResponse{User: admin})
}

// bindBody decodes the JSON request body only, so path parameters never
// leak into payload structs.
func bindBody(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "invalid request body",
		}).SetInternal(err)
	}
	return nil
}

// handleError converts a service error into the HTTP error echo renders.
func handleError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
