package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when a protected request carries no usable bearer token.
	ErrUnauthorized = errors.New("not authorized")
	// ErrAdminNotAuthorized is returned when a valid token names an admin that no longer exists.
	ErrAdminNotAuthorized = errors.New("not authorized as admin")
	// ErrInvalidCredentials is returned for any login mismatch, unknown email or wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoToken is returned when verify-token is called without a token.
	ErrNoToken = errors.New("no token provided")
	// ErrInvalidToken is returned when a token is malformed, badly signed or expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrAdminNotFound is returned when a referenced admin does not exist.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrAdminExists is returned when seeding an admin whose email is taken.
	ErrAdminExists = errors.New("admin already exists")
	// ErrCustomerNotFound is returned when a referenced customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")
)

// ValidationError reports invalid input or a uniqueness violation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with a client-facing message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognised is a
// server error whose cause is not exposed to the client.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, ErrAdminNotAuthorized):
		return NewHTTPError(http.StatusUnauthorized, "Not authorized as admin")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrNoToken):
		return NewHTTPError(http.StatusUnauthorized, "No token provided")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, ErrAdminNotFound):
		return NewHTTPError(http.StatusNotFound, "Admin not found")
	case errors.Is(err, ErrCustomerNotFound):
		return NewHTTPError(http.StatusNotFound, "Customer not found")
	case errors.Is(err, ErrAdminExists):
		return NewHTTPError(http.StatusBadRequest, "Admin already exists with this email")
	case errors.As(err, &ve):
		return NewHTTPError(http.StatusBadRequest, ve.Message)
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error")
	}
}
