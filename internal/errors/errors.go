package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrFieldsRequired is returned when a required input field is missing.
	ErrFieldsRequired = errors.New("all fields are required")
	// ErrPasswordTooShort is returned when a password fails the minimum length rule.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	// ErrUserExists is returned when the username or email is already registered.
	ErrUserExists = errors.New("user with this email or username already exists")
	// ErrUserNotFound is returned when no account matches the given identity.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrWrongPassword is returned when password verification fails.
	ErrWrongPassword = errors.New("wrong password")
	// ErrProductNotFound is returned when a product is not found in the caller's scope.
	ErrProductNotFound = errors.New("product not found")
	// ErrNegativeValue is returned when price or stock is negative.
	ErrNegativeValue = errors.New("price and stock cannot be negative")
	// ErrUnauthenticated is returned when no valid business scope can be resolved.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// Response is the envelope every API response is shaped as.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
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
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// ToResponse converts an HTTPError to the response envelope.
func (e *HTTPError) ToResponse() Response {
	return Response{Success: false, Message: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything not in the
// taxonomy is reported as a generic 500 so internals never leak outward.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrFieldsRequired),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrUserExists),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrNegativeValue):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
