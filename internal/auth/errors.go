package auth

import (
	"errors"
	"net/http"
)

// Domain errors for authentication operations.
var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicate          = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingToken       = errors.New("missing bearer token")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrMissingToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
