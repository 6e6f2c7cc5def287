package sites

import (
	"errors"
	"net/http"
)

// Domain errors for site operations.
var (
	ErrNotFound        = errors.New("site not found")
	ErrDuplicate       = errors.New("site name already exists")
	ErrNameRequired    = errors.New("site name is required")
	ErrInvalidCapacity = errors.New("capacities must not be negative")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidCapacity) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
