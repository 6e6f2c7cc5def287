package data

import (
	"errors"
	"net/http"
)

// Domain errors for telemetry operations.
var (
	ErrSiteNotFound  = errors.New("site not found")
	ErrInvalidMetric = errors.New("metrics must be finite and pv_generation must not be negative")
	ErrInvalidSoC    = errors.New("battery_soc must be between 0 and 100")
	ErrFutureReading = errors.New("recorded_at is in the future")
	ErrInvalidRange  = errors.New("range must be one of 24h, 7d, 30d")
	ErrInvalidStatus = errors.New("unknown status filter")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSiteNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidMetric),
		errors.Is(err, ErrInvalidSoC),
		errors.Is(err, ErrFutureReading),
		errors.Is(err, ErrInvalidRange),
		errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
