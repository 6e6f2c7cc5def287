package assets

import (
	"errors"
	"net/http"
)

// Domain errors for asset operations.
var (
	ErrNotFound           = errors.New("asset not found")
	ErrDuplicate          = errors.New("asset name already exists at this site")
	ErrSiteNotFound       = errors.New("site not found")
	ErrSiteRequired       = errors.New("site_id is required")
	ErrNameRequired       = errors.New("asset name is required")
	ErrInvalidType        = errors.New("type must be one of pv, battery, inverter, ev_charger, motor, other")
	ErrInvalidInstallDate = errors.New("install_date must be YYYY-MM-DD and not in the future")
	ErrInvalidProbability = errors.New("failure_probability must be between 0 and 1")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSiteNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrSiteRequired),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrInvalidInstallDate),
		errors.Is(err, ErrInvalidProbability):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
