package simulations

import (
	"errors"
	"net/http"
)

// Domain errors for simulations and predictions.
var (
	ErrNotFound         = errors.New("simulation not found")
	ErrInvalidParams    = errors.New("pvCurtail and batteryTarget must be 0-100 and gridPrice must be 0-1000")
	ErrTooFewSamples    = errors.New("at least two vibration samples are required")
	ErrInvalidSamples   = errors.New("vibration samples must be finite and within 1000 g")
	ErrInvalidForecast  = errors.New("capacity_kw must be 0-10000000 and cloud_cover must be between 0 and 1")
	ErrInvalidMotorData = errors.New("motor readings must be finite and not negative")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidParams),
		errors.Is(err, ErrTooFewSamples),
		errors.Is(err, ErrInvalidSamples),
		errors.Is(err, ErrInvalidForecast),
		errors.Is(err, ErrInvalidMotorData):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
