package actions

import (
	"errors"
	"net/http"
)

// Domain errors for operator actions.
var (
	ErrSiteNotFound         = errors.New("site not found")
	ErrAlertNotFound        = errors.New("alert not found")
	ErrAlreadyAcknowledged  = errors.New("alert already acknowledged")
	ErrSuggestionNotFound   = errors.New("suggestion not found")
	ErrNotPending           = errors.New("suggestion already decided")
	ErrAssetNotFound        = errors.New("asset not found at this site")
	ErrInvalidWeights       = errors.New("weights must be between 0 and 1 with a positive sum")
	ErrQuestionRequired     = errors.New("question is required")
	ErrAssistantUnavailable = errors.New("assistant is not configured")
	ErrAssistantFailed      = errors.New("assistant request failed")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSiteNotFound),
		errors.Is(err, ErrAlertNotFound),
		errors.Is(err, ErrSuggestionNotFound),
		errors.Is(err, ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyAcknowledged), errors.Is(err, ErrNotPending):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidWeights), errors.Is(err, ErrQuestionRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrAssistantUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrAssistantFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
