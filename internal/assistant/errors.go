package assistant

import "errors"

var (
	ErrConfig        = errors.New("invalid assistant configuration")
	ErrEmptyResponse = errors.New("assistant returned an empty response")
)
