package meetings

import (
	"errors"
	"net/http"
)

// Domain errors for meeting operations.
var (
	ErrNotFound      = errors.New("meeting not found")
	ErrDuplicate     = errors.New("meeting already exists")
	ErrInvalid       = errors.New("invalid meeting")
	ErrAgentNotFound = errors.New("meeting agent not found")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) || errors.Is(err, ErrAgentNotFound) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
