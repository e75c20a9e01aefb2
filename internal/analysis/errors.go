package analysis

import (
	"errors"
	"net/http"
)

// Errors returned by the document understanding service client.
var (
	ErrNotConfigured   = errors.New("analysis service not configured: api key missing")
	ErrNoDocument      = errors.New("no readable document provided")
	ErrEmptyResponse   = errors.New("analysis service returned no text")
	ErrInvalidResponse = errors.New("analysis service returned an invalid response")
)

// MapHTTPStatus maps analysis errors to appropriate HTTP status codes. Any
// other failure is the upstream service's.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNoDocument):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
