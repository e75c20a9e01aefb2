package rules

import (
	"errors"
	"net/http"
)

// ErrTooLong is returned when the rules text exceeds MaxLength.
var ErrTooLong = errors.New("rules text too long")

// MapHTTPStatus maps rules errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrTooLong) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
