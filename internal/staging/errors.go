package staging

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/tenderboard/pkg/storage"
)

// Domain errors for staging operations.
var (
	ErrNotFound     = errors.New("staged file not found")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrInvalidFile  = errors.New("invalid file")
	ErrInvalidKey   = errors.New("invalid staging key")
)

// MapHTTPStatus maps staging domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidFile), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
