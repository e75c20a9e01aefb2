package intake

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/internal/staging"
)

// Domain errors for intake operations.
var (
	ErrNoSummary  = errors.New("summary sheet required")
	ErrInvalidURL = errors.New("url must be an absolute http(s) url")
	ErrTooLarge   = errors.New("upload exceeds size limit")
	ErrExtraction = errors.New("metadata extraction failed")
	ErrStaging    = errors.New("document staging failed")
)

// MapHTTPStatus maps intake errors to HTTP status codes. Extraction and
// staging failures defer to their own packages.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoSummary), errors.Is(err, ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrExtraction):
		return analysis.MapHTTPStatus(err)
	case errors.Is(err, ErrStaging):
		return staging.MapHTTPStatus(err)
	default:
		return http.StatusInternalServerError
	}
}
