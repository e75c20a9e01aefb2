package tenders

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/internal/staging"
)

// Domain errors for tender operations.
var (
	ErrNotFound      = errors.New("tender not found")
	ErrDuplicate     = errors.New("tender already exists")
	ErrInvalid       = errors.New("invalid tender")
	ErrInvalidStatus = errors.New("invalid tender status")
	ErrInvalidSlot   = errors.New("slot must be summary, admin or tech")
	ErrNoFile        = errors.New("no document in slot")
	ErrAnalysis      = errors.New("tender analysis failed")
)

// MapHTTPStatus maps tender domain errors to appropriate HTTP status codes.
// Analysis failures defer to analysis.MapHTTPStatus.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoFile):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidSlot):
		return http.StatusBadRequest
	case errors.Is(err, ErrAnalysis):
		return analysis.MapHTTPStatus(err)
	case errors.Is(err, staging.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
