package prompts

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Domain errors for prompt operations.
var (
	ErrNotFound     = errors.New("prompt not found")
	ErrDuplicate    = errors.New("prompt name already exists")
	ErrInvalidStage = errors.New("stage must be extract or analyze")
	ErrInvalid      = errors.New("invalid prompt")
)

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidStage), errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func validateFields(name string, stage Stage, instructions string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	if !slices.Contains(stages, stage) {
		return ErrInvalidStage
	}
	if strings.TrimSpace(instructions) == "" {
		return fmt.Errorf("%w: instructions required", ErrInvalid)
	}
	return nil
}
