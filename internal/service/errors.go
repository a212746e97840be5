package service

import (
	"errors"
	"fmt"

	"github.com/family-gazette-api/internal/models"
)

var (
	// ErrNotFound is returned when a story, share token or job does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFormat is returned for unknown export formats
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ValidationFailure carries the field errors of a rejected request
type ValidationFailure struct {
	Errors []models.ValidationError
}

func (v *ValidationFailure) Error() string {
	if len(v.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s: %s", v.Errors[0].Field, v.Errors[0].Message)
	}
	return fmt.Sprintf("validation failed: %d errors", len(v.Errors))
}

func validationFailure(errs []models.ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationFailure{Errors: errs}
}
