package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrInvalidID        = errors.New("invalid id")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrMediaResolution  = errors.New("image could not be resolved")
)

// ErrMissingImage is returned when neither an uploaded file nor a link was supplied.
// It matches both ErrValidation and ErrMediaResolution.
var ErrMissingImage error = missingImageError{}

type missingImageError struct{}

func (missingImageError) Error() string {
	return "an image file or image link is required"
}

func (missingImageError) Is(target error) bool {
	return target == ErrValidation || target == ErrMediaResolution
}

// ValidationError reports a bad field value
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
