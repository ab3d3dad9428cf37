package screams

import (
	"errors"
	"fmt"
)

// Sentinel errors for scream operations
var (
	// ErrScreamNotFound is returned when the referenced scream doesn't exist
	ErrScreamNotFound = errors.New("scream not found")

	// ErrAlreadyLiked is returned when the caller already likes the scream
	ErrAlreadyLiked = errors.New("scream already liked")

	// ErrNotLiked is returned when unliking a scream the caller never liked
	ErrNotLiked = errors.New("scream not liked")

	// ErrNotAuthorized is returned when a caller tries to delete someone else's scream
	ErrNotAuthorized = errors.New("not authorized")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScreamNotFound)
}

// IsConflict checks if error is a like/unlike state conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyLiked) || errors.Is(err, ErrNotLiked)
}
