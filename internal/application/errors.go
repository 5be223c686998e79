package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/clubhouse/pkg/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient privileges")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrValidationFailed   = errors.New("validation failed")
	ErrMessageNotFound    = errors.New("message not found")
	ErrHashFailed         = errors.New("password hashing failed")
)

// ValidationError carries every field problem found in one request.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// storeError wraps a raw store failure so callers can match ErrStoreUnavailable
// while the cause stays inspectable.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
