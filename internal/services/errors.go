package services

import (
	"github.com/pkg/errors"

	"geodata-service/internal/repository"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidPage = errors.New("invalid page")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotStaff           = errors.New("admin privileges required")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

// ValidationError is bad client input attributed to one request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// notFound maps repository misses onto ErrNotFound and leaves other errors as they are.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
