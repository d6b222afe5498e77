package session

import (
	"errors"

	"sheep-dashboard/internal/domain/catalog"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidDemoKind    = errors.New("invalid demo account type")
	ErrDemoDisabled       = errors.New("demo accounts are disabled")
)

// LoginError es lo que ve el usuario tras un login fallido.
// Error() siempre es el mensaje genérico; la causa real queda en Unwrap.
type LoginError struct {
	Cause error
}

func (e *LoginError) Error() string { return ErrInvalidCredentials.Error() }

func (e *LoginError) Unwrap() error { return e.Cause }

func (e *LoginError) Is(target error) bool { return target == ErrInvalidCredentials }

func invalid(field, msg string) error {
	return &catalog.ValidationError{Field: field, Message: msg}
}
