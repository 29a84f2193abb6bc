package usecase

import (
	"errors"
	"fmt"
)

// Sentinel errors the handlers map to HTTP status codes. Services wrap
// these with context via fmt.Errorf("%w: ...").
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInsufficientStock  = errors.New("insufficient stock")

	// ErrUserExists is the registration-conflict case; it satisfies
	// errors.Is against ErrConflict but gets its own response body.
	ErrUserExists = fmt.Errorf("%w: user already exists", ErrConflict)
)
