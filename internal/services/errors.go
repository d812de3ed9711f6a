package services

import (
	"errors"
	"fmt"
	"strings"

	"toyshop/internal/validation"
)

// ValidationError carries the per-field violations of a rejected command.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// IdentityError carries the domain errors of a rejected registration.
type IdentityError struct {
	Messages []string
}

func (e *IdentityError) Error() string {
	return strings.Join(e.Messages, "; ")
}

var (
	// ErrUserBlocked is returned by Login once the lockout threshold is
	// reached, regardless of credential correctness.
	ErrUserBlocked = errors.New("user was blocked")

	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password; the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("user or password invalid")
)
