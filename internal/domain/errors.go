// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")

	// Access errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactivePrincipal  = errors.New("inactive principal")

	// Directory errors
	ErrBranchNotFound     = fmt.Errorf("branch %w", ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email already registered: %w", ErrConflict)
)

// BranchNotFoundError identifies the branch ID that failed a lookup.
type BranchNotFoundError struct {
	BranchID int
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch with ID %d not found", e.BranchID)
}

func (e *BranchNotFoundError) Unwrap() error {
	return ErrBranchNotFound
}

// ValidationError lists the request fields that failed schema validation.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Details, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
