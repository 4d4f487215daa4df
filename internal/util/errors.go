package util

import "errors"

// Sentinel errors for catalog failure modes
var (
	// ErrNotFound indicates no row matched the requested key
	ErrNotFound = errors.New("not found")

	// ErrConstraint indicates the store rejected a write because of a constraint
	ErrConstraint = errors.New("constraint violation")

	// ErrConnection indicates the store could not be reached or used
	ErrConnection = errors.New("connection error")

	// ErrInvalidInput indicates a record failed validation before reaching the store
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
