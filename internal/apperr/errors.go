// Package apperr defines the sentinel errors shared across Verdant layers.
package apperr

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist or is not owned
	// by the acting user.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a uniqueness constraint cannot be satisfied
	// even after slug probing.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable is returned when the backing store fails.
	ErrUnavailable = errors.New("store unavailable")
)
