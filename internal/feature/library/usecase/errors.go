// Package usecase implements the business logic for library operations.
package usecase

import "errors"

var (
	// ErrLibraryNotFound is returned when a library cannot be found by ID.
	ErrLibraryNotFound = errors.New("library not found")

	// ErrInvalidLibrary is returned when library attributes fail validation.
	ErrInvalidLibrary = errors.New("invalid library")
)
