// Package usecase implements the business logic for the membership feature.
package usecase

import "errors"

var (
	// ErrAlreadyJoined is returned when the user already has a membership in the library.
	ErrAlreadyJoined = errors.New("already a member of this library")

	// ErrMembershipNotFound is returned when no membership exists for the (user, library) pair.
	ErrMembershipNotFound = errors.New("membership not found")
)
