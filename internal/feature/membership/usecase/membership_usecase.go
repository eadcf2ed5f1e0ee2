package usecase

import (
	"context"

	authentity "library_backend/internal/feature/auth/domain/entity"
	libraryentity "library_backend/internal/feature/library/domain/entity"
	"library_backend/internal/feature/membership/domain/entity"
)

// MembershipRepository abstracts the persistence layer for membership records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MembershipRepository interface {
	// Create persists a new membership.
	// Returns ErrAlreadyJoined if the (user, library) pair already exists.
	Create(ctx context.Context, membership *entity.Membership) error

	// Delete removes the membership for the (user, library) pair.
	// Returns ErrMembershipNotFound if no such membership exists.
	Delete(ctx context.Context, userID, libraryID uint) error

	// Exists reports whether a membership exists for the (user, library) pair.
	Exists(ctx context.Context, userID, libraryID uint) (bool, error)

	// ListLibrariesByUserID returns all libraries the user has joined.
	ListLibrariesByUserID(ctx context.Context, userID uint) ([]libraryentity.Library, error)

	// ListUsersByLibraryID returns all users who joined the library.
	ListUsersByLibraryID(ctx context.Context, libraryID uint) ([]authentity.User, error)
}

// UserFinder resolves user IDs to user records.
// Implemented by the auth feature's user repository; lookups are explicit so
// membership operations fail with NotFound on dangling references.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// LibraryFinder resolves library IDs to library records.
type LibraryFinder interface {
	FindByID(ctx context.Context, id uint) (*libraryentity.Library, error)
}

// MembershipUsecase provides business logic for joining and leaving libraries.
type MembershipUsecase struct {
	memberships MembershipRepository
	users       UserFinder
	libraries   LibraryFinder
}

// NewMembershipUsecase creates a new MembershipUsecase.
func NewMembershipUsecase(memberships MembershipRepository, users UserFinder, libraries LibraryFinder) *MembershipUsecase {
	return &MembershipUsecase{
		memberships: memberships,
		users:       users,
		libraries:   libraries,
	}
}

// Join creates a membership linking the user to the library.
// Both references are validated first: a nonexistent user or library
// surfaces as the finder's NotFound error. A duplicate pair returns
// ErrAlreadyJoined; the unique index backstops concurrent joins.
func (u *MembershipUsecase) Join(ctx context.Context, userID, libraryID uint) (*entity.Membership, error) {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := u.libraries.FindByID(ctx, libraryID); err != nil {
		return nil, err
	}

	exists, err := u.memberships.Exists(ctx, userID, libraryID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyJoined
	}

	membership := &entity.Membership{UserID: userID, LibraryID: libraryID}
	if err := u.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// Leave removes the user's membership in the library.
func (u *MembershipUsecase) Leave(ctx context.Context, userID, libraryID uint) error {
	return u.memberships.Delete(ctx, userID, libraryID)
}

// ListLibraries returns all libraries the user has joined.
// Returns the user finder's NotFound error for a nonexistent user.
func (u *MembershipUsecase) ListLibraries(ctx context.Context, userID uint) ([]libraryentity.Library, error) {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return u.memberships.ListLibrariesByUserID(ctx, userID)
}

// ListMembers returns all users who joined the library.
// Returns the library finder's NotFound error for a nonexistent library.
func (u *MembershipUsecase) ListMembers(ctx context.Context, libraryID uint) ([]authentity.User, error) {
	if _, err := u.libraries.FindByID(ctx, libraryID); err != nil {
		return nil, err
	}
	return u.memberships.ListUsersByLibraryID(ctx, libraryID)
}
