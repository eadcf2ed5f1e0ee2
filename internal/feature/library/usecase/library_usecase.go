package usecase

import (
	"context"
	"fmt"
	"strings"

	"library_backend/internal/feature/library/domain/entity"
)

// LibraryRepository abstracts the persistence layer for library data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type LibraryRepository interface {
	// Create persists a new library.
	Create(ctx context.Context, library *entity.Library) error

	// List returns all libraries in insertion order.
	List(ctx context.Context) ([]entity.Library, error)

	// FindByID retrieves a library by ID.
	// Returns ErrLibraryNotFound if no such library exists.
	FindByID(ctx context.Context, id uint) (*entity.Library, error)

	// Delete removes a library and all memberships referencing it.
	// Returns ErrLibraryNotFound if no such library exists.
	Delete(ctx context.Context, id uint) error
}

// LibraryUsecase provides business logic for library operations.
type LibraryUsecase struct {
	repo LibraryRepository
}

// NewLibraryUsecase creates a new LibraryUsecase with the given repository.
func NewLibraryUsecase(r LibraryRepository) *LibraryUsecase {
	return &LibraryUsecase{repo: r}
}

// CreateLibrary registers a new library after validating its attributes.
func (u *LibraryUsecase) CreateLibrary(ctx context.Context, name string, floorCount, floorArea int) (*entity.Library, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidLibrary)
	}
	if floorCount < 0 || floorArea < 0 {
		return nil, fmt.Errorf("%w: floor count and area must be non-negative", ErrInvalidLibrary)
	}

	library := &entity.Library{
		Name:       name,
		FloorCount: uint(floorCount),
		FloorArea:  uint(floorArea),
	}
	if err := u.repo.Create(ctx, library); err != nil {
		return nil, err
	}
	return library, nil
}

// ListLibraries returns all registered libraries.
func (u *LibraryUsecase) ListLibraries(ctx context.Context) ([]entity.Library, error) {
	return u.repo.List(ctx)
}

// GetLibrary returns a single library by ID.
func (u *LibraryUsecase) GetLibrary(ctx context.Context, id uint) (*entity.Library, error) {
	return u.repo.FindByID(ctx, id)
}

// DeleteLibrary removes a library. Memberships referencing it are deleted
// in the same transaction so no dangling membership rows remain.
func (u *LibraryUsecase) DeleteLibrary(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}
