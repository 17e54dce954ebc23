package repositories

import (
	"context"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByUsername retrieves a user by username.
	// Returns apperrors.ErrNotFound when no row matches.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser inserts a new user and returns the stored row.
	// Returns apperrors.ErrDuplicate when the username is taken.
	SaveUser(ctx context.Context, user domain.User) (*domain.User, error)

	// EnsureUser inserts the user unless the username already exists.
	// It reports whether a row was created.
	EnsureUser(ctx context.Context, user domain.User) (bool, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
