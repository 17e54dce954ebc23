package repositories

import (
	"context"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by its identifier.
	// Returns apperrors.ErrNotFound when no row matches.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccountsByCustomer retrieves every account owned by a customer.
	// An empty result is not an error.
	ListAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts a new account and returns the stored row.
	// Returns apperrors.ErrDuplicate on a unique violation.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// UpdateAccount applies a partial update to a single row and returns it.
	// Returns apperrors.ErrNotFound when no row matches.
	UpdateAccount(ctx context.Context, accountID int64, patch domain.AccountPatch) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
