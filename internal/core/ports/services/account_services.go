package services

import (
	"context"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// ListAccountsByCustomer returns every account owned by customerID, possibly none.
	ListAccountsByCustomer(ctx context.Context, customerID int64, caller domain.Caller) ([]dto.AccountResponse, error)

	// GetAccountByID returns one account or a NotFound error.
	GetAccountByID(ctx context.Context, accountID int64, caller domain.Caller) (*dto.AccountResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new account. ADMIN only.
	CreateAccount(ctx context.Context, input domain.CreateAccountInput, caller domain.Caller) (*dto.AccountResponse, error)

	// UpdateAccount applies a partial update. ADMIN only.
	UpdateAccount(ctx context.Context, accountID int64, patch domain.AccountPatch, caller domain.Caller) (*dto.AccountResponse, error)

	// CloseAccount sets the status to CLOSED. ADMIN only, idempotent.
	CloseAccount(ctx context.Context, accountID int64, caller domain.Caller) (*dto.AccountResponse, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
