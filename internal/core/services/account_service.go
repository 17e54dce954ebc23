package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
	portsrepo "github.com/SscSPs/mini_bank_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mini_bank_api/internal/core/ports/services"
	"github.com/SscSPs/mini_bank_api/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithEventLogger sets the audit event sink.
func WithEventLogger(logger ports.EventLogger) ServiceOption {
	return func(s *accountService) {
		s.EventLogger = logger
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, input domain.CreateAccountInput, caller domain.Caller) (*dto.AccountResponse, error) {
	start := time.Now()

	if err := Authorize(OpCreateAccount, caller.Role); err != nil {
		s.LogInfo(ctx, "Account creation denied", slog.String("role", string(caller.Role)))
		s.recordFailure(ctx, start, caller, err, customerFailurePayload(input))
		return nil, err
	}

	saved, err := s.accountRepo.SaveAccount(ctx, input.NewAccount())
	if err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.Int64("customer_id", input.CustomerID))
		s.recordFailure(ctx, start, caller, err, customerFailurePayload(input))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.Int64("account_id", saved.ID),
		slog.Int64("customer_id", saved.CustomerID))
	s.RecordEvent(ctx, domain.EventAccountCreated, start, caller, "",
		domain.SingleAccountPayload{Account: domain.SummarizeAccount(*saved)})

	out := dto.ToAccountResponse(saved)
	return &out, nil
}

func (s *accountService) ListAccountsByCustomer(ctx context.Context, customerID int64, caller domain.Caller) ([]dto.AccountResponse, error) {
	start := time.Now()
	failure := domain.CustomerFailurePayload{CustomerID: strconv.FormatInt(customerID, 10)}

	if err := Authorize(OpListAccounts, caller.Role); err != nil {
		s.recordFailure(ctx, start, caller, err, failure)
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccountsByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int64("customer_id", customerID))
		s.recordFailure(ctx, start, caller, err, failure)
		return nil, err
	}

	s.LogDebug(ctx, "Accounts listed", slog.Int64("customer_id", customerID), slog.Int("count", len(accounts)))
	s.RecordEvent(ctx, domain.EventAccountFetched, start, caller, "",
		domain.AccountListPayload{Accounts: summarizeAccounts(accounts)})

	return dto.ToListAccountResponse(accounts), nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64, caller domain.Caller) (*dto.AccountResponse, error) {
	start := time.Now()
	failure := domain.AccountFailurePayload{AccountID: strconv.FormatInt(accountID, 10)}

	if err := Authorize(OpGetAccount, caller.Role); err != nil {
		s.recordFailure(ctx, start, caller, err, failure)
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = accountNotFound(accountID, err)
		} else {
			s.LogError(ctx, err, "Failed to find account", slog.Int64("account_id", accountID))
		}
		s.recordFailure(ctx, start, caller, err, failure)
		return nil, err
	}

	s.RecordEvent(ctx, domain.EventAccountFetched, start, caller, "",
		domain.SingleAccountPayload{Account: domain.SummarizeAccount(*account)})

	out := dto.ToAccountResponse(account)
	return &out, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, patch domain.AccountPatch, caller domain.Caller) (*dto.AccountResponse, error) {
	return s.applyPatch(ctx, OpUpdateAccount, domain.EventAccountUpdated, accountID, patch, caller)
}

// CloseAccount is an update restricted to status CLOSED. Closing a closed
// account succeeds and returns it unchanged.
func (s *accountService) CloseAccount(ctx context.Context, accountID int64, caller domain.Caller) (*dto.AccountResponse, error) {
	return s.applyPatch(ctx, OpCloseAccount, domain.EventAccountClosed, accountID, domain.ClosePatch(), caller)
}

func (s *accountService) applyPatch(ctx context.Context, op Operation, successCode domain.EventCode, accountID int64, patch domain.AccountPatch, caller domain.Caller) (*dto.AccountResponse, error) {
	start := time.Now()

	if err := Authorize(op, caller.Role); err != nil {
		s.LogInfo(ctx, "Account update denied",
			slog.String("operation", string(op)),
			slog.String("role", string(caller.Role)))
		s.recordFailure(ctx, start, caller, err, accountFailurePayload(accountID, patch))
		return nil, err
	}

	updated, err := s.accountRepo.UpdateAccount(ctx, accountID, patch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = accountNotFound(accountID, err)
		} else {
			s.LogError(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		}
		s.recordFailure(ctx, start, caller, err, accountFailurePayload(accountID, patch))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.Int64("account_id", updated.ID),
		slog.String("operation", string(op)),
		slog.String("status", string(updated.Status)))
	s.RecordEvent(ctx, successCode, start, caller, "",
		domain.SingleAccountPayload{Account: domain.SummarizeAccount(*updated)})

	out := dto.ToAccountResponse(updated)
	return &out, nil
}

func (s *accountService) recordFailure(ctx context.Context, start time.Time, caller domain.Caller, err error, payload domain.EventPayload) {
	code, errorCode := failureEventCode(err)
	s.RecordEvent(ctx, code, start, caller, errorCode, payload)
}
