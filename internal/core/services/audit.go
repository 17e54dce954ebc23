package services

import (
	"errors"
	"strconv"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
)

// errorCodePersistenceFailure tags audit events for store errors passed
// through unclassified.
const errorCodePersistenceFailure = string(domain.EventPersistenceFailure)

// failureEventCode picks the event and error code recorded for a failed
// account operation.
func failureEventCode(err error) (domain.EventCode, string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch {
		case appErr.Kind == apperrors.KindForbidden:
			return domain.EventForbidden, appErr.Code
		case appErr.Kind == apperrors.KindNotFound && appErr.Code == apperrors.CodeAccountNotFound:
			return domain.EventAccountNotFound, appErr.Code
		}
	}
	return domain.EventPersistenceFailure, errorCodePersistenceFailure
}

func accountNotFound(accountID int64, cause error) *apperrors.AppError {
	nf := apperrors.NotFound(apperrors.CodeAccountNotFound, "Account not found", map[string]any{
		"id": strconv.FormatInt(accountID, 10),
	})
	nf.Err = cause
	return nf
}

func customerFailurePayload(in domain.CreateAccountInput) domain.CustomerFailurePayload {
	return domain.CustomerFailurePayload{
		CustomerID:    strconv.FormatInt(in.CustomerID, 10),
		AccountType:   in.Type,
		Currency:      domain.NormalizeCurrency(in.Currency),
		AccountStatus: in.Status.OrElse(""),
	}
}

func accountFailurePayload(accountID int64, patch domain.AccountPatch) domain.AccountFailurePayload {
	return domain.AccountFailurePayload{
		AccountID:     strconv.FormatInt(accountID, 10),
		Nickname:      patch.Nickname.Ptr(),
		AccountStatus: patch.Status.Ptr(),
	}
}

func summarizeAccounts(accounts []domain.Account) []domain.AccountSummary {
	summaries := make([]domain.AccountSummary, len(accounts))
	for i := range accounts {
		summaries[i] = domain.SummarizeAccount(accounts[i])
	}
	return summaries
}
