package mapping

import (
	"strings"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		ID:          d.ID,
		CustomerID:  d.CustomerID,
		Type:        string(d.Type),
		Currency:    d.Currency,
		Nickname:    d.Nickname,
		Status:      string(d.Status),
		Balance:     d.Balance,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Type:       domain.AccountType(m.Type),
		// CHAR(3) columns may come back space padded.
		Currency:    strings.TrimSpace(m.Currency),
		Nickname:    m.Nickname,
		Status:      domain.AccountStatus(m.Status),
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
