package services

import (
	"slices"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
)

// Operation names an authorizable service operation.
type Operation string

const (
	OpCreateAccount Operation = "account.create"
	OpListAccounts  Operation = "account.list"
	OpGetAccount    Operation = "account.get"
	OpUpdateAccount Operation = "account.update"
	OpCloseAccount  Operation = "account.close"
)

var anyRole = []domain.Role{domain.RoleAdmin, domain.RoleStandard}

// accountPolicy lists the roles allowed to run each operation. Operations
// missing from the map are denied.
var accountPolicy = map[Operation][]domain.Role{
	OpCreateAccount: {domain.RoleAdmin},
	OpListAccounts:  anyRole,
	OpGetAccount:    anyRole,
	OpUpdateAccount: {domain.RoleAdmin},
	OpCloseAccount:  {domain.RoleAdmin},
}

// Authorize returns a Forbidden error unless role may run op.
func Authorize(op Operation, role domain.Role) error {
	if slices.Contains(accountPolicy[op], role) {
		return nil
	}
	return apperrors.Forbidden(apperrors.CodeForbidden, "Insufficient permissions", map[string]any{
		"operation": string(op),
	})
}
