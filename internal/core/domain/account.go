package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType is the product type of an account. Fixed at creation.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == Checking || t == Savings
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive AccountStatus = "ACTIVE"
	StatusClosed AccountStatus = "CLOSED"
)

// Valid reports whether s is a known status.
func (s AccountStatus) Valid() bool {
	return s == StatusActive || s == StatusClosed
}

// Account is a customer-owned monetary container.
// CustomerID, Type and Currency never change after creation; Status only
// moves from ACTIVE to CLOSED.
type Account struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customerId"`
	Type       AccountType     `json:"type"`
	Currency   string          `json:"currency"`
	Nickname   *string         `json:"nickname,omitempty"`
	Status     AccountStatus   `json:"status"`
	Balance    decimal.Decimal `json:"balance"`
	AuditFields
}

// IDString renders the identifier as a decimal string.
func (a Account) IDString() string {
	return strconv.FormatInt(a.ID, 10)
}

// CustomerIDString renders the customer identifier as a decimal string.
func (a Account) CustomerIDString() string {
	return strconv.FormatInt(a.CustomerID, 10)
}

// CreateAccountInput is the validated input for opening an account.
type CreateAccountInput struct {
	CustomerID int64
	Type       AccountType
	Currency   string
	Nickname   Optional[string]
	Status     Optional[AccountStatus]
	Balance    Optional[decimal.Decimal]
}

// NewAccount applies creation defaults: currency upper-cased, status ACTIVE
// and balance zero unless supplied.
func (in CreateAccountInput) NewAccount() Account {
	return Account{
		CustomerID: in.CustomerID,
		Type:       in.Type,
		Currency:   NormalizeCurrency(in.Currency),
		Nickname:   in.Nickname.Ptr(),
		Status:     in.Status.OrElse(StatusActive),
		Balance:    in.Balance.OrElse(decimal.Zero),
	}
}

// AccountPatch is a partial update. Absent fields are left untouched.
type AccountPatch struct {
	Nickname Optional[string]
	Status   Optional[AccountStatus]
}

// IsEmpty reports whether no field was supplied.
func (p AccountPatch) IsEmpty() bool {
	return !p.Nickname.IsSet() && !p.Status.IsSet()
}

// ClosePatch is the patch applied by closing an account.
func ClosePatch() AccountPatch {
	return AccountPatch{Status: Some(StatusClosed)}
}

// Balance storage limits: NUMERIC(19,4) holds at most 15 integer digits and
// 4 decimal places.
const (
	BalanceScale         = 4
	BalanceIntegerDigits = 15
)

var maxBalanceExclusive = decimal.New(1, BalanceIntegerDigits)

// BalanceFits reports whether d can be stored without rounding or overflow.
func BalanceFits(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(BalanceScale)) && d.Abs().LessThan(maxBalanceExclusive)
}

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
