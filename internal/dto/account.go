package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NumericID is an identifier accepted either as a JSON integer or as a
// string of decimal digits.
type NumericID int64

// NumericIDType is reported in decoding errors for NumericID fields.
var NumericIDType = reflect.TypeOf(NumericID(0))

func invalidNumericID(kind string) error {
	return &json.UnmarshalTypeError{Value: kind, Type: NumericIDType}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumericID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw, kind := string(data), "number"
	if len(data) > 0 && data[0] == '"' {
		kind = "string"
		if err := json.Unmarshal(data, &raw); err != nil {
			return invalidNumericID(kind)
		}
	}
	if !IsDigits(raw) {
		return invalidNumericID(kind)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return invalidNumericID(kind)
	}
	*n = NumericID(v)
	return nil
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	CustomerID NumericID             `json:"customer_id" binding:"required,gt=0"`
	Type       domain.AccountType    `json:"type" binding:"required,oneof=CHECKING SAVINGS"`
	Currency   string                `json:"currency" binding:"required,currency"`
	Nickname   *string               `json:"nickname" binding:"omitempty,max=100"`
	Status     *domain.AccountStatus `json:"status" binding:"omitempty,oneof=ACTIVE CLOSED"`
	Balance    *decimal.Decimal      `json:"balance" binding:"omitempty,nonnegative,balance"`
}

// ToDomain converts the validated request into the service input.
func (r CreateAccountRequest) ToDomain() domain.CreateAccountInput {
	return domain.CreateAccountInput{
		CustomerID: int64(r.CustomerID),
		Type:       r.Type,
		Currency:   domain.NormalizeCurrency(r.Currency),
		Nickname:   domain.OptionalFromPtr(r.Nickname),
		Status:     domain.OptionalFromPtr(r.Status),
		Balance:    domain.OptionalFromPtr(r.Balance),
	}
}

// PatchField is an update field that tracks presence and refuses an explicit
// JSON null.
type PatchField[T any] struct {
	Value T
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *PatchField[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return &json.UnmarshalTypeError{Value: "null", Type: reflect.TypeOf(f.Value)}
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Set = true
	return nil
}

// Optional converts the field into the domain presence wrapper.
func (f PatchField[T]) Optional() domain.Optional[T] {
	if !f.Set {
		return domain.None[T]()
	}
	return domain.Some(f.Value)
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Absent fields are left untouched; null is rejected.
type UpdateAccountRequest struct {
	Nickname PatchField[string]               `json:"nickname" binding:"omitempty,max=100" swaggertype:"string"`
	Status   PatchField[domain.AccountStatus] `json:"status" binding:"omitempty,oneof=ACTIVE CLOSED" swaggertype:"string"`
}

// ToPatch converts the request into a presence-aware patch.
func (r UpdateAccountRequest) ToPatch() domain.AccountPatch {
	return domain.AccountPatch{
		Nickname: r.Nickname.Optional(),
		Status:   r.Status.Optional(),
	}
}

// PatchFieldValue exposes a set PatchField to the validator as its value and
// an absent one as nil, so omitempty skips it.
func PatchFieldValue(field reflect.Value) any {
	switch f := field.Interface().(type) {
	case PatchField[string]:
		if f.Set {
			return f.Value
		}
	case PatchField[domain.AccountStatus]:
		if f.Set {
			return string(f.Value)
		}
	}
	return nil
}

// AccountIDParams binds the :id path parameter.
type AccountIDParams struct {
	ID string `uri:"id" binding:"required,numericid"`
}

// AccountID returns the validated identifier.
func (p AccountIDParams) AccountID() int64 {
	id, _ := strconv.ParseInt(p.ID, 10, 64)
	return id
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	CustomerID string `form:"customerId" binding:"required,numericid"`
}

// CustomerIDValue returns the validated customer identifier.
func (p ListAccountsParams) CustomerIDValue() int64 {
	id, _ := strconv.ParseInt(p.CustomerID, 10, 64)
	return id
}

// AccountResponse is the public output form of an account. Identifiers and
// amounts are decimal strings.
type AccountResponse struct {
	ID         string               `json:"id"`
	CustomerID string               `json:"customer_id"`
	Type       domain.AccountType   `json:"type"`
	Currency   string               `json:"currency"`
	Nickname   string               `json:"nickname"`
	Status     domain.AccountStatus `json:"status"`
	Balance    string               `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	nickname := ""
	if acc.Nickname != nil {
		nickname = *acc.Nickname
	}
	return AccountResponse{
		ID:         acc.IDString(),
		CustomerID: acc.CustomerIDString(),
		Type:       acc.Type,
		Currency:   acc.Currency,
		Nickname:   nickname,
		Status:     acc.Status,
		Balance:    acc.Balance.String(),
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
