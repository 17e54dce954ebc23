package dto

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericID_UnmarshalJSON(t *testing.T) {
	accepted := map[string]NumericID{`42`: 42, `"42"`: 42, `"007"`: 7}
	for raw, want := range accepted {
		var req struct {
			ID NumericID `json:"customer_id"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"customer_id":`+raw+`}`), &req), raw)
		assert.Equal(t, want, req.ID)
	}

	for _, raw := range []string{`"abc"`, `-1`, `1.5`, `"12a"`, `""`, `true`} {
		var req struct {
			ID NumericID `json:"customer_id"`
		}
		err := json.Unmarshal([]byte(`{"customer_id":`+raw+`}`), &req)
		var typeErr *json.UnmarshalTypeError
		require.ErrorAs(t, err, &typeErr, raw)
		assert.Equal(t, "customer_id", typeErr.Field)
	}
}

func TestCreateAccountRequest_ToDomain(t *testing.T) {
	nickname := "main"
	req := CreateAccountRequest{CustomerID: 3, Type: domain.Checking, Currency: "gbp", Nickname: &nickname}

	in := req.ToDomain()
	assert.Equal(t, int64(3), in.CustomerID)
	assert.Equal(t, "GBP", in.Currency)
	assert.Equal(t, "main", in.Nickname.OrElse(""))
	assert.False(t, in.Status.IsSet())
	assert.False(t, in.Balance.IsSet())
}

func TestUpdateAccountRequest_ToPatch(t *testing.T) {
	var req UpdateAccountRequest
	require.NoError(t, json.Unmarshal([]byte(`{"nickname":""}`), &req))

	patch := req.ToPatch()
	assert.False(t, patch.IsEmpty())
	assert.Equal(t, "", patch.Nickname.OrElse("unset"))
	assert.False(t, patch.Status.IsSet())
}

func TestUpdateAccountRequest_RejectsNull(t *testing.T) {
	for _, body := range []string{`{"nickname":null,"status":"CLOSED"}`, `{"status":null}`} {
		var req UpdateAccountRequest
		err := json.Unmarshal([]byte(body), &req)

		var typeErr *json.UnmarshalTypeError
		require.ErrorAs(t, err, &typeErr, body)
		assert.Equal(t, "null", typeErr.Value)
		assert.NotEmpty(t, typeErr.Field)
	}
}

func TestPatchFieldValue(t *testing.T) {
	var req UpdateAccountRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"CLOSED"}`), &req))

	assert.Nil(t, PatchFieldValue(reflect.ValueOf(req.Nickname)))
	assert.Equal(t, "CLOSED", PatchFieldValue(reflect.ValueOf(req.Status)))
}

func TestToAccountResponse(t *testing.T) {
	acc := domain.Account{ID: 1, CustomerID: 42, Type: domain.Savings, Currency: "USD",
		Status: domain.StatusActive, Balance: decimal.RequireFromString("100.50")}

	res := ToAccountResponse(&acc)
	assert.Equal(t, AccountResponse{ID: "1", CustomerID: "42", Type: domain.Savings, Currency: "USD",
		Status: domain.StatusActive, Balance: "100.5"}, res)

	assert.NotNil(t, ToListAccountResponse(nil))
	assert.Empty(t, ToListAccountResponse(nil))
}

func TestParams(t *testing.T) {
	assert.Equal(t, int64(15), AccountIDParams{ID: "15"}.AccountID())
	assert.Equal(t, int64(42), ListAccountsParams{CustomerID: "42"}.CustomerIDValue())
	assert.True(t, IsDigits("0123"))
	assert.False(t, IsDigits("-1"))
}
