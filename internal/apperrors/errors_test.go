package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindBadRequest:          http.StatusBadRequest,
		KindUnauthorized:        http.StatusUnauthorized,
		KindForbidden:           http.StatusForbidden,
		KindNotFound:            http.StatusNotFound,
		KindConflict:            http.StatusConflict,
		KindInternalServerError: http.StatusInternalServerError,
		Kind("Teapot"):          http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.Status(), kind)
	}
}

func TestInternalServerError_DefaultMessage(t *testing.T) {
	err := InternalServerError("", nil)
	assert.Equal(t, "Something went wrong", err.Message)
	assert.Equal(t, CodeInternalServerError, err.Code)
}

func TestClassify(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, Classify(nil))
	})

	t.Run("typed errors pass through wrapping", func(t *testing.T) {
		forbidden := Forbidden(CodeForbidden, "Insufficient permissions", map[string]any{"operation": "account.create"})
		got := Classify(fmt.Errorf("create: %w", forbidden))
		assert.Same(t, forbidden, got)
	})

	t.Run("duplicate becomes conflict", func(t *testing.T) {
		got := Classify(fmt.Errorf("save account: %w", ErrDuplicate))
		require.NotNil(t, got)
		assert.Equal(t, KindConflict, got.Kind)
		assert.Equal(t, CodeDuplicateResource, got.Code)
		assert.Contains(t, got.Details["originalError"], "resource already exists")
		assert.ErrorIs(t, got, ErrDuplicate)
	})

	t.Run("unknown becomes internal with original message", func(t *testing.T) {
		cause := errors.New("connection reset by peer")
		got := Classify(cause)
		assert.Equal(t, KindInternalServerError, got.Kind)
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode())
		assert.Equal(t, "connection reset by peer", got.Details["originalError"])
		assert.ErrorIs(t, got, cause)
	})
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound(CodeAccountNotFound, "Account not found", nil))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}
