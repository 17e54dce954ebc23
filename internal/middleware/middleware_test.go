package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/dto"
	"github.com/SscSPs/mini_bank_api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "middleware-test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r.Use(StructuredLoggingMiddleware(logger), ErrorHandler(nil), Recovery())
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestStructuredLoggingMiddleware_TraceID(t *testing.T) {
	r := newTestRouter()
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = GetTraceIDFromCtx(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("generates one", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		header := w.Header().Get(TraceIDHeader)
		_, err := uuid.Parse(header)
		assert.NoError(t, err)
		assert.Equal(t, header, seen)
	})

	t.Run("reuses a valid incoming id", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(TraceIDHeader, incoming)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, incoming, w.Header().Get(TraceIDHeader))
		assert.Equal(t, incoming, seen)
	})

	t.Run("replaces a malformed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(TraceIDHeader, "not a uuid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "not a uuid", w.Header().Get(TraceIDHeader))
	})
}

func TestErrorHandler_RendersTaxonomyErrors(t *testing.T) {
	r := newTestRouter()
	r.GET("/forbidden", func(c *gin.Context) {
		_ = c.Error(apperrors.Forbidden(apperrors.CodeForbidden, "Insufficient permissions", nil))
	})
	r.GET("/duplicate", func(c *gin.Context) {
		_ = c.Error(apperrors.ErrDuplicate)
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("disk on fire"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})

	cases := []struct {
		path   string
		status int
		code   string
	}{
		{"/forbidden", http.StatusForbidden, apperrors.CodeForbidden},
		{"/duplicate", http.StatusConflict, apperrors.CodeDuplicateResource},
		{"/boom", http.StatusInternalServerError, apperrors.CodeInternalServerError},
		{"/panic", http.StatusInternalServerError, apperrors.CodeInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.status, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, w.Header().Get(TraceIDHeader), body.TraceID)
		})
	}

	t.Run("original error is reported for untyped failures", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		body := decodeError(t, w)
		assert.Equal(t, "disk on fire", body.Details["originalError"])
	})
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestRouter()
	r.GET("/me", AuthMiddleware(testJWTSecret), func(c *gin.Context) {
		caller, ok := GetCallerFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": caller.ActorID, "role": caller.Role})
	})

	validToken, err := utils.GenerateJWT("17", domain.RoleStandard, testJWTSecret, time.Hour, "test")
	require.NoError(t, err)
	expiredToken, err := utils.GenerateJWT("17", domain.RoleStandard, testJWTSecret, -time.Hour, "test")
	require.NoError(t, err)
	foreignToken, err := utils.GenerateJWT("17", domain.RoleAdmin, "another-secret", time.Hour, "test")
	require.NoError(t, err)

	t.Run("valid token exposes the caller", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"17","role":"STANDARD"}`, w.Body.String())
	})

	rejected := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + validToken,
		"no token":       "Bearer ",
		"expired":        "Bearer " + expiredToken,
		"bad signature":  "Bearer " + foreignToken,
		"garbage":        "Bearer abc.def.ghi",
	}
	for name, header := range rejected {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, apperrors.CodeInvalidToken, body.Code)
			assert.Equal(t, "Authentication failed", body.Message)
		})
	}
}

func TestRateLimit(t *testing.T) {
	lim, err := NewIPLimiter("2-M")
	require.NoError(t, err)

	r := newTestRouter()
	r.POST("/login", RateLimit(lim), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, apperrors.CodeTooManyRequests, decodeError(t, w).Code)
}

func TestNewIPLimiter_InvalidRate(t *testing.T) {
	_, err := NewIPLimiter("lots")
	assert.Error(t, err)
}

type capturedEvent struct {
	code  domain.EventCode
	event domain.AuditEvent
}

type captureEvents struct {
	events []capturedEvent
}

func (c *captureEvents) LogEvent(_ context.Context, code domain.EventCode, event domain.AuditEvent) {
	c.events = append(c.events, capturedEvent{code: code, event: event})
}

func TestErrorHandler_RecordsInternalFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sink := &captureEvents{}
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))), ErrorHandler(sink), Recovery())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("disk on fire"))
	})
	r.GET("/forbidden", func(c *gin.Context) {
		_ = c.Error(apperrors.Forbidden(apperrors.CodeForbidden, "Insufficient permissions", nil))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/forbidden", nil))
	assert.Empty(t, sink.events)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Len(t, sink.events, 1)
	got := sink.events[0]
	assert.Equal(t, domain.EventInternalServerError, got.code)
	assert.Equal(t, domain.ExecutionFailure, got.event.ExecutionStatus)
	assert.Equal(t, apperrors.CodeInternalServerError, got.event.ErrorCode)
	assert.Equal(t, w.Header().Get(TraceIDHeader), got.event.TraceID)
}

func TestErrorHandler_BoundaryEventFollowsServiceEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sink := &captureEvents{}
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))), ErrorHandler(sink), Recovery())
	r.GET("/store-down", func(c *gin.Context) {
		sink.LogEvent(c.Request.Context(), domain.EventPersistenceFailure, domain.AuditEvent{
			ExecutionStatus: domain.ExecutionFailure,
			ErrorCode:       string(domain.EventPersistenceFailure),
		})
		_ = c.Error(errors.New("connection refused"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/store-down", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, sink.events, 2)
	assert.Equal(t, domain.EventPersistenceFailure, sink.events[0].code)
	assert.Equal(t, domain.EventInternalServerError, sink.events[1].code)
}
