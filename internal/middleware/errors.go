package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
	"github.com/SscSPs/mini_bank_api/internal/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error as the standard
// error body. Handlers report failures with c.Error and then abort or return
// without writing a response. Unexpected failures are also recorded as an
// INTERNAL_SERVER_ERROR audit event when events is non-nil. That event belongs
// to the HTTP boundary: it is emitted in addition to the single event the
// service records for its own invocation (e.g. PERSISTENCE_FAILURE), not in
// place of it.
func ErrorHandler(events ports.EventLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperrors.Classify(c.Errors.Last().Err)
		logger := GetLoggerFromCtx(c.Request.Context())
		if appErr.Kind == apperrors.KindInternalServerError {
			logger.Error("Request failed", slog.String("code", appErr.Code), slog.String("error", appErr.Error()))
			if events != nil {
				caller, _ := GetCallerFromContext(c)
				events.LogEvent(c.Request.Context(), domain.EventInternalServerError, domain.AuditEvent{
					TraceID:         GetTraceIDFromCtx(c.Request.Context()),
					ExecutionStatus: domain.ExecutionFailure,
					DurationMs:      domain.DurationMillis(time.Since(start)),
					ActorID:         caller.ActorID,
					ActorRole:       caller.Role,
					ErrorCode:       appErr.Code,
				})
			}
		} else {
			logger.Warn("Request rejected", slog.String("code", appErr.Code), slog.String("message", appErr.Message))
		}

		WriteError(c, appErr.StatusCode(), appErr.Code, appErr.Message, appErr.Details)
	}
}

// WriteError writes the standard error body and aborts the chain.
func WriteError(c *gin.Context, status int, code, message string, details map[string]any) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		TraceID: GetTraceIDFromCtx(c.Request.Context()),
		Code:    code,
		Message: message,
		Details: details,
	})
}

// Recovery turns a panic into an InternalServerError for ErrorHandler to render.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		abortWithError(c, fmt.Errorf("panic: %v", recovered))
	})
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
