package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
	"github.com/SscSPs/mini_bank_api/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	EventLogger ports.EventLogger
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RecordEvent emits the audit event of one invocation that began at start.
// A non-empty errorCode marks the invocation as failed.
func (s *BaseService) RecordEvent(ctx context.Context, code domain.EventCode, start time.Time, actor domain.Caller, errorCode string, payload domain.EventPayload) {
	if s.EventLogger == nil {
		return
	}
	status := domain.ExecutionSuccess
	if errorCode != "" {
		status = domain.ExecutionFailure
	}
	s.EventLogger.LogEvent(ctx, code, domain.AuditEvent{
		TraceID:         middleware.GetTraceIDFromCtx(ctx),
		ExecutionStatus: status,
		DurationMs:      domain.DurationMillis(time.Since(start)),
		ActorID:         actor.ActorID,
		ActorRole:       actor.Role,
		ErrorCode:       errorCode,
		Payload:         payload,
	})
}
