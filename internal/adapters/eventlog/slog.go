package eventlog

import (
	"context"
	"log/slog"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
	"github.com/SscSPs/mini_bank_api/internal/middleware"
)

// SlogLogger writes audit events as structured log records through the
// request-scoped logger, falling back to its own.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates an audit sink on top of logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

var _ ports.EventLogger = (*SlogLogger)(nil)

func (l *SlogLogger) LogEvent(ctx context.Context, code domain.EventCode, event domain.AuditEvent) {
	logger := l.logger
	if ctxLogger := middleware.GetLoggerFromCtx(ctx); ctxLogger != slog.Default() {
		logger = ctxLogger
	}

	level := slog.LevelInfo
	if event.ExecutionStatus == domain.ExecutionFailure {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("event_code", string(code)),
		slog.String("trace_id", event.TraceID),
		slog.String("execution_status", string(event.ExecutionStatus)),
		slog.Float64("duration_ms", event.DurationMs),
		slog.String("actor_id", event.ActorID),
		slog.String("actor_role", string(event.ActorRole)),
	}
	if event.ErrorCode != "" {
		attrs = append(attrs, slog.String("error_code", event.ErrorCode))
	}
	if event.Payload != nil {
		attrs = append(attrs, slog.Any("payload", event.Payload))
	}
	logger.LogAttrs(ctx, level, "audit event", attrs...)
}
