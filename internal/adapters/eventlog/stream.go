package eventlog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
	"github.com/SscSPs/mini_bank_api/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// DefaultStream is the Redis stream audit events are appended to.
const DefaultStream = "account.audit"

// DefaultPublishTimeout bounds a single XADD.
const DefaultPublishTimeout = 500 * time.Millisecond

// StreamAdder is the part of the go-redis client the stream sink needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamLogger appends every audit event to a Redis stream.
type StreamLogger struct {
	client StreamAdder
	stream  string
	maxLen  int64
	timeout time.Duration
}

// StreamOption configures a StreamLogger.
type StreamOption func(*StreamLogger)

// WithMaxLen caps the stream at roughly n entries.
func WithMaxLen(n int64) StreamOption {
	return func(l *StreamLogger) {
		l.maxLen = n
	}
}

// WithPublishTimeout bounds each publish to d.
func WithPublishTimeout(d time.Duration) StreamOption {
	return func(l *StreamLogger) {
		l.timeout = d
	}
}

// NewStreamLogger creates a stream sink. An empty stream name selects DefaultStream.
func NewStreamLogger(client StreamAdder, stream string, opts ...StreamOption) *StreamLogger {
	if stream == "" {
		stream = DefaultStream
	}
	l := &StreamLogger{client: client, stream: stream, timeout: DefaultPublishTimeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.EventLogger = (*StreamLogger)(nil)

func (l *StreamLogger) LogEvent(ctx context.Context, code domain.EventCode, event domain.AuditEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)

	eventJSON, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal audit event", slog.String("event_code", string(code)), slog.String("error", err.Error()))
		return
	}

	args := &redis.XAddArgs{
		Stream: l.stream,
		Values: map[string]any{
			"eventCode": string(code),
			"traceId":   event.TraceID,
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
			"event":     string(eventJSON),
		},
	}
	if l.maxLen > 0 {
		args.MaxLen = l.maxLen
		args.Approx = true
	}

	// Detached from request cancellation; bounded by the publish timeout.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	if err := l.client.XAdd(pubCtx, args).Err(); err != nil {
		logger.Warn("Failed to publish audit event",
			slog.String("stream", l.stream),
			slog.String("event_code", string(code)),
			slog.String("error", err.Error()))
	}
}
