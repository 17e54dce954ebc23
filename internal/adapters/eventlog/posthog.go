package eventlog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
	"github.com/SscSPs/mini_bank_api/internal/middleware"
)

// anonymousDistinctID is used for events without an authenticated actor.
const anonymousDistinctID = "anonymous"

// Enqueuer is satisfied by utils.PosthogClientWrapper.
type Enqueuer interface {
	Enqueue(distinctID string, event string, properties map[string]any) error
}

// PosthogLogger captures audit events as PostHog events keyed by actor.
type PosthogLogger struct {
	client Enqueuer
}

func NewPosthogLogger(client Enqueuer) *PosthogLogger {
	return &PosthogLogger{client: client}
}

var _ ports.EventLogger = (*PosthogLogger)(nil)

func (l *PosthogLogger) LogEvent(ctx context.Context, code domain.EventCode, event domain.AuditEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)

	props, err := eventProperties(event)
	if err != nil {
		logger.Error("Failed to build audit event properties", slog.String("event_code", string(code)), slog.String("error", err.Error()))
		return
	}

	distinctID := event.ActorID
	if distinctID == "" {
		distinctID = anonymousDistinctID
	}
	if err := l.client.Enqueue(distinctID, string(code), props); err != nil {
		logger.Warn("Failed to enqueue audit event", slog.String("event_code", string(code)), slog.String("error", err.Error()))
	}
}

// eventProperties flattens the event into the property map PostHog expects,
// using the same field names as the JSON form.
func eventProperties(event domain.AuditEvent) (map[string]any, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	props := map[string]any{}
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, err
	}
	return props, nil
}
