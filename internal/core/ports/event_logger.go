package ports

import (
	"context"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
)

// EventLogger receives audit events. Implementations must not fail the
// caller: transport errors are handled inside the logger.
type EventLogger interface {
	LogEvent(ctx context.Context, code domain.EventCode, event domain.AuditEvent)
}
