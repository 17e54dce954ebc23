package eventlog

import (
	"context"

	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/core/ports"
)

// Fanout forwards each event to every sink in order.
type Fanout struct {
	sinks []ports.EventLogger
}

// NewFanout drops nil sinks.
func NewFanout(sinks ...ports.EventLogger) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

var _ ports.EventLogger = (*Fanout)(nil)

func (f *Fanout) LogEvent(ctx context.Context, code domain.EventCode, event domain.AuditEvent) {
	for _, s := range f.sinks {
		s.LogEvent(ctx, code, event)
	}
}
