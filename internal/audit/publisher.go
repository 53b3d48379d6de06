package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink consumes audit events. Implementations: in-memory store (demo
// default) and Kafka (when brokers are configured).
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher hands events to the background worker through a bounded inbox.
// Emit never blocks domain operations: when the inbox is full the event is
// dropped with a warning.
type Publisher struct {
	inbox chan<- Event
	log   *slog.Logger
}

func NewPublisher(inbox chan<- Event, log *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, log: log}
}

func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.log.WarnContext(ctx, "audit inbox full, dropping event",
			"action", string(event.Action), "subject", event.Subject)
	}
}
