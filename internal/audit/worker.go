package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the inbox and hands them to the sink. It
// keeps background processing testable without wiring queue implementations.
type Worker struct {
	sink  Sink
	inbox <-chan Event
	log   *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, log *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, log: log}
}

// Run processes events until ctx is canceled. Sink failures are logged, not
// fatal: the audit trail is best effort in this system.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.log.WarnContext(ctx, "audit sink append failed",
					"action", string(event.Action), "error", err)
			}
		}
	}
}
