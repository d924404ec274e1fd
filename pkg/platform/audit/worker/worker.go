package worker

import (
	"context"
	"log/slog"

	audit "campuspass/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them. A failed
// append is logged and the loop carries on; audit never blocks verification.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run appends events until the inbox is closed, then returns nil.
// Once ctx is cancelled the remaining events are still drained with a
// background context so Close loses nothing already accepted.
func (w *Worker) Run(ctx context.Context) error {
	for event := range w.inbox {
		appendCtx := ctx
		if ctx.Err() != nil {
			appendCtx = context.WithoutCancel(ctx)
		}
		if err := w.store.Append(appendCtx, event); err != nil {
			w.logger.ErrorContext(appendCtx, "failed to persist audit event",
				"action", event.Action,
				"error", err,
			)
		}
	}
	return nil
}
