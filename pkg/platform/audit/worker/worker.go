package worker

import (
	"context"
	"log/slog"

	audit "bankapi/pkg/platform/audit"
)

// Worker drains audit events from a channel into a store. Run returns when
// the inbox is closed and empty, or when ctx is cancelled.
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

func (w *Worker) Run(ctx context.Context) error {
	for {
		// checked first so a cancelled drain stops even with events queued
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			// a failing sink must not stall the queue
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to persist audit event",
					"error", err,
					"operation", event.Operation,
					"request_id", event.RequestID,
				)
			}
		}
	}
}
