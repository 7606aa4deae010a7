package verify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/savageaim/backend/internal/taskqueue"
)

// Worker consumes the verification queue and runs each task through the
// Service. Task failures are logged, never surfaced to the original caller.
type Worker struct {
	queue      *taskqueue.Queue
	service    *Service
	popTimeout time.Duration
}

// NewWorker creates a Worker over the given queue and service.
func NewWorker(queue *taskqueue.Queue, service *Service) *Worker {
	return &Worker{
		queue:      queue,
		service:    service,
		popTimeout: 1 * time.Second,
	}
}

// Start begins the consume loop. It blocks until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("verification worker started")

	for {
		if ctx.Err() != nil {
			slog.Info("verification worker stopped")
			return
		}

		task, raw, err := w.queue.Pop(ctx, w.popTimeout)
		if err != nil {
			if errors.Is(err, taskqueue.ErrNoTask) || ctx.Err() != nil {
				continue
			}
			slog.Error("worker: failed to pop task", "error", err)
			continue
		}

		if err := w.service.Process(ctx, task.CharacterID); err != nil {
			slog.Error("worker: verification task failed",
				"characterId", task.CharacterID,
				"error", err,
			)
		}

		// Ack regardless of outcome: task failures are terminal here, and a
		// redelivered duplicate would be harmless anyway.
		if err := w.queue.Ack(ctx, raw); err != nil {
			slog.Error("worker: failed to ack task", "error", err)
		}
	}
}
