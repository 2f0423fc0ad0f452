package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rental-backoffice/internal/usecase/shared"
)

type Dequeuer interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*shared.QueuedJob, error)
}

type JobHandler interface {
	Handle(ctx context.Context, job *shared.QueuedJob) error
}

const (
	pollTimeout  = 5 * time.Second
	errorBackoff = time.Second
	jobTimeout   = 30 * time.Second
)

// Worker consumes the job queue on a fixed number of goroutines.
// A failed job is logged and dropped; nothing is retried.
type Worker struct {
	queue   Dequeuer
	handler JobHandler
	workers int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(queue Dequeuer, handler JobHandler, workers int) *Worker {
	return &Worker{queue: queue, handler: handler, workers: max(workers, 1)}
}

func (w *Worker) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	for i := range w.workers {
		w.wg.Add(1)
		go w.loop(ctx, i)
	}
	slog.Info("job worker started", "workers", w.workers)
	return nil
}

func (w *Worker) Stop(ctx context.Context) error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop(ctx context.Context, n int) {
	defer w.wg.Done()
	for ctx.Err() == nil {
		job, err := w.queue.Dequeue(ctx, pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Error("failed to dequeue job", "worker", n, "error", err.Error())
			select {
			case <-ctx.Done():
				return
			case <-time.After(errorBackoff):
			}
			continue
		}
		if job == nil {
			continue
		}
		w.process(job)
	}
}

func (w *Worker) process(job *shared.QueuedJob) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("job handler panicked", "job_id", job.ID, "type", job.Type, "panic", r)
		}
	}()

	start := time.Now()
	if err := w.handler.Handle(ctx, job); err != nil {
		slog.Error("job failed",
			"job_id", job.ID,
			"type", job.Type,
			"error", err.Error())
		return
	}
	slog.Debug("job done", "job_id", job.ID, "type", job.Type, "duration", time.Since(start))
}
