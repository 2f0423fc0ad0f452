package automation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/usecase/shared"
)

type event struct {
	trigger string
	data    map[string]any
}

// Emitter hands lifecycle events to the dispatcher on background workers.
// Publish never blocks: when the buffer is full the event is dropped and logged.
type Emitter struct {
	dispatcher shared.RuleDispatcher
	events     chan event
	workers    int
	timeout    time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewEmitter(dispatcher shared.RuleDispatcher, cfg config.EventsConfig) *Emitter {
	size := max(cfg.BufferSize, 1)
	workers := max(cfg.Workers, 1)
	timeout := cfg.DispatchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Emitter{
		dispatcher: dispatcher,
		events:     make(chan event, size),
		workers:    workers,
		timeout:    timeout,
	}
}

func (e *Emitter) Publish(trigger string, data map[string]any) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		slog.Warn("automation event dropped: emitter stopped", "trigger", trigger)
		return
	}
	select {
	case e.events <- event{trigger: trigger, data: data}:
	default:
		slog.Warn("automation event dropped: buffer full", "trigger", trigger, "buffer", cap(e.events))
	}
}

func (e *Emitter) Start(_ context.Context) error {
	for range e.workers {
		e.wg.Add(1)
		go e.work()
	}
	slog.Info("automation emitter started", "workers", e.workers, "buffer", cap(e.events))
	return nil
}

// Stop closes the buffer and waits for queued events to drain or ctx to expire.
func (e *Emitter) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.events)
	}
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		slog.Warn("automation emitter stopped before draining", "pending", len(e.events))
		return ctx.Err()
	}
}

func (e *Emitter) work() {
	defer e.wg.Done()
	for ev := range e.events {
		e.dispatch(ev)
	}
}

func (e *Emitter) dispatch(ev event) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("automation dispatch panicked", "trigger", ev.trigger, "panic", r)
		}
	}()

	result := e.dispatcher.Trigger(ctx, ev.trigger, ev.data)
	for _, msg := range result.Errors {
		slog.Warn("automation rule failed", "trigger", ev.trigger, "error", msg)
	}
}
