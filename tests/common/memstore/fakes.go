//go:build unit || e2e

package memstore

import (
	"context"
	"io"
	"maps"
	"sync"
	"time"

	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

// Publisher records published events instead of running automations.
type Publisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

type PublishedEvent struct {
	Trigger string
	Data    map[string]any
}

func (p *Publisher) Publish(trigger string, data map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{Trigger: trigger, Data: maps.Clone(data)})
}

func (p *Publisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedEvent(nil), p.events...)
}

func (p *Publisher) Triggers() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Trigger)
	}
	return out
}

// Queue is a JobQueue and a jobs.Dequeuer backed by a channel.
type Queue struct {
	mu       sync.Mutex
	enqueued []*shared.QueuedJob
	ch       chan *shared.QueuedJob
	Err      error
}

func NewQueue() *Queue {
	return &Queue{ch: make(chan *shared.QueuedJob, 64)}
}

func (q *Queue) Enqueue(_ context.Context, jobType string, payload map[string]any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	job := &shared.QueuedJob{ID: uuid.NewString(), Type: jobType, Payload: payload, EnqueuedAt: time.Now()}
	q.enqueued = append(q.enqueued, job)
	select {
	case q.ch <- job:
	default:
	}
	return nil
}

func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*shared.QueuedJob, error) {
	select {
	case job := <-q.ch:
		return job, nil
	case <-time.After(timeout):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *Queue) Jobs() []*shared.QueuedJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*shared.QueuedJob(nil), q.enqueued...)
}

// Documents keeps uploads in memory and returns a fake URI per key.
type Documents struct {
	mu    sync.Mutex
	files map[string][]byte
	Err   error
}

func (d *Documents) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if d.Err != nil {
		return "", d.Err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.files == nil {
		d.files = map[string][]byte{}
	}
	d.files[key] = b
	return "mem://" + key, nil
}

func (d *Documents) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys := make([]string, 0, len(d.files))
	for k := range d.files {
		keys = append(keys, k)
	}
	return keys
}
