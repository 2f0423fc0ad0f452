package shared

import (
	"context"
	"io"
	"time"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

// Actor is the authenticated principal behind a command.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  user.Role
}

func (a Actor) IDPtr() *uuid.UUID {
	if a.ID == uuid.Nil {
		return nil
	}
	id := a.ID
	return &id
}

var ErrRoleNotAllowed = errs.Forbidden("role is not allowed to perform this action")

func (a Actor) Require(roles ...user.Role) error {
	if !a.Role.In(roles...) {
		return errs.Wrapf(ErrRoleNotAllowed, "role %q", a.Role)
	}
	return nil
}

// SystemActor runs scheduled and queued work.
var SystemActor = Actor{Email: "system", Role: user.RoleAdmin}

// JobQueue accepts work for the background worker.
type JobQueue interface {
	Enqueue(ctx context.Context, jobType string, payload map[string]any) error
}

// QueuedJob is one unit of background work as the worker receives it.
type QueuedJob struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
	EnqueuedAt time.Time      `json:"enqueued_at"`
}

// EventPublisher hands a lifecycle event to the automation engine without blocking.
type EventPublisher interface {
	Publish(trigger string, data map[string]any)
}

type DocumentStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// TriggerResult counts the rules that ran every action; Errors holds "<rule name>: <error>" for the rest.
type TriggerResult struct {
	Triggered int      `json:"triggered"`
	Errors    []string `json:"errors"`
}

type RuleDispatcher interface {
	Trigger(ctx context.Context, trigger string, data map[string]any) TriggerResult
}
