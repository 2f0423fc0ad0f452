package queries

import (
	"context"
	"time"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type CleaningTaskFilter struct {
	PropertyID *uuid.UUID
	BookingID  *uuid.UUID
	Status     *string
	AssigneeID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

type MaintenanceTaskFilter struct {
	PropertyID *uuid.UUID
	Status     *string
	AssigneeID *uuid.UUID
	Priority   *string
}

type TaskReadStore interface {
	ListCleaning(ctx context.Context, filter CleaningTaskFilter, limit int32) ([]*CleaningTaskView, error)
	ListMaintenance(ctx context.Context, filter MaintenanceTaskFilter, limit int32) ([]*MaintenanceTaskView, error)
}

type TaskQueries interface {
	ListCleaning(ctx context.Context, actor shared.Actor, filter CleaningTaskFilter, limit int) ([]*CleaningTaskView, error)
	ListMaintenance(ctx context.Context, actor shared.Actor, filter MaintenanceTaskFilter, limit int) ([]*MaintenanceTaskView, error)
}

type taskQueriesImpl struct {
	store TaskReadStore
}

func NewTaskQueries(store TaskReadStore) TaskQueries {
	return &taskQueriesImpl{store: store}
}

// Field staff only ever see the tasks assigned to them.
func (q *taskQueriesImpl) ListCleaning(ctx context.Context, actor shared.Actor, filter CleaningTaskFilter, limit int) ([]*CleaningTaskView, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant, user.RoleCleaner); err != nil {
		return nil, err
	}
	if actor.Role == user.RoleCleaner {
		filter.AssigneeID = actor.IDPtr()
	}
	return q.store.ListCleaning(ctx, filter, int32(ValidateLimit(limit))) // #nosec G115 -- bounded by MaxListLimit
}

func (q *taskQueriesImpl) ListMaintenance(ctx context.Context, actor shared.Actor, filter MaintenanceTaskFilter, limit int) ([]*MaintenanceTaskView, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant, user.RoleMaintenance); err != nil {
		return nil, err
	}
	if actor.Role == user.RoleMaintenance {
		filter.AssigneeID = actor.IDPtr()
	}
	return q.store.ListMaintenance(ctx, filter, int32(ValidateLimit(limit))) // #nosec G115 -- bounded by MaxListLimit
}
