package queries

import (
	"context"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type AutomationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AutomationView, error)
	List(ctx context.Context) ([]*AutomationView, error)
}

type AutomationQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*AutomationView, error)
	List(ctx context.Context, actor shared.Actor) ([]*AutomationView, error)
}

type automationQueriesImpl struct {
	store AutomationReadStore
}

func NewAutomationQueries(store AutomationReadStore) AutomationQueries {
	return &automationQueriesImpl{store: store}
}

func (q *automationQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*AutomationView, error) {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return nil, err
	}
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrRuleNotFound, "automation %s", id)
		}
		return nil, err
	}
	return v, nil
}

func (q *automationQueriesImpl) List(ctx context.Context, actor shared.Actor) ([]*AutomationView, error) {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return nil, err
	}
	return q.store.List(ctx)
}
