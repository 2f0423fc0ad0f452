package queries

import (
	"context"
	"time"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type FinanceFilter struct {
	Type       *string
	Status     *string
	PropertyID *uuid.UUID
	BookingID  *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

type FinanceReadStore interface {
	List(ctx context.Context, filter FinanceFilter, limit int32) ([]*FinanceRecordView, error)
	Totals(ctx context.Context, filter FinanceFilter) ([]FinanceTotal, error)
}

type FinanceQueries interface {
	List(ctx context.Context, actor shared.Actor, filter FinanceFilter, limit int) ([]*FinanceRecordView, []FinanceTotal, error)
}

type financeQueriesImpl struct {
	store FinanceReadStore
}

func NewFinanceQueries(store FinanceReadStore) FinanceQueries {
	return &financeQueriesImpl{store: store}
}

func (q *financeQueriesImpl) List(ctx context.Context, actor shared.Actor, filter FinanceFilter, limit int) ([]*FinanceRecordView, []FinanceTotal, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return nil, nil, err
	}
	rows, err := q.store.List(ctx, filter, int32(ValidateLimit(limit))) // #nosec G115 -- bounded by MaxListLimit
	if err != nil {
		return nil, nil, err
	}
	totals, err := q.store.Totals(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return rows, totals, nil
}
