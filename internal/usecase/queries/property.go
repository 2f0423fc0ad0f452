package queries

import (
	"context"

	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

type PropertyReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PropertyView, error)
	List(ctx context.Context, status *string) ([]*PropertyView, error)
}

// PropertyQueries are open to every signed-in role; cleaners and technicians need the addresses.
type PropertyQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PropertyView, error)
	List(ctx context.Context, status *string) ([]*PropertyView, error)
}

type propertyQueriesImpl struct {
	store PropertyReadStore
}

func NewPropertyQueries(store PropertyReadStore) PropertyQueries {
	return &propertyQueriesImpl{store: store}
}

func (q *propertyQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PropertyView, error) {
	p, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrPropertyMissing, "property %s", id)
		}
		return nil, err
	}
	return p, nil
}

func (q *propertyQueriesImpl) List(ctx context.Context, status *string) ([]*PropertyView, error) {
	return q.store.List(ctx, status)
}
