package queries

import (
	"context"
	"time"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type GuestFilter struct {
	Search   *string
	Archived *bool
}

type GuestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GuestView, error)
	List(ctx context.Context, filter GuestFilter, after *Keyset, limit int32) ([]*GuestView, error)
}

type GuestQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*GuestView, error)
	List(ctx context.Context, actor shared.Actor, filter GuestFilter, cursor *Cursor, limit int) ([]*GuestView, *Cursor, error)
}

type guestQueriesImpl struct {
	store GuestReadStore
}

func NewGuestQueries(store GuestReadStore) GuestQueries {
	return &guestQueriesImpl{store: store}
}

func (q *guestQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*GuestView, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return nil, err
	}
	g, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrGuestNotFound, "guest %s", id)
		}
		return nil, err
	}
	return g, nil
}

func (q *guestQueriesImpl) List(ctx context.Context, actor shared.Actor, filter GuestFilter, cursor *Cursor, limit int) ([]*GuestView, *Cursor, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return nil, nil, err
	}
	after, err := decodeCursor(cursor)
	if err != nil {
		return nil, nil, err
	}
	limit = ValidateLimit(limit)
	rows, err := q.store.List(ctx, filter, after, int32(limit+1)) // #nosec G115 -- bounded by MaxListLimit
	if err != nil {
		return nil, nil, err
	}
	rows, next := page(rows, limit, func(v *GuestView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return rows, next, nil
}
