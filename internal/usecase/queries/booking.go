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

type BookingFilter struct {
	PropertyID *uuid.UUID
	GuestID    *uuid.UUID
	State      *string
	Archived   *bool
	StayFrom   *time.Time
	StayTo     *time.Time
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, after *Keyset, limit int32) ([]*BookingView, error)
	Events(ctx context.Context, bookingID uuid.UUID) ([]*BookingEventView, error)
}

// VoucherRenderer turns a booking into a printable confirmation.
type VoucherRenderer interface {
	Render(b *BookingView) ([]byte, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actor shared.Actor, filter BookingFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
	Events(ctx context.Context, actor shared.Actor, id uuid.UUID) ([]*BookingEventView, error)
	Voucher(ctx context.Context, actor shared.Actor, id uuid.UUID) ([]byte, *BookingView, error)
}

type bookingQueriesImpl struct {
	store    BookingReadStore
	vouchers VoucherRenderer
}

func NewBookingQueries(store BookingReadStore, vouchers VoucherRenderer) BookingQueries {
	return &bookingQueriesImpl{store: store, vouchers: vouchers}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return nil, err
	}
	return q.find(ctx, id)
}

func (q *bookingQueriesImpl) find(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrapf(ErrBookingNotFound, "booking %s", id)
		}
		return nil, err
	}
	return v, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, actor shared.Actor, filter BookingFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
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
	rows, next := page(rows, limit, func(v *BookingView) (time.Time, uuid.UUID) { return v.CreatedAt, v.ID })
	return rows, next, nil
}

func (q *bookingQueriesImpl) Events(ctx context.Context, actor shared.Actor, id uuid.UUID) ([]*BookingEventView, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return nil, err
	}
	if _, err := q.find(ctx, id); err != nil {
		return nil, err
	}
	return q.store.Events(ctx, id)
}

func (q *bookingQueriesImpl) Voucher(ctx context.Context, actor shared.Actor, id uuid.UUID) ([]byte, *BookingView, error) {
	v, err := q.GetByID(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := q.vouchers.Render(v)
	if err != nil {
		return nil, nil, errs.Wrap(err, "render voucher")
	}
	return pdf, v, nil
}
