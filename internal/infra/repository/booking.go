package repository

import (
	"context"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.Bookings) error
	UpdateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.Bookings) (int64, error)
	DeleteBooking(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	DeleteBookingsByGuest(ctx context.Context, db sqlc.DBTX, guestID uuid.UUID) (int64, error)
	InsertBookingEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertBookingEventParams) error
	AcquireBookingScopeLock(ctx context.Context, db sqlc.DBTX, scopeKey string) error
	AcquireBookingScopeLockShared(ctx context.Context, db sqlc.DBTX, scopeKey string) error
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	if err := r.queries.CreateBooking(ctx, tx, converter.BookingToRow(b)); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	n, err := r.queries.UpdateBooking(ctx, tx, converter.BookingToRow(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error {
	n, err := r.queries.DeleteBooking(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) DeleteByGuest(ctx context.Context, tx sqlc.DBTX, guestID uuid.UUID) error {
	if _, err := r.queries.DeleteBookingsByGuest(ctx, tx, guestID); err != nil {
		return infra.WrapRepoErr("failed to delete guest bookings", err)
	}
	return nil
}

func (r *BookingRepository) AppendEvents(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID, events []booking.Event) error {
	for _, e := range events {
		if err := r.queries.InsertBookingEvent(ctx, tx, converter.BookingEventToParams(bookingID, e)); err != nil {
			return infra.WrapRepoErr("failed to append booking event", err)
		}
	}
	return nil
}

// LockScope takes a transaction-scoped advisory lock; it is released on commit or rollback.
func (r *BookingRepository) LockScope(ctx context.Context, tx sqlc.DBTX, lock booking.ScopeLock) error {
	acquire := r.queries.AcquireBookingScopeLock
	if lock.Shared {
		acquire = r.queries.AcquireBookingScopeLockShared
	}
	if err := acquire(ctx, tx, lock.Key); err != nil {
		return infra.WrapRepoErr("failed to lock booking scope", err)
	}
	return nil
}
