package readstore

import (
	"context"
	"time"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	BookingReferenceExists(ctx context.Context, db sqlc.DBTX, reference string) (bool, error)
	ListOverlappingBookingsByUnit(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOverlappingBookingsParams) ([]sqlc.Bookings, error)
	ListOverlappingBookingsByProperty(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOverlappingBookingsParams) ([]sqlc.Bookings, error)
	GetGuestStayHistory(ctx context.Context, db sqlc.DBTX, guestID uuid.UUID, today pgtype.Date) (sqlc.GetGuestStayHistoryRow, error)
	GetBookingViewByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.BookingViewRow, error)
	ListBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsParams) ([]sqlc.BookingViewRow, error)
	ListBookingEvents(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) ([]sqlc.ListBookingEventsRow, error)
}

type BookingReadStore struct {
	queries BookingReadQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingReadQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

// Aggregate loads the write-side booking.
func (r *BookingReadStore) Aggregate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return converter.BookingFromRow(row), nil
}

func (r *BookingReadStore) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	exists, err := r.queries.BookingReferenceExists(ctx, r.db, reference)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking reference", err)
	}
	return exists, nil
}

// Overlapping returns the bookings of the scope whose stay intersects period.
// A unit scope only sees that unit; a property scope sees every booking of the property.
func (r *BookingReadStore) Overlapping(ctx context.Context, scope booking.Scope, period booking.StayPeriod) ([]*booking.Booking, error) {
	params := sqlc.ListOverlappingBookingsParams{
		ScopeID:      scope.PropertyID(),
		CheckinDate:  pgconv.DateToPgtype(period.Checkin()),
		CheckoutDate: pgconv.DateToPgtype(period.Checkout()),
	}

	var rows []sqlc.Bookings
	var err error
	if unitID := scope.UnitID(); unitID != nil {
		params.ScopeID = *unitID
		rows, err = r.queries.ListOverlappingBookingsByUnit(ctx, r.db, params)
	} else {
		rows, err = r.queries.ListOverlappingBookingsByProperty(ctx, r.db, params)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping bookings", err)
	}

	result := make([]*booking.Booking, len(rows))
	for i, row := range rows {
		result[i] = converter.BookingFromRow(row)
	}
	return result, nil
}

func (r *BookingReadStore) StayHistory(ctx context.Context, guestID uuid.UUID, today time.Time) (guest.StayHistory, error) {
	row, err := r.queries.GetGuestStayHistory(ctx, r.db, guestID, pgconv.DateToPgtype(today))
	if err != nil {
		return guest.StayHistory{}, infra.WrapRepoErr("failed to load guest stay history", err)
	}
	return guest.StayHistory{
		LastCheckout:       pgconv.DatePtrFromPgtype(row.LastCheckout),
		ActiveBookingCount: int(row.ActiveCount),
	}, nil
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return rowToBookingView(row), nil
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter, after *queries.Keyset, limit int32) ([]*queries.BookingView, error) {
	params := sqlc.ListBookingsParams{
		PropertyID:     pgconv.UUIDPtrToPgtype(filter.PropertyID),
		GuestID:        pgconv.UUIDPtrToPgtype(filter.GuestID),
		LifecycleState: pgconv.StringPtrToPgtype(filter.State),
		Archived:       boolPtrToPgtype(filter.Archived),
		StayFrom:       pgconv.DatePtrToPgtype(filter.StayFrom),
		StayTo:         pgconv.DatePtrToPgtype(filter.StayTo),
		Limit:          limit,
	}
	if after != nil {
		params.AfterCreatedAt = pgconv.TimeToPgtype(after.CreatedAt)
		params.AfterID = pgconv.UUIDPtrToPgtype(&after.ID)
	}

	rows, err := r.queries.ListBookings(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = rowToBookingView(row)
	}
	return result, nil
}

func (r *BookingReadStore) Events(ctx context.Context, bookingID uuid.UUID) ([]*queries.BookingEventView, error) {
	rows, err := r.queries.ListBookingEvents(ctx, r.db, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking events", err)
	}
	result := make([]*queries.BookingEventView, len(rows))
	for i, row := range rows {
		result[i] = &queries.BookingEventView{
			ID:         row.ID,
			Kind:       row.Kind,
			ActorID:    pgconv.UUIDPtrFromPgtype(row.ActorID),
			ActorEmail: pgconv.StringPtrFromPgtype(row.ActorEmail),
			Note:       row.Note,
			OccurredAt: pgconv.TimeFromPgtype(row.OccurredAt),
		}
	}
	return result, nil
}

func rowToBookingView(row sqlc.BookingViewRow) *queries.BookingView {
	return &queries.BookingView{
		ID:             row.ID,
		Reference:      row.Reference,
		PropertyID:     row.PropertyID,
		PropertyCode:   row.PropertyCode,
		PropertyName:   row.PropertyName,
		UnitID:         pgconv.UUIDPtrFromPgtype(row.UnitID),
		UnitCode:       pgconv.StringPtrFromPgtype(row.UnitCode),
		GuestID:        row.GuestID,
		GuestName:      row.GuestName,
		GuestEmail:     row.GuestEmail,
		Channel:        row.Channel,
		CheckinDate:    pgconv.DateFromPgtype(row.CheckinDate),
		CheckoutDate:   pgconv.DateFromPgtype(row.CheckoutDate),
		Nights:         row.Nights,
		TotalAmount:    row.TotalAmount,
		Currency:       row.Currency,
		PaymentStatus:  row.PaymentStatus,
		DepositAmount:  pgconv.DecimalPtrFromNull(row.DepositAmount),
		Notes:          row.Notes,
		Documents:      row.Documents,
		LifecycleState: row.LifecycleState,
		CheckedInAt:    pgconv.TimePtrFromPgtype(row.CheckedInAt),
		CheckedOutAt:   pgconv.TimePtrFromPgtype(row.CheckedOutAt),
		ArchivedAt:     pgconv.TimePtrFromPgtype(row.ArchivedAt),
		ArchivedBy:     pgconv.UUIDPtrFromPgtype(row.ArchivedBy),
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func boolPtrToPgtype(b *bool) pgtype.Bool {
	if b == nil {
		return pgtype.Bool{}
	}
	return pgtype.Bool{Bool: *b, Valid: true}
}
