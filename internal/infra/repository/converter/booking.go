package converter

import (
	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func BookingToRow(b *booking.Booking) sqlc.Bookings {
	return sqlc.Bookings{
		ID:             b.ID(),
		Reference:      b.Reference(),
		PropertyID:     b.PropertyID(),
		UnitID:         pgconv.UUIDPtrToPgtype(b.UnitID()),
		GuestID:        b.GuestID(),
		Channel:        string(b.Channel()),
		CheckinDate:    pgconv.DateToPgtype(b.Checkin()),
		CheckoutDate:   pgconv.DateToPgtype(b.Checkout()),
		Nights:         int32(b.Nights()), // #nosec G115 -- stays are bounded by the date columns
		TotalAmount:    b.TotalAmount(),
		Currency:       b.Currency(),
		PaymentStatus:  string(b.PaymentStatus()),
		DepositAmount:  pgconv.DecimalPtrToNull(b.DepositAmount()),
		Notes:          b.Notes(),
		Documents:      nonNil(b.Documents()),
		LifecycleState: string(b.State()),
		CheckedInAt:    pgconv.TimePtrToPgtype(b.CheckedInAt()),
		CheckedOutAt:   pgconv.TimePtrToPgtype(b.CheckedOutAt()),
		ArchivedAt:     pgconv.TimePtrToPgtype(b.ArchivedAt()),
		ArchivedBy:     pgconv.UUIDPtrToPgtype(b.ArchivedBy()),
		CreatedAt:      pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingFromRow(row sqlc.Bookings) *booking.Booking {
	return booking.ReconstructBooking(booking.ReconstructParams{
		ID:            row.ID,
		Reference:     row.Reference,
		PropertyID:    row.PropertyID,
		UnitID:        pgconv.UUIDPtrFromPgtype(row.UnitID),
		GuestID:       row.GuestID,
		Channel:       booking.Channel(row.Channel),
		Checkin:       pgconv.DateFromPgtype(row.CheckinDate),
		Checkout:      pgconv.DateFromPgtype(row.CheckoutDate),
		TotalAmount:   row.TotalAmount,
		Currency:      row.Currency,
		PaymentStatus: booking.PaymentStatus(row.PaymentStatus),
		DepositAmount: pgconv.DecimalPtrFromNull(row.DepositAmount),
		Notes:         row.Notes,
		Documents:     nonNil(row.Documents),
		State:         booking.LifecycleState(row.LifecycleState),
		CheckedInAt:   pgconv.TimePtrFromPgtype(row.CheckedInAt),
		CheckedOutAt:  pgconv.TimePtrFromPgtype(row.CheckedOutAt),
		ArchivedAt:    pgconv.TimePtrFromPgtype(row.ArchivedAt),
		ArchivedBy:    pgconv.UUIDPtrFromPgtype(row.ArchivedBy),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func BookingEventToParams(bookingID uuid.UUID, e booking.Event) sqlc.InsertBookingEventParams {
	return sqlc.InsertBookingEventParams{
		BookingID:  bookingID,
		Kind:       string(e.Kind),
		ActorID:    pgconv.UUIDPtrToPgtype(e.ActorID),
		Note:       e.Note,
		OccurredAt: pgconv.TimeToPgtype(e.OccurredAt),
	}
}

// text[] columns are NOT NULL; pgx writes a nil slice as NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
