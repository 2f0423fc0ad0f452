package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const bookingColumns = `id, reference, property_id, unit_id, guest_id, channel, checkin_date, checkout_date,
	nights, total_amount, currency, payment_status, deposit_amount, notes, documents, lifecycle_state,
	checked_in_at, checked_out_at, archived_at, archived_by, created_at, updated_at`

func scanBooking(row pgx.Row) (Bookings, error) {
	var i Bookings
	err := row.Scan(
		&i.ID,
		&i.Reference,
		&i.PropertyID,
		&i.UnitID,
		&i.GuestID,
		&i.Channel,
		&i.CheckinDate,
		&i.CheckoutDate,
		&i.Nights,
		&i.TotalAmount,
		&i.Currency,
		&i.PaymentStatus,
		&i.DepositAmount,
		&i.Notes,
		&i.Documents,
		&i.LifecycleState,
		&i.CheckedInAt,
		&i.CheckedOutAt,
		&i.ArchivedAt,
		&i.ArchivedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func scanBookingRows(rows pgx.Rows) (Bookings, error) { return scanBooking(rows) }

const createBooking = `-- name: CreateBooking :exec
INSERT INTO bookings (` + bookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
`

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg Bookings) error {
	_, err := db.Exec(ctx, createBooking,
		arg.ID,
		arg.Reference,
		arg.PropertyID,
		arg.UnitID,
		arg.GuestID,
		arg.Channel,
		arg.CheckinDate,
		arg.CheckoutDate,
		arg.Nights,
		arg.TotalAmount,
		arg.Currency,
		arg.PaymentStatus,
		arg.DepositAmount,
		arg.Notes,
		arg.Documents,
		arg.LifecycleState,
		arg.CheckedInAt,
		arg.CheckedOutAt,
		arg.ArchivedAt,
		arg.ArchivedBy,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateBooking = `-- name: UpdateBooking :execrows
UPDATE bookings SET
	guest_id = $2,
	channel = $3,
	checkin_date = $4,
	checkout_date = $5,
	nights = $6,
	total_amount = $7,
	currency = $8,
	payment_status = $9,
	deposit_amount = $10,
	notes = $11,
	documents = $12,
	lifecycle_state = $13,
	checked_in_at = $14,
	checked_out_at = $15,
	archived_at = $16,
	archived_by = $17,
	updated_at = $18
WHERE id = $1
`

func (q *Queries) UpdateBooking(ctx context.Context, db DBTX, arg Bookings) (int64, error) {
	result, err := db.Exec(ctx, updateBooking,
		arg.ID,
		arg.GuestID,
		arg.Channel,
		arg.CheckinDate,
		arg.CheckoutDate,
		arg.Nights,
		arg.TotalAmount,
		arg.Currency,
		arg.PaymentStatus,
		arg.DepositAmount,
		arg.Notes,
		arg.Documents,
		arg.LifecycleState,
		arg.CheckedInAt,
		arg.CheckedOutAt,
		arg.ArchivedAt,
		arg.ArchivedBy,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteBooking = `-- name: DeleteBooking :execrows
DELETE FROM bookings WHERE id = $1
`

func (q *Queries) DeleteBooking(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteBooking, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteBookingsByGuest = `-- name: DeleteBookingsByGuest :execrows
DELETE FROM bookings WHERE guest_id = $1
`

func (q *Queries) DeleteBookingsByGuest(ctx context.Context, db DBTX, guestID uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteBookingsByGuest, guestID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getBookingByID = `-- name: GetBookingByID :one
SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1
`

func (q *Queries) GetBookingByID(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByID, id))
}

const bookingReferenceExists = `-- name: BookingReferenceExists :one
SELECT EXISTS (SELECT 1 FROM bookings WHERE reference = $1)
`

func (q *Queries) BookingReferenceExists(ctx context.Context, db DBTX, reference string) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, bookingReferenceExists, reference).Scan(&exists)
	return exists, err
}

type ListOverlappingBookingsParams struct {
	ScopeID      uuid.UUID   `json:"scope_id"`
	CheckinDate  pgtype.Date `json:"checkin_date"`
	CheckoutDate pgtype.Date `json:"checkout_date"`
}

// Half-open overlap: existing.checkin < new.checkout AND existing.checkout > new.checkin.
const listOverlappingBookingsByUnit = `-- name: ListOverlappingBookingsByUnit :many
SELECT ` + bookingColumns + ` FROM bookings
WHERE unit_id = $1
  AND checkin_date < $3
  AND checkout_date > $2
ORDER BY checkin_date
`

func (q *Queries) ListOverlappingBookingsByUnit(ctx context.Context, db DBTX, arg ListOverlappingBookingsParams) ([]Bookings, error) {
	rows, err := db.Query(ctx, listOverlappingBookingsByUnit, arg.ScopeID, arg.CheckinDate, arg.CheckoutDate)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBookingRows)
}

const listOverlappingBookingsByProperty = `-- name: ListOverlappingBookingsByProperty :many
SELECT ` + bookingColumns + ` FROM bookings
WHERE property_id = $1
  AND checkin_date < $3
  AND checkout_date > $2
ORDER BY checkin_date
`

func (q *Queries) ListOverlappingBookingsByProperty(ctx context.Context, db DBTX, arg ListOverlappingBookingsParams) ([]Bookings, error) {
	rows, err := db.Query(ctx, listOverlappingBookingsByProperty, arg.ScopeID, arg.CheckinDate, arg.CheckoutDate)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBookingRows)
}

const acquireBookingScopeLock = `-- name: AcquireBookingScopeLock :exec
SELECT pg_advisory_xact_lock(hashtextextended('booking-scope:' || $1::text, 0))
`

// AcquireBookingScopeLock blocks until the transaction holds the scope lock.
// The lock is released at commit or rollback.
func (q *Queries) AcquireBookingScopeLock(ctx context.Context, db DBTX, scopeKey string) error {
	_, err := db.Exec(ctx, acquireBookingScopeLock, scopeKey)
	return err
}

const acquireBookingScopeLockShared = `-- name: AcquireBookingScopeLockShared :exec
SELECT pg_advisory_xact_lock_shared(hashtextextended('booking-scope:' || $1::text, 0))
`

func (q *Queries) AcquireBookingScopeLockShared(ctx context.Context, db DBTX, scopeKey string) error {
	_, err := db.Exec(ctx, acquireBookingScopeLockShared, scopeKey)
	return err
}

type GetGuestStayHistoryRow struct {
	LastCheckout pgtype.Date `json:"last_checkout"`
	ActiveCount  int64       `json:"active_count"`
}

const getGuestStayHistory = `-- name: GetGuestStayHistory :one
SELECT
	MAX(checkout_date) FILTER (WHERE checkout_date < $2)::date AS last_checkout,
	COUNT(*) FILTER (WHERE checkout_date >= $2) AS active_count
FROM bookings
WHERE guest_id = $1
`

func (q *Queries) GetGuestStayHistory(ctx context.Context, db DBTX, guestID uuid.UUID, today pgtype.Date) (GetGuestStayHistoryRow, error) {
	var i GetGuestStayHistoryRow
	err := db.QueryRow(ctx, getGuestStayHistory, guestID, today).Scan(&i.LastCheckout, &i.ActiveCount)
	return i, err
}

type InsertBookingEventParams struct {
	BookingID  uuid.UUID          `json:"booking_id"`
	Kind       string             `json:"kind"`
	ActorID    pgtype.UUID        `json:"actor_id"`
	Note       string             `json:"note"`
	OccurredAt pgtype.Timestamptz `json:"occurred_at"`
}

const insertBookingEvent = `-- name: InsertBookingEvent :exec
INSERT INTO booking_events (booking_id, kind, actor_id, note, occurred_at)
VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) InsertBookingEvent(ctx context.Context, db DBTX, arg InsertBookingEventParams) error {
	_, err := db.Exec(ctx, insertBookingEvent, arg.BookingID, arg.Kind, arg.ActorID, arg.Note, arg.OccurredAt)
	return err
}

type ListBookingEventsRow struct {
	ID         int64              `json:"id"`
	Kind       string             `json:"kind"`
	ActorID    pgtype.UUID        `json:"actor_id"`
	ActorEmail pgtype.Text        `json:"actor_email"`
	Note       string             `json:"note"`
	OccurredAt pgtype.Timestamptz `json:"occurred_at"`
}

const listBookingEvents = `-- name: ListBookingEvents :many
SELECT e.id, e.kind, e.actor_id, u.email AS actor_email, e.note, e.occurred_at
FROM booking_events e
LEFT JOIN users u ON u.id = e.actor_id
WHERE e.booking_id = $1
ORDER BY e.occurred_at, e.id
`

func (q *Queries) ListBookingEvents(ctx context.Context, db DBTX, bookingID uuid.UUID) ([]ListBookingEventsRow, error) {
	rows, err := db.Query(ctx, listBookingEvents, bookingID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (ListBookingEventsRow, error) {
		var i ListBookingEventsRow
		err := r.Scan(&i.ID, &i.Kind, &i.ActorID, &i.ActorEmail, &i.Note, &i.OccurredAt)
		return i, err
	})
}

type BookingViewRow struct {
	Bookings
	PropertyCode string      `json:"property_code"`
	PropertyName string      `json:"property_name"`
	UnitCode     pgtype.Text `json:"unit_code"`
	GuestName    string      `json:"guest_name"`
	GuestEmail   string      `json:"guest_email"`
}

const bookingViewSelect = `SELECT b.id, b.reference, b.property_id, b.unit_id, b.guest_id, b.channel, b.checkin_date,
	b.checkout_date, b.nights, b.total_amount, b.currency, b.payment_status, b.deposit_amount, b.notes,
	b.documents, b.lifecycle_state, b.checked_in_at, b.checked_out_at, b.archived_at, b.archived_by,
	b.created_at, b.updated_at,
	p.code AS property_code, p.name AS property_name, un.unit_code, g.name AS guest_name, g.email AS guest_email
FROM bookings b
JOIN properties p ON p.id = b.property_id
LEFT JOIN units un ON un.id = b.unit_id
JOIN guests g ON g.id = b.guest_id
`

func scanBookingView(row pgx.Row) (BookingViewRow, error) {
	var i BookingViewRow
	err := row.Scan(
		&i.ID,
		&i.Reference,
		&i.PropertyID,
		&i.UnitID,
		&i.GuestID,
		&i.Channel,
		&i.CheckinDate,
		&i.CheckoutDate,
		&i.Nights,
		&i.TotalAmount,
		&i.Currency,
		&i.PaymentStatus,
		&i.DepositAmount,
		&i.Notes,
		&i.Documents,
		&i.LifecycleState,
		&i.CheckedInAt,
		&i.CheckedOutAt,
		&i.ArchivedAt,
		&i.ArchivedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.PropertyCode,
		&i.PropertyName,
		&i.UnitCode,
		&i.GuestName,
		&i.GuestEmail,
	)
	return i, err
}

const getBookingViewByID = `-- name: GetBookingViewByID :one
` + bookingViewSelect + `WHERE b.id = $1
`

func (q *Queries) GetBookingViewByID(ctx context.Context, db DBTX, id uuid.UUID) (BookingViewRow, error) {
	return scanBookingView(db.QueryRow(ctx, getBookingViewByID, id))
}

type ListBookingsParams struct {
	PropertyID     pgtype.UUID        `json:"property_id"`
	GuestID        pgtype.UUID        `json:"guest_id"`
	LifecycleState pgtype.Text        `json:"lifecycle_state"`
	Archived       pgtype.Bool        `json:"archived"`
	StayFrom       pgtype.Date        `json:"stay_from"`
	StayTo         pgtype.Date        `json:"stay_to"`
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        pgtype.UUID        `json:"after_id"`
	Limit          int32              `json:"limit"`
}

const listBookings = `-- name: ListBookings :many
` + bookingViewSelect + `WHERE ($1::uuid IS NULL OR b.property_id = $1)
  AND ($2::uuid IS NULL OR b.guest_id = $2)
  AND ($3::text IS NULL OR b.lifecycle_state = $3)
  AND ($4::boolean IS NULL OR (b.archived_at IS NOT NULL) = $4)
  AND ($5::date IS NULL OR b.checkout_date > $5)
  AND ($6::date IS NULL OR b.checkin_date < $6)
  AND ($7::timestamptz IS NULL OR (b.created_at, b.id) < ($7, $8::uuid))
ORDER BY b.created_at DESC, b.id DESC
LIMIT $9
`

func (q *Queries) ListBookings(ctx context.Context, db DBTX, arg ListBookingsParams) ([]BookingViewRow, error) {
	rows, err := db.Query(ctx, listBookings,
		arg.PropertyID,
		arg.GuestID,
		arg.LifecycleState,
		arg.Archived,
		arg.StayFrom,
		arg.StayTo,
		arg.AfterCreatedAt,
		arg.AfterID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (BookingViewRow, error) { return scanBookingView(r) })
}

// SumGuestBookingTotals is the reconciliation source for guests.total_spend.
const sumGuestBookingTotals = `-- name: SumGuestBookingTotals :one
SELECT COALESCE(SUM(total_amount), 0)::numeric FROM bookings WHERE guest_id = $1
`

func (q *Queries) SumGuestBookingTotals(ctx context.Context, db DBTX, guestID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.QueryRow(ctx, sumGuestBookingTotals, guestID).Scan(&total)
	return total, err
}
