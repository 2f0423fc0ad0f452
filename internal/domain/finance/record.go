package finance

import (
	"fmt"
	"strings"
	"time"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidType     = errs.Validation("invalid finance record type")
	ErrInvalidStatus   = errs.Validation("invalid finance record status")
	ErrNegativeAmount  = errs.Validation("finance amount must not be negative")
	ErrMissingCategory = errs.Validation("finance category is required")
)

type Type string

const (
	TypeRevenue Type = "revenue"
	TypeExpense Type = "expense"
)

func (t Type) IsValid() bool { return t == TypeRevenue || t == TypeExpense }

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

func (s Status) IsValid() bool { return s == StatusPending || s == StatusPaid }

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

const (
	CategoryBooking     = "booking"
	CategoryCleaning    = "cleaning"
	CategoryMaintenance = "maintenance"
)

type Record struct {
	id                uuid.UUID
	recordType        Type
	category          string
	amount            decimal.Decimal
	currency          string
	date              time.Time
	propertyID        *uuid.UUID
	bookingID         *uuid.UUID
	guestID           *uuid.UUID
	cleaningTaskID    *uuid.UUID
	maintenanceTaskID *uuid.UUID
	status            Status
	paymentMethod     *string
	description       string
	createdAt         time.Time
	updatedAt         time.Time
}

type Snapshot struct {
	ID                uuid.UUID
	Type              Type
	Category          string
	Amount            decimal.Decimal
	Currency          string
	Date              time.Time
	PropertyID        *uuid.UUID
	BookingID         *uuid.UUID
	GuestID           *uuid.UUID
	CleaningTaskID    *uuid.UUID
	MaintenanceTaskID *uuid.UUID
	Status            Status
	PaymentMethod     *string
	Description       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func newRecord(s Snapshot, now time.Time) (*Record, error) {
	if !s.Type.IsValid() {
		return nil, ErrInvalidType
	}
	if !s.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if s.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if strings.TrimSpace(s.Category) == "" {
		return nil, ErrMissingCategory
	}
	if s.Currency == "" {
		s.Currency = booking.DefaultCurrency
	}
	s.ID = uuid.New()
	s.Date = clock.DateOf(s.Date)
	s.CreatedAt = now
	s.UpdatedAt = now
	return Reconstruct(s), nil
}

// NewBookingRevenue is the revenue leg written when a booking is created.
func NewBookingRevenue(b *booking.Booking, now time.Time) (*Record, error) {
	status := StatusPending
	if b.PaymentStatus() == booking.PaymentPaid {
		status = StatusPaid
	}
	propertyID, bookingID, guestID := b.PropertyID(), b.ID(), b.GuestID()
	return newRecord(Snapshot{
		Type:        TypeRevenue,
		Category:    CategoryBooking,
		Amount:      b.TotalAmount(),
		Currency:    b.Currency(),
		Date:        b.Checkin(),
		PropertyID:  &propertyID,
		BookingID:   &bookingID,
		GuestID:     &guestID,
		Status:      status,
		Description: fmt.Sprintf("Booking %s (%d nights)", b.Reference(), b.Nights()),
	}, now)
}

func NewCleaningExpense(t *task.CleaningTask, cost decimal.Decimal, currency string, now time.Time) (*Record, error) {
	propertyID, taskID := t.PropertyID(), t.ID()
	return newRecord(Snapshot{
		Type:           TypeExpense,
		Category:       CategoryCleaning,
		Amount:         cost,
		Currency:       currency,
		Date:           now,
		PropertyID:     &propertyID,
		BookingID:      t.BookingID(),
		CleaningTaskID: &taskID,
		Status:         StatusPending,
		Description:    "Cleaning " + t.Code(),
	}, now)
}

func NewMaintenanceExpense(t *task.MaintenanceTask, cost decimal.Decimal, currency string, now time.Time) (*Record, error) {
	propertyID, taskID := t.PropertyID(), t.ID()
	return newRecord(Snapshot{
		Type:              TypeExpense,
		Category:          CategoryMaintenance,
		Amount:            cost,
		Currency:          currency,
		Date:              now,
		PropertyID:        &propertyID,
		MaintenanceTaskID: &taskID,
		Status:            StatusPending,
		Description:       "Maintenance: " + t.Title(),
	}, now)
}

func Reconstruct(s Snapshot) *Record {
	return &Record{
		id:                s.ID,
		recordType:        s.Type,
		category:          s.Category,
		amount:            s.Amount,
		currency:          s.Currency,
		date:              s.Date,
		propertyID:        s.PropertyID,
		bookingID:         s.BookingID,
		guestID:           s.GuestID,
		cleaningTaskID:    s.CleaningTaskID,
		maintenanceTaskID: s.MaintenanceTaskID,
		status:            s.Status,
		paymentMethod:     s.PaymentMethod,
		description:       s.Description,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
	}
}

func (r *Record) ID() uuid.UUID                 { return r.id }
func (r *Record) Type() Type                    { return r.recordType }
func (r *Record) Category() string              { return r.category }
func (r *Record) Amount() decimal.Decimal       { return r.amount }
func (r *Record) Currency() string              { return r.currency }
func (r *Record) Date() time.Time               { return r.date }
func (r *Record) PropertyID() *uuid.UUID        { return r.propertyID }
func (r *Record) BookingID() *uuid.UUID         { return r.bookingID }
func (r *Record) GuestID() *uuid.UUID           { return r.guestID }
func (r *Record) CleaningTaskID() *uuid.UUID    { return r.cleaningTaskID }
func (r *Record) MaintenanceTaskID() *uuid.UUID { return r.maintenanceTaskID }
func (r *Record) Status() Status                { return r.status }
func (r *Record) PaymentMethod() *string        { return r.paymentMethod }
func (r *Record) Description() string           { return r.description }
func (r *Record) CreatedAt() time.Time          { return r.createdAt }
func (r *Record) UpdatedAt() time.Time          { return r.updatedAt }

// Settle is the only mutation allowed after creation.
func (r *Record) Settle(status Status, paymentMethod *string, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	if paymentMethod != nil {
		pm := strings.TrimSpace(*paymentMethod)
		if pm == "" {
			r.paymentMethod = nil
		} else {
			r.paymentMethod = &pm
		}
	}
	r.updatedAt = now
	return nil
}
