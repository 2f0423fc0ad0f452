package booking

import (
	"strings"
	"time"

	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCheckInTooEarly    = errs.BusinessRule("cannot check in before the checkin date")
	ErrCheckOutTooEarly   = errs.BusinessRule("cannot check out before the checkout date")
	ErrAlreadyCheckedIn   = errs.BusinessRule("booking is already checked in")
	ErrAlreadyCheckedOut  = errs.BusinessRule("booking is already checked out")
	ErrArchiveTooEarly    = errs.BusinessRule("booking can only be archived after the cooldown period following checkout")
	ErrAlreadyArchived    = errs.BusinessRule("booking is already archived")
	ErrNotArchived        = errs.BusinessRule("booking must be archived before permanent deletion")
	ErrArchivedIsReadOnly = errs.BusinessRule("archived bookings cannot be modified")
)

type Booking struct {
	id            uuid.UUID
	reference     string
	scope         Scope
	guestID       uuid.UUID
	channel       Channel
	period        StayPeriod
	totalAmount   decimal.Decimal
	currency      string
	paymentStatus PaymentStatus
	depositAmount *decimal.Decimal
	notes         string
	documents     []string
	state         LifecycleState
	checkedInAt   *time.Time
	checkedOutAt  *time.Time
	archivedAt    *time.Time
	archivedBy    *uuid.UUID
	createdAt     time.Time
	updatedAt     time.Time

	pending []Event
}

type NewBookingParams struct {
	PropertyID    uuid.UUID
	UnitID        *uuid.UUID
	GuestID       uuid.UUID
	Channel       Channel
	Period        StayPeriod
	TotalAmount   decimal.Decimal
	Currency      string
	PaymentStatus PaymentStatus
	DepositAmount *decimal.Decimal
	Notes         string
	Documents     []string
}

func NewBooking(p NewBookingParams, reference string, actorID *uuid.UUID, now time.Time) (*Booking, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, ErrMissingReference
	}
	total, err := NewAmount(p.TotalAmount)
	if err != nil {
		return nil, err
	}
	deposit, err := NewOptionalAmount(p.DepositAmount)
	if err != nil {
		return nil, err
	}
	if !p.Channel.IsValid() {
		return nil, ErrInvalidChannel
	}
	if !p.PaymentStatus.IsValid() {
		return nil, ErrInvalidPaymentStatus
	}
	currency, err := NewCurrency(p.Currency)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		id:            uuid.New(),
		reference:     reference,
		scope:         NewScope(p.PropertyID, p.UnitID),
		guestID:       p.GuestID,
		channel:       p.Channel,
		period:        p.Period,
		totalAmount:   total,
		currency:      currency,
		paymentStatus: p.PaymentStatus,
		depositAmount: deposit,
		notes:         p.Notes,
		documents:     append([]string(nil), p.Documents...),
		state:         StatePending,
		createdAt:     now,
		updatedAt:     now,
	}
	b.record(EventCreated, actorID, now, "")
	return b, nil
}

type ReconstructParams struct {
	ID            uuid.UUID
	Reference     string
	PropertyID    uuid.UUID
	UnitID        *uuid.UUID
	GuestID       uuid.UUID
	Channel       Channel
	Checkin       time.Time
	Checkout      time.Time
	TotalAmount   decimal.Decimal
	Currency      string
	PaymentStatus PaymentStatus
	DepositAmount *decimal.Decimal
	Notes         string
	Documents     []string
	State         LifecycleState
	CheckedInAt   *time.Time
	CheckedOutAt  *time.Time
	ArchivedAt    *time.Time
	ArchivedBy    *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReconstructBooking rebuilds a stored booking without re-running creation rules.
func ReconstructBooking(p ReconstructParams) *Booking {
	return &Booking{
		id:            p.ID,
		reference:     p.Reference,
		scope:         NewScope(p.PropertyID, p.UnitID),
		guestID:       p.GuestID,
		channel:       p.Channel,
		period:        StayPeriod{checkin: p.Checkin, checkout: p.Checkout},
		totalAmount:   p.TotalAmount,
		currency:      p.Currency,
		paymentStatus: p.PaymentStatus,
		depositAmount: p.DepositAmount,
		notes:         p.Notes,
		documents:     p.Documents,
		state:         p.State,
		checkedInAt:   p.CheckedInAt,
		checkedOutAt:  p.CheckedOutAt,
		archivedAt:    p.ArchivedAt,
		archivedBy:    p.ArchivedBy,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) Reference() string               { return b.reference }
func (b *Booking) Scope() Scope                    { return b.scope }
func (b *Booking) PropertyID() uuid.UUID           { return b.scope.propertyID }
func (b *Booking) UnitID() *uuid.UUID              { return b.scope.unitID }
func (b *Booking) GuestID() uuid.UUID              { return b.guestID }
func (b *Booking) Channel() Channel                { return b.channel }
func (b *Booking) Period() StayPeriod              { return b.period }
func (b *Booking) Checkin() time.Time              { return b.period.checkin }
func (b *Booking) Checkout() time.Time             { return b.period.checkout }
func (b *Booking) Nights() int                     { return b.period.Nights() }
func (b *Booking) TotalAmount() decimal.Decimal    { return b.totalAmount }
func (b *Booking) Currency() string                { return b.currency }
func (b *Booking) PaymentStatus() PaymentStatus    { return b.paymentStatus }
func (b *Booking) DepositAmount() *decimal.Decimal { return b.depositAmount }
func (b *Booking) Notes() string                   { return b.notes }
func (b *Booking) Documents() []string             { return b.documents }
func (b *Booking) State() LifecycleState           { return b.state }
func (b *Booking) CheckedInAt() *time.Time         { return b.checkedInAt }
func (b *Booking) CheckedOutAt() *time.Time        { return b.checkedOutAt }
func (b *Booking) ArchivedAt() *time.Time          { return b.archivedAt }
func (b *Booking) ArchivedBy() *uuid.UUID          { return b.archivedBy }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time            { return b.updatedAt }

func (b *Booking) IsArchived() bool { return b.archivedAt != nil }

// IsActive is true while the stay has not ended as of today.
func (b *Booking) IsActive(today time.Time) bool {
	return !b.period.checkout.Before(today)
}

// PendingEvents are log entries produced since load, oldest first.
func (b *Booking) PendingEvents() []Event { return b.pending }

func (b *Booking) ClearPendingEvents() { b.pending = nil }

// Reschedule moves the stay and reports whether the dates actually changed.
func (b *Booking) Reschedule(period StayPeriod, now time.Time) (bool, error) {
	if b.IsArchived() {
		return false, ErrArchivedIsReadOnly
	}
	if b.period.Equal(period) {
		return false, nil
	}
	b.period = period
	b.updatedAt = now
	return true, nil
}

type DetailsPatch struct {
	GuestID       *uuid.UUID
	Channel       *Channel
	TotalAmount   *decimal.Decimal
	Currency      *string
	PaymentStatus *PaymentStatus
	DepositAmount **decimal.Decimal
	Notes         *string
}

// ApplyDetails returns the change in totalAmount so callers can keep guest spend in step.
func (b *Booking) ApplyDetails(p DetailsPatch, now time.Time) (decimal.Decimal, error) {
	if b.IsArchived() {
		return decimal.Zero, ErrArchivedIsReadOnly
	}
	delta := decimal.Zero

	if p.Channel != nil {
		if !p.Channel.IsValid() {
			return decimal.Zero, ErrInvalidChannel
		}
	}
	if p.PaymentStatus != nil && !p.PaymentStatus.IsValid() {
		return decimal.Zero, ErrInvalidPaymentStatus
	}
	var currency string
	if p.Currency != nil {
		c, err := NewCurrency(*p.Currency)
		if err != nil {
			return decimal.Zero, err
		}
		currency = c
	}
	if p.TotalAmount != nil {
		total, err := NewAmount(*p.TotalAmount)
		if err != nil {
			return decimal.Zero, err
		}
		delta = total.Sub(b.totalAmount)
		b.totalAmount = total
	}
	if p.DepositAmount != nil {
		deposit, err := NewOptionalAmount(*p.DepositAmount)
		if err != nil {
			return decimal.Zero, err
		}
		b.depositAmount = deposit
	}
	if p.GuestID != nil {
		b.guestID = *p.GuestID
	}
	if p.Channel != nil {
		b.channel = *p.Channel
	}
	if p.Currency != nil {
		b.currency = currency
	}
	if p.PaymentStatus != nil {
		b.paymentStatus = *p.PaymentStatus
	}
	if p.Notes != nil {
		b.notes = *p.Notes
	}
	b.updatedAt = now
	return delta, nil
}

func (b *Booking) MarkUpdated(actorID *uuid.UUID, now time.Time) {
	b.record(EventUpdated, actorID, now, "")
}

// CheckIn requires the checkin date to have arrived (today is the property-local date).
func (b *Booking) CheckIn(today, now time.Time, actorID *uuid.UUID) error {
	if b.IsArchived() {
		return ErrArchivedIsReadOnly
	}
	switch b.state {
	case StateCheckedIn:
		return ErrAlreadyCheckedIn
	case StateCheckedOut:
		return ErrAlreadyCheckedOut
	}
	if today.Before(b.period.checkin) {
		return ErrCheckInTooEarly
	}
	b.state = StateCheckedIn
	b.checkedInAt = &now
	b.updatedAt = now
	b.record(EventCheckedIn, actorID, now, "")
	return nil
}

// CheckOut is allowed from pending as well; guests are sometimes never checked in explicitly.
func (b *Booking) CheckOut(today, now time.Time, actorID *uuid.UUID) error {
	if b.IsArchived() {
		return ErrArchivedIsReadOnly
	}
	if b.state == StateCheckedOut {
		return ErrAlreadyCheckedOut
	}
	if today.Before(b.period.checkout) {
		return ErrCheckOutTooEarly
	}
	b.state = StateCheckedOut
	b.checkedOutAt = &now
	b.updatedAt = now
	b.record(EventCheckedOut, actorID, now, "")
	return nil
}

// Archive needs strictly more than afterDays since checkout.
func (b *Booking) Archive(today, now time.Time, actorID *uuid.UUID, afterDays int) error {
	if b.IsArchived() {
		return ErrAlreadyArchived
	}
	daysSince := int(today.Sub(b.period.checkout).Hours() / 24)
	if daysSince <= afterDays {
		return ErrArchiveTooEarly
	}
	b.archivedAt = &now
	b.archivedBy = actorID
	b.updatedAt = now
	b.record(EventArchived, actorID, now, "")
	return nil
}

// Restore reports false when there was nothing to restore.
func (b *Booking) Restore(now time.Time, actorID *uuid.UUID) bool {
	if !b.IsArchived() {
		return false
	}
	b.archivedAt = nil
	b.archivedBy = nil
	b.updatedAt = now
	b.record(EventRestored, actorID, now, "")
	return true
}

func (b *Booking) EnsurePermanentlyDeletable() error {
	if !b.IsArchived() {
		return ErrNotArchived
	}
	return nil
}

func (b *Booking) AddDocument(uri string, now time.Time) error {
	if strings.TrimSpace(uri) == "" {
		return ErrInvalidDocumentURI
	}
	b.documents = append(b.documents, uri)
	b.updatedAt = now
	return nil
}

// EventData is the payload handed to automation rules.
func (b *Booking) EventData() map[string]any {
	data := map[string]any{
		"bookingId":     b.id.String(),
		"reference":     b.reference,
		"propertyId":    b.scope.propertyID.String(),
		"guestId":       b.guestID.String(),
		"channel":       string(b.channel),
		"checkinDate":   b.period.checkin.Format(time.DateOnly),
		"checkoutDate":  b.period.checkout.Format(time.DateOnly),
		"nights":        b.Nights(),
		"totalAmount":   b.totalAmount.String(),
		"currency":      b.currency,
		"paymentStatus": string(b.paymentStatus),
		"state":         string(b.state),
	}
	if b.scope.unitID != nil {
		data["unitId"] = b.scope.unitID.String()
	}
	return data
}

func (b *Booking) record(kind EventKind, actorID *uuid.UUID, at time.Time, note string) {
	b.pending = append(b.pending, Event{Kind: kind, ActorID: actorID, OccurredAt: at, Note: note})
}
