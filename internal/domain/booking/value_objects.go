package booking

import (
	"regexp"
	"strings"
	"time"

	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStayPeriod    = errs.Validation("checkout date must be after checkin date")
	ErrMissingStayDate      = errs.Validation("checkin and checkout dates are required")
	ErrNegativeAmount       = errs.Validation("amount must not be negative")
	ErrInvalidCurrency      = errs.Validation("currency must be a 3-letter ISO code")
	ErrInvalidChannel       = errs.Validation("invalid booking channel")
	ErrInvalidPaymentStatus = errs.Validation("invalid payment status")
	ErrMissingReference     = errs.Validation("booking reference is required")
	ErrInvalidDocumentURI   = errs.Validation("document uri is required")
)

const DefaultCurrency = "USD"

// StayPeriod is the half-open night range [checkin, checkout).
type StayPeriod struct {
	checkin  time.Time
	checkout time.Time
}

func NewStayPeriod(checkin, checkout time.Time) (StayPeriod, error) {
	if checkin.IsZero() || checkout.IsZero() {
		return StayPeriod{}, ErrMissingStayDate
	}
	in := clock.DateOf(checkin)
	out := clock.DateOf(checkout)
	if !out.After(in) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}
	return StayPeriod{checkin: in, checkout: out}, nil
}

func (p StayPeriod) Checkin() time.Time  { return p.checkin }
func (p StayPeriod) Checkout() time.Time { return p.checkout }

func (p StayPeriod) Nights() int {
	return int(p.checkout.Sub(p.checkin).Hours() / 24)
}

// Overlaps uses half-open semantics: a checkout on day X leaves day X free.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkin.Before(other.checkout) && p.checkout.After(other.checkin)
}

func (p StayPeriod) Equal(other StayPeriod) bool {
	return p.checkin.Equal(other.checkin) && p.checkout.Equal(other.checkout)
}

// Scope is what bookings are exclusive within: the unit when known, else the whole property.
type Scope struct {
	propertyID uuid.UUID
	unitID     *uuid.UUID
}

func NewScope(propertyID uuid.UUID, unitID *uuid.UUID) Scope {
	return Scope{propertyID: propertyID, unitID: unitID}
}

func (s Scope) PropertyID() uuid.UUID { return s.propertyID }
func (s Scope) UnitID() *uuid.UUID    { return s.unitID }

func (s Scope) Key() string {
	if s.unitID != nil {
		return "unit:" + s.unitID.String()
	}
	return propertyKey(s.propertyID)
}

func propertyKey(id uuid.UUID) string { return "property:" + id.String() }

// ScopeLock is one advisory lock a writer of the scope holds until commit.
type ScopeLock struct {
	Key    string
	Shared bool
}

// Locks lists the locks a writer takes, property lock first. Unit writers hold
// the property lock shared, so they queue behind a whole-property writer but
// not behind each other.
func (s Scope) Locks() []ScopeLock {
	if s.unitID == nil {
		return []ScopeLock{{Key: propertyKey(s.propertyID)}}
	}
	return []ScopeLock{
		{Key: propertyKey(s.propertyID), Shared: true},
		{Key: s.Key()},
	}
}

func NewAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

func NewOptionalAmount(d *decimal.Decimal) (*decimal.Decimal, error) {
	if d == nil {
		return nil, nil
	}
	v, err := NewAmount(*d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

func NewCurrency(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultCurrency, nil
	}
	if !currencyRegex.MatchString(s) {
		return "", ErrInvalidCurrency
	}
	return s, nil
}

// Event is one entry of the append-only lifecycle log.
type Event struct {
	Kind       EventKind
	ActorID    *uuid.UUID
	OccurredAt time.Time
	Note       string
}
