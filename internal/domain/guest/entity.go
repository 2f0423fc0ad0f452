package guest

import (
	"strings"
	"time"

	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNameRequired      = errs.Validation("guest name is required")
	ErrAlreadyArchived   = errs.BusinessRule("guest is already archived")
	ErrNotArchived       = errs.BusinessRule("guest must be archived before permanent deletion")
	ErrRecentStay        = errs.BusinessRule("guest checked out within the archive cooldown period")
	ErrHasActiveBookings = errs.BusinessRule("guest has active bookings")
)

type Guest struct {
	id          uuid.UUID
	name        string
	email       string
	phone       string
	nationality string
	totalSpend  decimal.Decimal
	blacklisted bool
	notes       string
	archivedAt  *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

type Contact struct {
	Name        string
	Email       string
	Phone       string
	Nationality string
	Notes       string
}

func NewGuest(c Contact, now time.Time) (*Guest, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return &Guest{
		id:          uuid.New(),
		name:        name,
		email:       strings.TrimSpace(c.Email),
		phone:       strings.TrimSpace(c.Phone),
		nationality: strings.TrimSpace(c.Nationality),
		notes:       c.Notes,
		totalSpend:  decimal.Zero,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructGuest(id uuid.UUID, c Contact, totalSpend decimal.Decimal, blacklisted bool, archivedAt *time.Time, createdAt, updatedAt time.Time) *Guest {
	return &Guest{
		id:          id,
		name:        c.Name,
		email:       c.Email,
		phone:       c.Phone,
		nationality: c.Nationality,
		notes:       c.Notes,
		totalSpend:  totalSpend,
		blacklisted: blacklisted,
		archivedAt:  archivedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (g *Guest) ID() uuid.UUID               { return g.id }
func (g *Guest) Name() string                { return g.name }
func (g *Guest) Email() string               { return g.email }
func (g *Guest) Phone() string               { return g.phone }
func (g *Guest) Nationality() string         { return g.nationality }
func (g *Guest) Notes() string               { return g.notes }
func (g *Guest) TotalSpend() decimal.Decimal { return g.totalSpend }
func (g *Guest) Blacklisted() bool           { return g.blacklisted }
func (g *Guest) ArchivedAt() *time.Time      { return g.archivedAt }
func (g *Guest) IsArchived() bool            { return g.archivedAt != nil }
func (g *Guest) CreatedAt() time.Time        { return g.createdAt }
func (g *Guest) UpdatedAt() time.Time        { return g.updatedAt }

type Patch struct {
	Name        *string
	Email       *string
	Phone       *string
	Nationality *string
	Notes       *string
	Blacklisted *bool
}

func (g *Guest) Apply(p Patch, now time.Time) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return ErrNameRequired
		}
		g.name = name
	}
	if p.Email != nil {
		g.email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		g.phone = strings.TrimSpace(*p.Phone)
	}
	if p.Nationality != nil {
		g.nationality = strings.TrimSpace(*p.Nationality)
	}
	if p.Notes != nil {
		g.notes = *p.Notes
	}
	if p.Blacklisted != nil {
		g.blacklisted = *p.Blacklisted
	}
	g.updatedAt = now
	return nil
}

// AdjustSpend is only driven by the booking lifecycle.
func (g *Guest) AdjustSpend(delta decimal.Decimal) {
	g.totalSpend = g.totalSpend.Add(delta)
}

// StayHistory is what archiving needs to know about a guest's bookings.
type StayHistory struct {
	LastCheckout       *time.Time
	ActiveBookingCount int
}

func (g *Guest) Archive(today, now time.Time, history StayHistory, afterDays int) error {
	if g.IsArchived() {
		return ErrAlreadyArchived
	}
	if history.ActiveBookingCount > 0 {
		return ErrHasActiveBookings
	}
	if history.LastCheckout != nil {
		daysSince := int(today.Sub(*history.LastCheckout).Hours() / 24)
		if daysSince <= afterDays {
			return ErrRecentStay
		}
	}
	g.archivedAt = &now
	g.updatedAt = now
	return nil
}

func (g *Guest) Restore(now time.Time) bool {
	if !g.IsArchived() {
		return false
	}
	g.archivedAt = nil
	g.updatedAt = now
	return true
}

func (g *Guest) EnsurePermanentlyDeletable(history StayHistory) error {
	if !g.IsArchived() {
		return ErrNotArchived
	}
	if history.ActiveBookingCount > 0 {
		return ErrHasActiveBookings
	}
	return nil
}
