package property

import (
	"regexp"
	"strings"
	"time"

	"rental-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidCode       = errs.Validation("property code must be 2-20 characters of A-Z, 0-9 or '-'")
	ErrNameRequired      = errs.Validation("name is required")
	ErrInvalidStatus     = errs.Validation("invalid property status")
	ErrInvalidUnitCode   = errs.Validation("unit code must be 1-20 characters of A-Z, 0-9 or '-'")
	ErrUnitNotInProperty = errs.Validation("unit does not belong to property")
	ErrInactive          = errs.BusinessRule("property is inactive")
	ErrHardDelete        = errs.BusinessRule("properties cannot be permanently deleted; set status to inactive instead")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

var (
	propertyCodeRegex = regexp.MustCompile(`^[A-Z0-9-]{2,20}$`)
	unitCodeRegex     = regexp.MustCompile(`^[A-Z0-9-]{1,20}$`)
)

type Property struct {
	id        uuid.UUID
	code      string
	name      string
	address   string
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewProperty(code, name, address string, now time.Time) (*Property, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !propertyCodeRegex.MatchString(code) {
		return nil, ErrInvalidCode
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return &Property{
		id:        uuid.New(),
		code:      code,
		name:      name,
		address:   strings.TrimSpace(address),
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructProperty(id uuid.UUID, code, name, address string, status Status, createdAt, updatedAt time.Time) *Property {
	return &Property{id: id, code: code, name: name, address: address, status: status, createdAt: createdAt, updatedAt: updatedAt}
}

func (p *Property) ID() uuid.UUID        { return p.id }
func (p *Property) Code() string         { return p.code }
func (p *Property) Name() string         { return p.name }
func (p *Property) Address() string      { return p.address }
func (p *Property) Status() Status       { return p.status }
func (p *Property) IsActive() bool       { return p.status == StatusActive }
func (p *Property) CreatedAt() time.Time { return p.createdAt }
func (p *Property) UpdatedAt() time.Time { return p.updatedAt }

func (p *Property) SetStatus(s Status, now time.Time) error {
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	p.status = s
	p.updatedAt = now
	return nil
}

type Unit struct {
	id         uuid.UUID
	propertyID uuid.UUID
	unitCode   string
	name       string
	createdAt  time.Time
}

func NewUnit(propertyID uuid.UUID, unitCode, name string, now time.Time) (*Unit, error) {
	unitCode = strings.ToUpper(strings.TrimSpace(unitCode))
	if !unitCodeRegex.MatchString(unitCode) {
		return nil, ErrInvalidUnitCode
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = unitCode
	}
	return &Unit{id: uuid.New(), propertyID: propertyID, unitCode: unitCode, name: name, createdAt: now}, nil
}

func ReconstructUnit(id, propertyID uuid.UUID, unitCode, name string, createdAt time.Time) *Unit {
	return &Unit{id: id, propertyID: propertyID, unitCode: unitCode, name: name, createdAt: createdAt}
}

func (u *Unit) ID() uuid.UUID         { return u.id }
func (u *Unit) PropertyID() uuid.UUID { return u.propertyID }
func (u *Unit) UnitCode() string      { return u.unitCode }
func (u *Unit) Name() string          { return u.name }
func (u *Unit) CreatedAt() time.Time  { return u.createdAt }

func (u *Unit) EnsureBelongsTo(propertyID uuid.UUID) error {
	if u.propertyID != propertyID {
		return ErrUnitNotInProperty
	}
	return nil
}
