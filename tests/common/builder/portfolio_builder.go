//go:build unit || e2e

package builder

import (
	"time"

	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/domain/property"
	"rental-backoffice/tests/common/memstore"

	"github.com/google/uuid"
)

// Portfolio is the smallest bookable world: one property, two units and one guest.
type Portfolio struct {
	Property *property.Property
	UnitA    *property.Unit
	UnitB    *property.Unit
	Guest    *guest.Guest
}

func (p Portfolio) UnitAID() *uuid.UUID {
	id := p.UnitA.ID()
	return &id
}

func (p Portfolio) UnitBID() *uuid.UUID {
	id := p.UnitB.ID()
	return &id
}

func NewPortfolio(now time.Time) Portfolio {
	prop, err := property.NewProperty("VILLA-1", "Villa Serena", "1 Beach Road", now)
	if err != nil {
		panic(err)
	}
	unitA, err := property.NewUnit(prop.ID(), "A", "Garden suite", now)
	if err != nil {
		panic(err)
	}
	unitB, err := property.NewUnit(prop.ID(), "B", "Sea view", now)
	if err != nil {
		panic(err)
	}
	g, err := guest.NewGuest(guest.Contact{Name: "Ana Lima", Email: "ana@example.com"}, now)
	if err != nil {
		panic(err)
	}
	return Portfolio{Property: prop, UnitA: unitA, UnitB: unitB, Guest: g}
}

// Seed stores every entity of the portfolio.
func (p Portfolio) Seed(s *memstore.Store) Portfolio {
	s.AddProperty(p.Property)
	s.AddUnit(p.UnitA)
	s.AddUnit(p.UnitB)
	s.AddGuest(p.Guest)
	return p
}

func NewGuest(name string, now time.Time) *guest.Guest {
	g, err := guest.NewGuest(guest.Contact{Name: name}, now)
	if err != nil {
		panic(err)
	}
	return g
}
