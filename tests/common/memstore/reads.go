//go:build unit || e2e

package memstore

import (
	"context"
	"sort"
	"time"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/domain/user"

	"github.com/google/uuid"
)

// reads serves CommandReads. Inside Within the store is already locked.
type reads struct {
	s       *Store
	locking bool
}

func (r *reads) lock() func() {
	if !r.locking {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *reads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	defer r.lock()()
	b, ok := r.s.state.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return &b, nil
}

func (r *reads) BookingReferenceExists(_ context.Context, reference string) (bool, error) {
	defer r.lock()()
	for _, b := range r.s.state.bookings {
		if b.Reference() == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *reads) OverlappingBookings(_ context.Context, scope booking.Scope, period booking.StayPeriod) ([]*booking.Booking, error) {
	defer r.lock()()
	r.s.ops = append(r.s.ops, "overlap:"+scope.Key())
	var out []*booking.Booking
	for _, b := range r.s.state.bookings {
		if !sameScope(b.Scope(), scope) {
			continue
		}
		if b.Period().Overlaps(period) {
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Checkin().Before(out[j].Checkin()) })
	return out, nil
}

func sameScope(a, b booking.Scope) bool {
	if b.UnitID() != nil {
		return a.UnitID() != nil && *a.UnitID() == *b.UnitID()
	}
	return a.PropertyID() == b.PropertyID()
}

func (r *reads) GuestByID(_ context.Context, id uuid.UUID) (*guest.Guest, error) {
	defer r.lock()()
	g, ok := r.s.state.guests[id]
	if !ok {
		return nil, notFound("guest")
	}
	return &g, nil
}

func (r *reads) GuestStayHistory(_ context.Context, guestID uuid.UUID, today time.Time) (guest.StayHistory, error) {
	defer r.lock()()
	var h guest.StayHistory
	for _, b := range r.s.state.bookings {
		if b.GuestID() != guestID {
			continue
		}
		out := b.Checkout()
		if out.Before(today) {
			if h.LastCheckout == nil || out.After(*h.LastCheckout) {
				h.LastCheckout = &out
			}
			continue
		}
		h.ActiveBookingCount++
	}
	return h, nil
}

func (r *reads) PropertyByID(_ context.Context, id uuid.UUID) (*property.Property, error) {
	defer r.lock()()
	p, ok := r.s.state.properties[id]
	if !ok {
		return nil, notFound("property")
	}
	return &p, nil
}

func (r *reads) UnitByID(_ context.Context, id uuid.UUID) (*property.Unit, error) {
	defer r.lock()()
	u, ok := r.s.state.units[id]
	if !ok {
		return nil, notFound("unit")
	}
	return &u, nil
}

func (r *reads) ActiveProperties(_ context.Context) ([]*property.Property, error) {
	defer r.lock()()
	var out []*property.Property
	for _, p := range r.s.state.properties {
		if p.IsActive() {
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out, nil
}

func (r *reads) CleaningTaskByID(_ context.Context, id uuid.UUID) (*task.CleaningTask, error) {
	defer r.lock()()
	t, ok := r.s.state.cleaning[id]
	if !ok {
		return nil, notFound("cleaning task")
	}
	return &t, nil
}

func (r *reads) FirstCleaningTaskForBooking(_ context.Context, bookingID uuid.UUID) (*task.CleaningTask, error) {
	defer r.lock()()
	for _, id := range r.s.state.cleaningOrder {
		t, ok := r.s.state.cleaning[id]
		if ok && t.BookingID() != nil && *t.BookingID() == bookingID {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *reads) MaintenanceTaskByID(_ context.Context, id uuid.UUID) (*task.MaintenanceTask, error) {
	defer r.lock()()
	t, ok := r.s.state.maintenance[id]
	if !ok {
		return nil, notFound("maintenance task")
	}
	return &t, nil
}

func (r *reads) FinanceRecordByID(_ context.Context, id uuid.UUID) (*finance.Record, error) {
	defer r.lock()()
	rec, ok := r.s.state.finance[id]
	if !ok {
		return nil, notFound("finance record")
	}
	return &rec, nil
}

func (r *reads) AutomationByID(_ context.Context, id uuid.UUID) (*automation.Rule, error) {
	defer r.lock()()
	rule, ok := r.s.state.automations[id]
	if !ok {
		return nil, notFound("automation")
	}
	return &rule, nil
}

func (r *reads) EnabledAutomationsByTrigger(_ context.Context, trigger string) ([]*automation.Rule, error) {
	defer r.lock()()
	var out []*automation.Rule
	for _, rule := range r.s.state.automations {
		if rule.Enabled() && rule.Trigger() == trigger {
			out = append(out, &rule)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

func (r *reads) UserByEmail(_ context.Context, email string) (*user.User, error) {
	defer r.lock()()
	for _, u := range r.s.state.users {
		if u.Email().Value() == email {
			return &u, nil
		}
	}
	return nil, notFound("user")
}

func (r *reads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	defer r.lock()()
	u, ok := r.s.state.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return &u, nil
}
