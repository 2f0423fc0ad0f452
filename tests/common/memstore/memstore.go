//go:build unit || e2e

// Package memstore is an in-memory UnitOfWork for usecase tests.
// A failed Within rolls every write of that transaction back.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NotificationJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type state struct {
	bookings    map[uuid.UUID]booking.Booking
	events      map[uuid.UUID][]booking.Event
	guests      map[uuid.UUID]guest.Guest
	properties  map[uuid.UUID]property.Property
	units       map[uuid.UUID]property.Unit
	cleaning    map[uuid.UUID]task.CleaningTask
	maintenance map[uuid.UUID]task.MaintenanceTask
	finance     map[uuid.UUID]finance.Record
	automations map[uuid.UUID]automation.Rule
	users       map[uuid.UUID]user.User
	jobs        []NotificationJob
	// insertion order for "first created" lookups
	cleaningOrder []uuid.UUID
}

func (s state) clone() state {
	events := make(map[uuid.UUID][]booking.Event, len(s.events))
	for k, v := range s.events {
		events[k] = slices.Clone(v)
	}
	return state{
		bookings:      maps.Clone(s.bookings),
		events:        events,
		guests:        maps.Clone(s.guests),
		properties:    maps.Clone(s.properties),
		units:         maps.Clone(s.units),
		cleaning:      maps.Clone(s.cleaning),
		maintenance:   maps.Clone(s.maintenance),
		finance:       maps.Clone(s.finance),
		automations:   maps.Clone(s.automations),
		users:         maps.Clone(s.users),
		jobs:          slices.Clone(s.jobs),
		cleaningOrder: slices.Clone(s.cleaningOrder),
	}
}

// Store keeps entities by value so callers never share a pointer with it.
type Store struct {
	mu    sync.Mutex
	state state

	ops      []string
	failures map[string]error
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{
		state: state{
			bookings:    map[uuid.UUID]booking.Booking{},
			events:      map[uuid.UUID][]booking.Event{},
			guests:      map[uuid.UUID]guest.Guest{},
			properties:  map[uuid.UUID]property.Property{},
			units:       map[uuid.UUID]property.Unit{},
			cleaning:    map[uuid.UUID]task.CleaningTask{},
			maintenance: map[uuid.UUID]task.MaintenanceTask{},
			finance:     map[uuid.UUID]finance.Record{},
			automations: map[uuid.UUID]automation.Rule{},
			users:       map[uuid.UUID]user.User{},
		},
		failures: map[string]error{},
	}
}

// FailOn makes the next call of op (for example "finance.create") return err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Ops lists lock and overlap calls in the order they happened.
func (s *Store) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ops)
}

func (s *Store) fail(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{s: s, locking: true}
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func duplicateKey(what string) error {
	return infra.WrapRepoErr(what+" already exists", nil, infra.KindDuplicateKey)
}

// ---- seeding and inspection ----

func (s *Store) AddProperty(p *property.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.properties[p.ID()] = *p
}

func (s *Store) AddUnit(u *property.Unit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.units[u.ID()] = *u
}

func (s *Store) AddGuest(g *guest.Guest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.guests[g.ID()] = *g
}

// stored drops unsaved events; the event log lives beside the row, as in the database.
func stored(b *booking.Booking) booking.Booking {
	cp := *b
	cp.ClearPendingEvents()
	return cp
}

func (s *Store) AddCleaningTask(t *task.CleaningTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.cleaning[t.ID()] = *t
	s.state.cleaningOrder = append(s.state.cleaningOrder, t.ID())
}

func (s *Store) AddFinanceRecord(r *finance.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.finance[r.ID()] = *r
}

func (s *Store) AddRule(r *automation.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.automations[r.ID()] = *r
}

func (s *Store) AddUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users[u.ID()] = *u
}

func (s *Store) Booking(id uuid.UUID) (*booking.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.bookings[id]
	return &b, ok
}

func (s *Store) Bookings() []*booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*booking.Booking, 0, len(s.state.bookings))
	for _, b := range s.state.bookings {
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Checkin().Before(out[j].Checkin()) })
	return out
}

func (s *Store) Events(bookingID uuid.UUID) []booking.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.events[bookingID])
}

func (s *Store) Guest(id uuid.UUID) (*guest.Guest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.state.guests[id]
	return &g, ok
}

func (s *Store) Property(id uuid.UUID) (*property.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.properties[id]
	return &p, ok
}

func (s *Store) CleaningTasks() []*task.CleaningTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*task.CleaningTask, 0, len(s.state.cleaningOrder))
	for _, id := range s.state.cleaningOrder {
		if t, ok := s.state.cleaning[id]; ok {
			out = append(out, &t)
		}
	}
	return out
}

func (s *Store) MaintenanceTasks() []*task.MaintenanceTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*task.MaintenanceTask, 0, len(s.state.maintenance))
	for _, t := range s.state.maintenance {
		out = append(out, &t)
	}
	return out
}

func (s *Store) FinanceRecords() []*finance.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*finance.Record, 0, len(s.state.finance))
	for _, r := range s.state.finance {
		out = append(out, &r)
	}
	return out
}

func (s *Store) Rules() []*automation.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*automation.Rule, 0, len(s.state.automations))
	for _, r := range s.state.automations {
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func (s *Store) User(id uuid.UUID) (*user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.users[id]
	return &u, ok
}

func (s *Store) NotificationJobs() []NotificationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.jobs)
}

// ---- transaction ----

type memTx struct {
	s *Store
}

func (t *memTx) Bookings() shared.BookingRepository            { return bookingRepo{t.s} }
func (t *memTx) Guests() shared.GuestRepository                { return guestRepo{t.s} }
func (t *memTx) Properties() shared.PropertyRepository         { return propertyRepo{t.s} }
func (t *memTx) Cleaning() shared.CleaningTaskRepository       { return cleaningRepo{t.s} }
func (t *memTx) Maintenance() shared.MaintenanceTaskRepository { return maintenanceRepo{t.s} }
func (t *memTx) Finance() shared.FinanceRepository             { return financeRepo{t.s} }
func (t *memTx) Automations() shared.AutomationRepository      { return automationRepo{t.s} }
func (t *memTx) Notifications() shared.NotificationRepository  { return notificationRepo{t.s} }
func (t *memTx) Users() shared.UserRepository                  { return userRepo{t.s} }
func (t *memTx) Locks() shared.ScopeLocker                     { return locker{t.s} }
func (t *memTx) Reads() shared.CommandReads                    { return &reads{s: t.s} }
func (t *memTx) DB() sqlc.DBTX                                 { return nil }

type locker struct{ s *Store }

func (l locker) LockScope(_ context.Context, _ sqlc.DBTX, lock booking.ScopeLock) error {
	if err := l.s.fail("lock"); err != nil {
		return err
	}
	op := "lock:"
	if lock.Shared {
		op = "lock-shared:"
	}
	l.s.ops = append(l.s.ops, op+lock.Key)
	return nil
}

type bookingRepo struct{ s *Store }

func (r bookingRepo) Create(_ context.Context, _ sqlc.DBTX, b *booking.Booking) error {
	if err := r.s.fail("booking.create"); err != nil {
		return err
	}
	for _, existing := range r.s.state.bookings {
		if existing.Reference() == b.Reference() {
			return duplicateKey("booking reference")
		}
	}
	r.s.state.bookings[b.ID()] = stored(b)
	return nil
}

func (r bookingRepo) Update(_ context.Context, _ sqlc.DBTX, b *booking.Booking) error {
	if err := r.s.fail("booking.update"); err != nil {
		return err
	}
	if _, ok := r.s.state.bookings[b.ID()]; !ok {
		return notFound("booking")
	}
	r.s.state.bookings[b.ID()] = stored(b)
	return nil
}

func (r bookingRepo) Delete(_ context.Context, _ sqlc.DBTX, id uuid.UUID) error {
	if _, ok := r.s.state.bookings[id]; !ok {
		return notFound("booking")
	}
	delete(r.s.state.bookings, id)
	delete(r.s.state.events, id)
	return nil
}

func (r bookingRepo) DeleteByGuest(_ context.Context, _ sqlc.DBTX, guestID uuid.UUID) error {
	for id, b := range r.s.state.bookings {
		if b.GuestID() == guestID {
			delete(r.s.state.bookings, id)
			delete(r.s.state.events, id)
		}
	}
	return nil
}

func (r bookingRepo) AppendEvents(_ context.Context, _ sqlc.DBTX, bookingID uuid.UUID, events []booking.Event) error {
	r.s.state.events[bookingID] = append(r.s.state.events[bookingID], events...)
	return nil
}

type guestRepo struct{ s *Store }

func (r guestRepo) Create(_ context.Context, _ sqlc.DBTX, g *guest.Guest) error {
	r.s.state.guests[g.ID()] = *g
	return nil
}

func (r guestRepo) Update(_ context.Context, _ sqlc.DBTX, g *guest.Guest) error {
	if _, ok := r.s.state.guests[g.ID()]; !ok {
		return notFound("guest")
	}
	r.s.state.guests[g.ID()] = *g
	return nil
}

func (r guestRepo) AdjustSpend(_ context.Context, _ sqlc.DBTX, guestID uuid.UUID, delta decimal.Decimal) error {
	if err := r.s.fail("guest.spend"); err != nil {
		return err
	}
	g, ok := r.s.state.guests[guestID]
	if !ok {
		return notFound("guest")
	}
	g.AdjustSpend(delta)
	r.s.state.guests[guestID] = g
	return nil
}

func (r guestRepo) Delete(_ context.Context, _ sqlc.DBTX, id uuid.UUID) error {
	if _, ok := r.s.state.guests[id]; !ok {
		return notFound("guest")
	}
	delete(r.s.state.guests, id)
	return nil
}

type propertyRepo struct{ s *Store }

func (r propertyRepo) Create(_ context.Context, _ sqlc.DBTX, p *property.Property) error {
	for _, existing := range r.s.state.properties {
		if existing.Code() == p.Code() {
			return duplicateKey("property code")
		}
	}
	r.s.state.properties[p.ID()] = *p
	return nil
}

func (r propertyRepo) UpdateStatus(_ context.Context, _ sqlc.DBTX, p *property.Property) error {
	if _, ok := r.s.state.properties[p.ID()]; !ok {
		return notFound("property")
	}
	r.s.state.properties[p.ID()] = *p
	return nil
}

func (r propertyRepo) CreateUnit(_ context.Context, _ sqlc.DBTX, u *property.Unit) error {
	for _, existing := range r.s.state.units {
		if existing.PropertyID() == u.PropertyID() && existing.UnitCode() == u.UnitCode() {
			return duplicateKey("unit code")
		}
	}
	r.s.state.units[u.ID()] = *u
	return nil
}

type cleaningRepo struct{ s *Store }

func (r cleaningRepo) Create(_ context.Context, _ sqlc.DBTX, t *task.CleaningTask) error {
	if err := r.s.fail("cleaning.create"); err != nil {
		return err
	}
	r.s.state.cleaning[t.ID()] = *t
	r.s.state.cleaningOrder = append(r.s.state.cleaningOrder, t.ID())
	return nil
}

func (r cleaningRepo) Update(_ context.Context, _ sqlc.DBTX, t *task.CleaningTask) error {
	if _, ok := r.s.state.cleaning[t.ID()]; !ok {
		return notFound("cleaning task")
	}
	r.s.state.cleaning[t.ID()] = *t
	return nil
}

type maintenanceRepo struct{ s *Store }

func (r maintenanceRepo) Create(_ context.Context, _ sqlc.DBTX, t *task.MaintenanceTask) error {
	r.s.state.maintenance[t.ID()] = *t
	return nil
}

func (r maintenanceRepo) Update(_ context.Context, _ sqlc.DBTX, t *task.MaintenanceTask) error {
	if _, ok := r.s.state.maintenance[t.ID()]; !ok {
		return notFound("maintenance task")
	}
	r.s.state.maintenance[t.ID()] = *t
	return nil
}

type financeRepo struct{ s *Store }

func (r financeRepo) Create(_ context.Context, _ sqlc.DBTX, rec *finance.Record) error {
	if err := r.s.fail("finance.create"); err != nil {
		return err
	}
	r.s.state.finance[rec.ID()] = *rec
	return nil
}

func (r financeRepo) UpdateSettlement(_ context.Context, _ sqlc.DBTX, rec *finance.Record) error {
	if _, ok := r.s.state.finance[rec.ID()]; !ok {
		return notFound("finance record")
	}
	r.s.state.finance[rec.ID()] = *rec
	return nil
}

func (r financeRepo) DeleteByBooking(_ context.Context, _ sqlc.DBTX, bookingID uuid.UUID) error {
	for id, rec := range r.s.state.finance {
		if rec.BookingID() != nil && *rec.BookingID() == bookingID {
			delete(r.s.state.finance, id)
		}
	}
	return nil
}

type automationRepo struct{ s *Store }

func (r automationRepo) Create(_ context.Context, _ sqlc.DBTX, rule *automation.Rule) error {
	if err := r.s.fail("automation.create"); err != nil {
		return err
	}
	r.s.state.automations[rule.ID()] = *rule
	return nil
}

func (r automationRepo) Update(_ context.Context, _ sqlc.DBTX, rule *automation.Rule) error {
	if _, ok := r.s.state.automations[rule.ID()]; !ok {
		return notFound("automation")
	}
	r.s.state.automations[rule.ID()] = *rule
	return nil
}

func (r automationRepo) Delete(_ context.Context, _ sqlc.DBTX, id uuid.UUID) error {
	if _, ok := r.s.state.automations[id]; !ok {
		return notFound("automation")
	}
	delete(r.s.state.automations, id)
	return nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) CreateJob(_ context.Context, _ sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.s.state.jobs = append(r.s.state.jobs, NotificationJob{Kind: kind, Topic: topic, Payload: slices.Clone(payload), RunAt: runAt})
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) UpdateLastLogin(_ context.Context, _ sqlc.DBTX, userID uuid.UUID, at time.Time) error {
	u, ok := r.s.state.users[userID]
	if !ok {
		return notFound("user")
	}
	r.s.state.users[userID] = *user.ReconstructUser(u.ID(), u.Email(), u.Name(), u.PasswordHash(), u.Role(), &at, u.IsActive(), u.CreatedAt(), at)
	return nil
}
