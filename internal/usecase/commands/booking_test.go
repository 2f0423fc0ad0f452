//go:build unit

package commands_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/internal/usecase/shared"
	"rental-backoffice/tests/common/builder"
	"rental-backoffice/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var (
	admin     = shared.Actor{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
	assistant = shared.Actor{ID: uuid.New(), Email: "desk@example.com", Role: user.RoleAssistant}
	cleaner   = shared.Actor{ID: uuid.New(), Email: "clean@example.com", Role: user.RoleCleaner}
)

type BookingCommandsTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memstore.Store
	clock     *clock.MockClock
	publisher *memstore.Publisher
	documents *memstore.Documents
	world     builder.Portfolio
	uc        commands.BookingCommands
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(time.Date(2023, time.December, 20, 10, 0, 0, 0, time.UTC))
	s.publisher = &memstore.Publisher{}
	s.documents = &memstore.Documents{}
	s.world = builder.NewPortfolio(s.clock.Now()).Seed(s.store)

	lifecycle := config.LifecycleConfig{BookingArchiveAfterDays: 90, GuestArchiveAfterDays: 365, TimeZone: "UTC"}
	s.uc = commands.NewBookingUseCase(
		s.store,
		s.clock,
		booking.NewReferenceGenerator(s.clock),
		s.publisher,
		s.documents,
		lifecycle,
	)
}

func (s *BookingCommandsTestSuite) input(checkin, checkout time.Time, total int64) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		PropertyID:  s.world.Property.ID(),
		UnitID:      s.world.UnitAID(),
		GuestID:     s.world.Guest.ID(),
		Channel:     "airbnb",
		Checkin:     checkin,
		Checkout:    checkout,
		TotalAmount: decimal.NewFromInt(total),
	}
}

func (s *BookingCommandsTestSuite) create(checkin, checkout time.Time, total int64) *commands.CreateBookingResult {
	res, err := s.uc.Create(s.ctx, assistant, s.input(checkin, checkout, total))
	s.Require().NoError(err)
	return res
}

func (s *BookingCommandsTestSuite) spend() decimal.Decimal {
	g, ok := s.store.Guest(s.world.Guest.ID())
	s.Require().True(ok)
	return g.TotalSpend()
}

func jan(d int) time.Time { return builder.Date(2024, time.January, d) }

// ================================================================================
// Create
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("success: nights, revenue and guest spend follow the booking", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)

		b, ok := s.store.Booking(res.BookingID)
		s.Require().True(ok)
		s.Equal(4, b.Nights())
		s.Equal(res.Reference, b.Reference())
		s.Equal(booking.StatePending, b.State())
		s.True(decimal.NewFromInt(400).Equal(s.spend()))

		records := s.store.FinanceRecords()
		s.Require().Len(records, 1)
		s.Equal(finance.TypeRevenue, records[0].Type())
		s.Equal(finance.StatusPending, records[0].Status())
		s.True(decimal.NewFromInt(400).Equal(records[0].Amount()))

		events := s.store.Events(res.BookingID)
		s.Require().Len(events, 1)
		s.Equal(booking.EventCreated, events[0].Kind)
		s.Equal([]string{booking.TriggerCreated}, s.publisher.Triggers())
		s.Nil(res.CleaningTask)
	})

	s.Run("success: bookings without a channel are direct", func() {
		s.SetupTest()
		in := s.input(jan(1), jan(5), 400)
		in.Channel = ""
		res, err := s.uc.Create(s.ctx, admin, in)
		s.Require().NoError(err)
		b, _ := s.store.Booking(res.BookingID)
		s.Equal(booking.ChannelDirect, b.Channel())
	})

	s.Run("success: paid booking gets a paid revenue record", func() {
		s.SetupTest()
		in := s.input(jan(1), jan(5), 400)
		in.PaymentStatus = "paid"
		_, err := s.uc.Create(s.ctx, admin, in)
		s.Require().NoError(err)
		s.Equal(finance.StatusPaid, s.store.FinanceRecords()[0].Status())
	})

	s.Run("success: cleaning task scheduled on the checkout date", func() {
		s.SetupTest()
		in := s.input(jan(1), jan(5), 400)
		in.CreateCleaningTask = true
		res, err := s.uc.Create(s.ctx, admin, in)
		s.Require().NoError(err)
		s.Require().NotNil(res.CleaningTask)

		tasks := s.store.CleaningTasks()
		s.Require().Len(tasks, 1)
		s.Equal(jan(5), tasks[0].ScheduledDate())
		s.Equal(commands.CreatedCleaningTask{
			ID:            tasks[0].ID(),
			CleaningID:    tasks[0].Code(),
			ScheduledDate: jan(5),
			Status:        string(tasks[0].Status()),
		}, *res.CleaningTask)
		s.Equal(res.BookingID, *tasks[0].BookingID())
	})

	s.Run("success: back-to-back stays never conflict", func() {
		s.SetupTest()
		s.create(jan(1), jan(5), 400)
		s.create(jan(5), jan(8), 300)
		s.Len(s.store.Bookings(), 2)
	})

	s.Run("success: another unit of the same property is free", func() {
		s.SetupTest()
		s.create(jan(1), jan(5), 400)
		in := s.input(jan(3), jan(6), 300)
		in.UnitID = s.world.UnitBID()
		_, err := s.uc.Create(s.ctx, admin, in)
		s.NoError(err)
	})

	s.Run("error: overlapping stay on the same unit is a conflict", func() {
		s.SetupTest()
		first := s.create(jan(1), jan(5), 400)

		_, err := s.uc.Create(s.ctx, admin, s.input(jan(3), jan(6), 300))
		s.Require().Error(err)
		s.True(errs.Is(err, booking.ErrBookingConflict))
		s.Equal(errs.KindConflict, errs.KindOf(err))
		s.Contains(err.Error(), first.Reference)
		s.Len(s.store.Bookings(), 1)
		s.True(decimal.NewFromInt(400).Equal(s.spend()))
	})

	s.Run("error: whole-property booking conflicts with a unit booking", func() {
		s.SetupTest()
		s.create(jan(1), jan(5), 400)
		in := s.input(jan(2), jan(3), 100)
		in.UnitID = nil
		_, err := s.uc.Create(s.ctx, admin, in)
		s.True(errs.Is(err, booking.ErrBookingConflict))
	})

	s.Run("error: validation and lookup failures", func() {
		cases := []struct {
			name       string
			mutate     func(in *commands.CreateBookingInput)
			actor      shared.Actor
			errIs      error
			expectKind errs.Kind
		}{
			{
				name:       "same-day checkout",
				mutate:     func(in *commands.CreateBookingInput) { in.Checkin, in.Checkout = jan(10), jan(10) },
				actor:      admin,
				errIs:      booking.ErrInvalidStayPeriod,
				expectKind: errs.KindValidation,
			},
			{
				name:       "negative total",
				mutate:     func(in *commands.CreateBookingInput) { in.TotalAmount = decimal.NewFromInt(-1) },
				actor:      admin,
				errIs:      booking.ErrNegativeAmount,
				expectKind: errs.KindValidation,
			},
			{
				name:       "unknown channel",
				mutate:     func(in *commands.CreateBookingInput) { in.Channel = "fax" },
				actor:      admin,
				errIs:      booking.ErrInvalidChannel,
				expectKind: errs.KindValidation,
			},
			{
				name:       "unknown property",
				mutate:     func(in *commands.CreateBookingInput) { in.PropertyID = uuid.New() },
				actor:      admin,
				errIs:      commands.ErrPropertyNotFound,
				expectKind: errs.KindNotFound,
			},
			{
				name:       "unknown guest",
				mutate:     func(in *commands.CreateBookingInput) { in.GuestID = uuid.New() },
				actor:      admin,
				errIs:      commands.ErrGuestNotFound,
				expectKind: errs.KindNotFound,
			},
			{
				name: "unit of another property",
				mutate: func(in *commands.CreateBookingInput) {
					other := builder.NewPortfolio(time.Now())
					s.store.AddUnit(other.UnitA)
					in.UnitID = other.UnitAID()
				},
				actor:      admin,
				errIs:      property.ErrUnitNotInProperty,
				expectKind: errs.KindValidation,
			},
			{
				name:       "cleaner may not book",
				mutate:     func(in *commands.CreateBookingInput) {},
				actor:      cleaner,
				errIs:      shared.ErrRoleNotAllowed,
				expectKind: errs.KindForbidden,
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.SetupTest()
				in := s.input(jan(1), jan(5), 400)
				tc.mutate(&in)
				_, err := s.uc.Create(s.ctx, tc.actor, in)
				s.Require().Error(err)
				s.True(errs.Is(err, tc.errIs), "got %v", err)
				s.Equal(tc.expectKind, errs.KindOf(err))
				s.Empty(s.store.Bookings())
				s.Empty(s.publisher.Events())
			})
		}
	})

	s.Run("error: a failing side effect rolls the whole create back", func() {
		s.SetupTest()
		s.store.FailOn("finance.create", errs.New("disk full"))
		in := s.input(jan(1), jan(5), 400)
		in.CreateCleaningTask = true

		_, err := s.uc.Create(s.ctx, admin, in)
		s.Require().Error(err)
		s.Empty(s.store.Bookings())
		s.Empty(s.store.CleaningTasks())
		s.True(s.spend().IsZero())
		s.Empty(s.publisher.Events())
	})

	s.Run("scope lock is taken before the conflict read", func() {
		s.SetupTest()
		s.create(jan(1), jan(5), 400)
		unitKey := booking.NewScope(s.world.Property.ID(), s.world.UnitAID()).Key()
		propertyKey := booking.NewScope(s.world.Property.ID(), nil).Key()
		s.Equal([]string{"lock-shared:" + propertyKey, "lock:" + unitKey, "overlap:" + unitKey}, s.store.Ops())
	})

	s.Run("unit and whole-property writers meet on the property lock", func() {
		s.SetupTest()
		s.create(jan(1), jan(5), 400)
		in := s.input(jan(3), jan(6), 300)
		in.UnitID = nil

		_, err := s.uc.Create(s.ctx, admin, in)
		s.Require().Error(err)
		s.Equal(errs.KindConflict, errs.KindOf(err))

		propertyKey := booking.NewScope(s.world.Property.ID(), nil).Key()
		unitKey := booking.NewScope(s.world.Property.ID(), s.world.UnitAID()).Key()
		s.Equal([]string{
			"lock-shared:" + propertyKey, "lock:" + unitKey, "overlap:" + unitKey,
			"lock:" + propertyKey, "overlap:" + propertyKey,
		}, s.store.Ops())
	})
}

// ================================================================================
// Update
// ================================================================================

func (s *BookingCommandsTestSuite) TestUpdate() {
	s.Run("success: new dates recompute nights", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		checkout := jan(8)
		s.Require().NoError(s.uc.Update(s.ctx, assistant, res.BookingID, commands.UpdateBookingInput{Checkout: &checkout}))

		b, _ := s.store.Booking(res.BookingID)
		s.Equal(7, b.Nights())
		kinds := eventKinds(s.store.Events(res.BookingID))
		s.Equal([]booking.EventKind{booking.EventCreated, booking.EventUpdated}, kinds)
	})

	s.Run("success: moving within its own span does not conflict with itself", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		checkin := jan(2)
		s.NoError(s.uc.Update(s.ctx, assistant, res.BookingID, commands.UpdateBookingInput{Checkin: &checkin}))
	})

	s.Run("success: no automation is emitted on update", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		notes := "late arrival"
		s.Require().NoError(s.uc.Update(s.ctx, assistant, res.BookingID, commands.UpdateBookingInput{Notes: &notes}))
		s.Equal([]string{booking.TriggerCreated}, s.publisher.Triggers())
	})

	s.Run("error: moving onto another stay is a conflict", func() {
		s.SetupTest()
		s.create(jan(1), jan(5), 400)
		second := s.create(jan(10), jan(12), 200)
		checkin := jan(4)
		err := s.uc.Update(s.ctx, assistant, second.BookingID, commands.UpdateBookingInput{Checkin: &checkin})
		s.True(errs.Is(err, booking.ErrBookingConflict))

		b, _ := s.store.Booking(second.BookingID)
		s.Equal(jan(10), b.Checkin())
	})

	s.Run("error: checkout before checkin", func() {
		s.SetupTest()
		res := s.create(jan(5), jan(8), 300)
		checkout := jan(4)
		err := s.uc.Update(s.ctx, assistant, res.BookingID, commands.UpdateBookingInput{Checkout: &checkout})
		s.Equal(errs.KindValidation, errs.KindOf(err))
	})

	s.Run("error: unknown booking", func() {
		s.SetupTest()
		err := s.uc.Update(s.ctx, assistant, uuid.New(), commands.UpdateBookingInput{})
		s.True(errs.Is(err, commands.ErrBookingNotFound))
	})
}

// ================================================================================
// Guest spend reconciliation
// ================================================================================

func (s *BookingCommandsTestSuite) TestSpendReconciliation() {
	s.Run("total change adjusts by the delta", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		total := decimal.NewFromInt(550)
		s.Require().NoError(s.uc.Update(s.ctx, assistant, res.BookingID, commands.UpdateBookingInput{TotalAmount: &total}))
		s.True(decimal.NewFromInt(550).Equal(s.spend()))
	})

	s.Run("guest change moves the whole amount", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		other := builder.NewGuest("Bo Chen", s.clock.Now())
		s.store.AddGuest(other)
		otherID := other.ID()

		s.Require().NoError(s.uc.Update(s.ctx, assistant, res.BookingID, commands.UpdateBookingInput{GuestID: &otherID}))
		s.True(s.spend().IsZero())
		moved, _ := s.store.Guest(otherID)
		s.True(decimal.NewFromInt(400).Equal(moved.TotalSpend()))
	})

	s.Run("create then delete returns spend to zero and drops revenue", func() {
		s.SetupTest()
		first := s.create(jan(1), jan(5), 400)
		s.create(jan(6), jan(9), 250)
		s.True(decimal.NewFromInt(650).Equal(s.spend()))

		s.Require().NoError(s.uc.Delete(s.ctx, admin, first.BookingID))
		s.True(decimal.NewFromInt(250).Equal(s.spend()))
		s.Len(s.store.FinanceRecords(), 1)
	})

	s.Run("assistant cannot delete", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		err := s.uc.Delete(s.ctx, assistant, res.BookingID)
		s.Equal(errs.KindForbidden, errs.KindOf(err))
	})
}

// ================================================================================
// Check-in / check-out
// ================================================================================

func (s *BookingCommandsTestSuite) TestCheckInCheckOut() {
	s.Run("error: check-in before the checkin date", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.clock.Set(time.Date(2023, time.December, 31, 12, 0, 0, 0, time.UTC))

		err := s.uc.CheckIn(s.ctx, assistant, res.BookingID)
		s.True(errs.Is(err, booking.ErrCheckInTooEarly))
		s.Equal(errs.KindBusinessRule, errs.KindOf(err))
	})

	s.Run("success: check-in on the checkin date records an event and emits", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.clock.Set(time.Date(2024, time.January, 1, 15, 0, 0, 0, time.UTC))

		s.Require().NoError(s.uc.CheckIn(s.ctx, assistant, res.BookingID))
		b, _ := s.store.Booking(res.BookingID)
		s.Equal(booking.StateCheckedIn, b.State())
		s.Contains(eventKinds(s.store.Events(res.BookingID)), booking.EventCheckedIn)
		s.Equal([]string{booking.TriggerCreated, booking.TriggerCheckIn}, s.publisher.Triggers())

		err := s.uc.CheckIn(s.ctx, assistant, res.BookingID)
		s.True(errs.Is(err, booking.ErrAlreadyCheckedIn))
	})

	s.Run("success: check-out pulls the linked cleaning forward", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		ct, err := task.NewCleaningTask(task.NewCleaningParams{
			PropertyID:    s.world.Property.ID(),
			UnitID:        s.world.UnitAID(),
			BookingID:     &res.BookingID,
			ScheduledDate: jan(9),
		}, s.clock.Now())
		s.Require().NoError(err)
		s.store.AddCleaningTask(ct)

		s.clock.Set(time.Date(2024, time.January, 6, 9, 0, 0, 0, time.UTC))
		s.Require().NoError(s.uc.CheckOut(s.ctx, assistant, res.BookingID))

		b, _ := s.store.Booking(res.BookingID)
		s.Equal(booking.StateCheckedOut, b.State())
		s.Equal(jan(6), s.store.CleaningTasks()[0].ScheduledDate())
		s.Equal([]string{booking.TriggerCreated, booking.TriggerCheckOut}, s.publisher.Triggers())

		err = s.uc.CheckOut(s.ctx, assistant, res.BookingID)
		s.True(errs.Is(err, booking.ErrAlreadyCheckedOut))
	})

	s.Run("success: late check-out moves the auto-created cleaning to today", func() {
		s.SetupTest()
		in := s.input(jan(1), jan(5), 400)
		in.CreateCleaningTask = true
		res, err := s.uc.Create(s.ctx, admin, in)
		s.Require().NoError(err)
		s.Require().Len(s.store.CleaningTasks(), 1)
		s.Equal(jan(5), s.store.CleaningTasks()[0].ScheduledDate())

		s.clock.Set(time.Date(2024, time.January, 8, 11, 0, 0, 0, time.UTC))
		s.Require().NoError(s.uc.CheckOut(s.ctx, assistant, res.BookingID))

		s.Equal(jan(8), s.store.CleaningTasks()[0].ScheduledDate())
	})

	s.Run("error: check-out before the checkout date", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.clock.Set(time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC))
		err := s.uc.CheckOut(s.ctx, assistant, res.BookingID)
		s.True(errs.Is(err, booking.ErrCheckOutTooEarly))
	})
}

// ================================================================================
// Archive / restore / permanent delete
// ================================================================================

func (s *BookingCommandsTestSuite) TestArchive() {
	s.Run("error: 50 days after checkout is too early", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.clock.Set(jan(5).AddDate(0, 0, 50))
		err := s.uc.Archive(s.ctx, admin, res.BookingID)
		s.True(errs.Is(err, booking.ErrArchiveTooEarly))
	})

	s.Run("error: exactly 90 days is still too early", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.clock.Set(jan(5).AddDate(0, 0, 90))
		s.True(errs.Is(s.uc.Archive(s.ctx, admin, res.BookingID), booking.ErrArchiveTooEarly))
	})

	s.Run("success: 91 days archives once, the second attempt is rejected", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.clock.Set(jan(5).AddDate(0, 0, 91))

		s.Require().NoError(s.uc.Archive(s.ctx, admin, res.BookingID))
		b, _ := s.store.Booking(res.BookingID)
		s.True(b.IsArchived())
		s.Equal(admin.ID, *b.ArchivedBy())

		err := s.uc.Archive(s.ctx, admin, res.BookingID)
		s.True(errs.Is(err, booking.ErrAlreadyArchived))
	})

	s.Run("restore of a live booking is a no-op", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.Require().NoError(s.uc.Restore(s.ctx, admin, res.BookingID))
		s.Equal([]booking.EventKind{booking.EventCreated}, eventKinds(s.store.Events(res.BookingID)))
	})

	s.Run("restore brings back the pre-archive state", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.clock.Set(jan(5).AddDate(0, 0, 120))
		s.Require().NoError(s.uc.CheckOut(s.ctx, assistant, res.BookingID))
		s.Require().NoError(s.uc.Archive(s.ctx, admin, res.BookingID))
		s.Require().NoError(s.uc.Restore(s.ctx, admin, res.BookingID))

		b, _ := s.store.Booking(res.BookingID)
		s.False(b.IsArchived())
		s.Equal(booking.StateCheckedOut, b.State())
	})

	s.Run("archived bookings are read-only", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.clock.Set(jan(5).AddDate(0, 0, 91))
		s.Require().NoError(s.uc.Archive(s.ctx, admin, res.BookingID))
		notes := "x"
		err := s.uc.Update(s.ctx, admin, res.BookingID, commands.UpdateBookingInput{Notes: &notes})
		s.True(errs.Is(err, booking.ErrArchivedIsReadOnly))
	})
}

func (s *BookingCommandsTestSuite) TestPermanentlyDelete() {
	s.Run("bookings must be archived first", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		err := s.uc.PermanentlyDelete(s.ctx, admin, commands.TableBookings, res.BookingID)
		s.True(errs.Is(err, booking.ErrNotArchived))
	})

	s.Run("archived booking is removed with compensation", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		s.clock.Set(jan(5).AddDate(0, 0, 91))
		s.Require().NoError(s.uc.Archive(s.ctx, admin, res.BookingID))

		s.Require().NoError(s.uc.PermanentlyDelete(s.ctx, admin, commands.TableBookings, res.BookingID))
		s.Empty(s.store.Bookings())
		s.Empty(s.store.FinanceRecords())
		s.True(s.spend().IsZero())
	})

	s.Run("properties are never hard deleted", func() {
		s.SetupTest()
		err := s.uc.PermanentlyDelete(s.ctx, admin, commands.TableProperties, s.world.Property.ID())
		s.True(errs.Is(err, property.ErrHardDelete))
	})

	s.Run("unknown table", func() {
		s.SetupTest()
		err := s.uc.PermanentlyDelete(s.ctx, admin, "payments", uuid.New())
		s.Equal(errs.KindValidation, errs.KindOf(err))
	})
}

// ================================================================================
// Conflict check and documents
// ================================================================================

func (s *BookingCommandsTestSuite) TestCheckConflict() {
	s.SetupTest()
	res := s.create(jan(1), jan(5), 400)

	got, err := s.uc.CheckConflict(s.ctx, assistant, commands.ConflictCheckInput{
		PropertyID: s.world.Property.ID(),
		UnitID:     s.world.UnitAID(),
		Checkin:    jan(4),
		Checkout:   jan(7),
	})
	s.Require().NoError(err)
	s.True(got.HasConflict)
	s.Equal([]string{res.Reference}, got.References())

	excluded, err := s.uc.CheckConflict(s.ctx, assistant, commands.ConflictCheckInput{
		PropertyID:       s.world.Property.ID(),
		UnitID:           s.world.UnitAID(),
		Checkin:          jan(4),
		Checkout:         jan(7),
		ExcludeBookingID: &res.BookingID,
	})
	s.Require().NoError(err)
	s.False(excluded.HasConflict)
}

func (s *BookingCommandsTestSuite) TestAttachDocument() {
	s.Run("success: stored under the booking reference", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		uri, err := s.uc.AttachDocument(s.ctx, assistant, res.BookingID, commands.DocumentUpload{
			Filename:    "../passport scan.pdf",
			ContentType: "application/pdf",
			Body:        bytes.NewBufferString("%PDF-1.4"),
			Size:        8,
		})
		s.Require().NoError(err)
		s.Contains(uri, "bookings/"+res.Reference+"/")
		s.Contains(uri, "passport_scan.pdf")

		b, _ := s.store.Booking(res.BookingID)
		s.Equal([]string{uri}, b.Documents())
	})

	s.Run("error: empty upload", func() {
		s.SetupTest()
		res := s.create(jan(1), jan(5), 400)
		_, err := s.uc.AttachDocument(s.ctx, assistant, res.BookingID, commands.DocumentUpload{Filename: "a.pdf"})
		s.True(errs.Is(err, commands.ErrDocumentRequired))
	})
}

func eventKinds(events []booking.Event) []booking.EventKind {
	kinds := make([]booking.EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
