//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/tests/common/builder"
	"rental-backoffice/tests/common/memstore"

	"github.com/stretchr/testify/suite"
)

type GuestCommandsTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	clock    *clock.MockClock
	guests   commands.GuestCommands
	bookings commands.BookingCommands
	world    builder.Portfolio
}

func TestGuestCommandsSuite(t *testing.T) {
	suite.Run(t, new(GuestCommandsTestSuite))
}

func (s *GuestCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(time.Date(2023, time.December, 1, 9, 0, 0, 0, time.UTC))
	s.world = builder.NewPortfolio(s.clock.Now()).Seed(s.store)

	lifecycle := config.LifecycleConfig{BookingArchiveAfterDays: 90, GuestArchiveAfterDays: 365, TimeZone: "UTC"}
	s.guests = commands.NewGuestUseCase(s.store, s.clock, lifecycle)
	s.bookings = commands.NewBookingUseCase(s.store, s.clock, booking.NewReferenceGenerator(s.clock), &memstore.Publisher{}, &memstore.Documents{}, lifecycle)
}

func (s *GuestCommandsTestSuite) book(checkin, checkout time.Time) {
	_, err := s.bookings.Create(s.ctx, admin, commands.CreateBookingInput{
		PropertyID: s.world.Property.ID(),
		UnitID:     s.world.UnitAID(),
		GuestID:    s.world.Guest.ID(),
		Checkin:    checkin,
		Checkout:   checkout,
	})
	s.Require().NoError(err)
}

func (s *GuestCommandsTestSuite) TestCreateAndUpdate() {
	s.Run("success: create trims and stores the guest", func() {
		id, err := s.guests.Create(s.ctx, assistant, commands.CreateGuestInput{Name: "  Mei Tan ", Email: "mei@example.com"})
		s.Require().NoError(err)
		g, ok := s.store.Guest(id)
		s.Require().True(ok)
		s.Equal("Mei Tan", g.Name())
		s.True(g.TotalSpend().IsZero())
	})

	s.Run("error: name is required", func() {
		_, err := s.guests.Create(s.ctx, assistant, commands.CreateGuestInput{Name: " "})
		s.True(errs.Is(err, guest.ErrNameRequired))
	})

	s.Run("success: update applies only the given fields", func() {
		phone := "+351 900 000 000"
		blacklisted := true
		err := s.guests.Update(s.ctx, assistant, s.world.Guest.ID(), commands.UpdateGuestInput{Phone: &phone, Blacklisted: &blacklisted})
		s.Require().NoError(err)
		g, _ := s.store.Guest(s.world.Guest.ID())
		s.Equal(phone, g.Phone())
		s.True(g.Blacklisted())
		s.Equal("Ana Lima", g.Name())
	})

	s.Run("error: cleaners cannot manage guests", func() {
		_, err := s.guests.Create(s.ctx, cleaner, commands.CreateGuestInput{Name: "X"})
		s.Equal(errs.KindForbidden, errs.KindOf(err))
	})
}

func (s *GuestCommandsTestSuite) TestArchive() {
	cases := []struct {
		name  string
		setup func()
		errIs error
	}{
		{
			name:  "active booking blocks archiving",
			setup: func() { s.book(builder.Date(2024, time.January, 1), builder.Date(2024, time.January, 5)) },
			errIs: guest.ErrHasActiveBookings,
		},
		{
			name: "stay within the cooldown blocks archiving",
			setup: func() {
				s.book(builder.Date(2024, time.January, 1), builder.Date(2024, time.January, 5))
				s.clock.Set(builder.Date(2024, time.June, 1))
			},
			errIs: guest.ErrRecentStay,
		},
		{
			name: "old stay allows archiving",
			setup: func() {
				s.book(builder.Date(2024, time.January, 1), builder.Date(2024, time.January, 5))
				s.clock.Set(builder.Date(2025, time.February, 1))
			},
		},
		{
			name:  "guest without bookings",
			setup: func() {},
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.setup()
			err := s.guests.Archive(s.ctx, admin, s.world.Guest.ID())
			if tc.errIs != nil {
				s.True(errs.Is(err, tc.errIs), "got %v", err)
				s.Equal(errs.KindBusinessRule, errs.KindOf(err))
				return
			}
			s.Require().NoError(err)
			g, _ := s.store.Guest(s.world.Guest.ID())
			s.True(g.IsArchived())
		})
	}
}

func (s *GuestCommandsTestSuite) TestArchiveRestoreAndPermanentDelete() {
	s.book(builder.Date(2024, time.January, 1), builder.Date(2024, time.January, 5))
	s.clock.Set(builder.Date(2025, time.February, 1))
	id := s.world.Guest.ID()

	s.True(errs.Is(s.bookings.PermanentlyDelete(s.ctx, admin, commands.TableGuests, id), guest.ErrNotArchived))

	s.Require().NoError(s.guests.Archive(s.ctx, admin, id))
	s.True(errs.Is(s.guests.Archive(s.ctx, admin, id), guest.ErrAlreadyArchived))

	s.Require().NoError(s.guests.Restore(s.ctx, admin, id))
	s.Require().NoError(s.guests.Restore(s.ctx, admin, id))
	g, _ := s.store.Guest(id)
	s.False(g.IsArchived())

	s.Require().NoError(s.guests.Archive(s.ctx, admin, id))
	s.Require().NoError(s.bookings.PermanentlyDelete(s.ctx, admin, commands.TableGuests, id))
	_, ok := s.store.Guest(id)
	s.False(ok)
	s.Empty(s.store.Bookings())
}
