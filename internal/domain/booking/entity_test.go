//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, 4, actual.Nights())
		assert.Equal(t, booking.StatePending, actual.State())
		assert.Equal(t, "USD", actual.Currency())
		assert.False(t, actual.IsArchived())
		require.Len(t, actual.PendingEvents(), 1)
		assert.Equal(t, booking.EventCreated, actual.PendingEvents()[0].Kind)
	})

	t.Run("stay period validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "same day checkin and checkout",
				mutate: func(b *builder.BookingBuilder) {
					b.WithStay(builder.Date(2024, 1, 1), builder.Date(2024, 1, 1))
				},
				errIs: booking.ErrInvalidStayPeriod,
			},
			{
				name: "checkout before checkin",
				mutate: func(b *builder.BookingBuilder) {
					b.WithStay(builder.Date(2024, 1, 5), builder.Date(2024, 1, 1))
				},
				errIs: booking.ErrInvalidStayPeriod,
			},
			{
				name:   "missing checkin",
				mutate: func(b *builder.BookingBuilder) { b.Checkin = time.Time{} },
				errIs:  booking.ErrMissingStayDate,
			},
			{
				name: "one night",
				mutate: func(b *builder.BookingBuilder) {
					b.WithStay(builder.Date(2024, 1, 1), builder.Date(2024, 1, 2))
				},
			},
		})
	})

	t.Run("amount and enum validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "negative total",
				mutate: func(b *builder.BookingBuilder) { b.WithTotal(-1) },
				errIs:  booking.ErrNegativeAmount,
			},
			{
				name:   "zero total",
				mutate: func(b *builder.BookingBuilder) { b.WithTotal(0) },
			},
			{
				name: "negative deposit",
				mutate: func(b *builder.BookingBuilder) {
					d := decimal.NewFromInt(-10)
					b.DepositAmount = &d
				},
				errIs: booking.ErrNegativeAmount,
			},
			{
				name:   "unknown channel",
				mutate: func(b *builder.BookingBuilder) { b.Channel = "vrbo" },
				errIs:  booking.ErrInvalidChannel,
			},
			{
				name:   "unknown payment status",
				mutate: func(b *builder.BookingBuilder) { b.PaymentStatus = "void" },
				errIs:  booking.ErrInvalidPaymentStatus,
			},
			{
				name:   "bad currency",
				mutate: func(b *builder.BookingBuilder) { b.Currency = "US" },
				errIs:  booking.ErrInvalidCurrency,
			},
			{
				name:   "lowercase currency is normalised",
				mutate: func(b *builder.BookingBuilder) { b.Currency = "eur" },
			},
			{
				name:   "empty reference",
				mutate: func(b *builder.BookingBuilder) { b.WithReference("  ") },
				errIs:  booking.ErrMissingReference,
			},
		})
	})

	t.Run("validation errors carry the validation kind", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().
			WithStay(builder.Date(2024, 1, 1), builder.Date(2024, 1, 1)).
			BuildDomain()
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}

func TestBookingCheckIn(t *testing.T) {
	now := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

	t.Run("before checkin date is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		err := b.CheckIn(builder.Date(2023, 12, 31), now, nil)
		require.ErrorIs(t, err, booking.ErrCheckInTooEarly)
		assert.Equal(t, errs.KindBusinessRule, errs.KindOf(err))
		assert.Equal(t, booking.StatePending, b.State())
	})

	t.Run("on checkin date succeeds and logs the transition", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		b.ClearPendingEvents()
		actor := uuid.New()

		require.NoError(t, b.CheckIn(builder.Date(2024, 1, 1), now, &actor))
		assert.Equal(t, booking.StateCheckedIn, b.State())
		require.NotNil(t, b.CheckedInAt())
		assert.Equal(t, now, *b.CheckedInAt())
		require.Len(t, b.PendingEvents(), 1)
		assert.Equal(t, booking.EventCheckedIn, b.PendingEvents()[0].Kind)
		assert.Equal(t, &actor, b.PendingEvents()[0].ActorID)
	})

	t.Run("after checkin date succeeds", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, b.CheckIn(builder.Date(2024, 1, 3), now, nil))
	})

	t.Run("second checkin is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, b.CheckIn(builder.Date(2024, 1, 1), now, nil))
		require.ErrorIs(t, b.CheckIn(builder.Date(2024, 1, 1), now, nil), booking.ErrAlreadyCheckedIn)
	})
}

func TestBookingCheckOut(t *testing.T) {
	now := time.Date(2024, 1, 5, 11, 0, 0, 0, time.UTC)

	t.Run("before checkout date is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.ErrorIs(t, b.CheckOut(builder.Date(2024, 1, 4), now, nil), booking.ErrCheckOutTooEarly)
	})

	t.Run("from checked in", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, b.CheckIn(builder.Date(2024, 1, 1), now, nil))
		require.NoError(t, b.CheckOut(builder.Date(2024, 1, 5), now, nil))
		assert.Equal(t, booking.StateCheckedOut, b.State())
	})

	t.Run("directly from pending", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, b.CheckOut(builder.Date(2024, 1, 6), now, nil))
		assert.Equal(t, booking.StateCheckedOut, b.State())
	})

	t.Run("twice is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, b.CheckOut(builder.Date(2024, 1, 5), now, nil))
		require.ErrorIs(t, b.CheckOut(builder.Date(2024, 1, 5), now, nil), booking.ErrAlreadyCheckedOut)
		require.ErrorIs(t, b.CheckIn(builder.Date(2024, 1, 5), now, nil), booking.ErrAlreadyCheckedOut)
	})
}

func TestBookingArchive(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	checkout := builder.Date(2024, 1, 5)

	cases := []struct {
		name      string
		daysAfter int
		errIs     error
	}{
		{name: "50 days after checkout", daysAfter: 50, errIs: booking.ErrArchiveTooEarly},
		{name: "exactly 90 days after checkout", daysAfter: 90, errIs: booking.ErrArchiveTooEarly},
		{name: "91 days after checkout", daysAfter: 91},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().MustBuildDomain()
			today := checkout.AddDate(0, 0, c.daysAfter)
			err := b.Archive(today, now, nil, 90)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				assert.False(t, b.IsArchived())
				return
			}
			require.NoError(t, err)
			assert.True(t, b.IsArchived())
		})
	}

	t.Run("second archive is rejected and restore is idempotent", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		actor := uuid.New()
		today := checkout.AddDate(0, 0, 100)

		require.NoError(t, b.Archive(today, now, &actor, 90))
		assert.Equal(t, &actor, b.ArchivedBy())
		require.ErrorIs(t, b.Archive(today, now, &actor, 90), booking.ErrAlreadyArchived)

		assert.True(t, b.Restore(now, &actor))
		assert.False(t, b.IsArchived())
		assert.Nil(t, b.ArchivedBy())
		assert.False(t, b.Restore(now, &actor))
	})

	t.Run("restore returns the booking to its previous stay state", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, b.CheckOut(checkout, now, nil))
		require.NoError(t, b.Archive(checkout.AddDate(0, 0, 91), now, nil, 90))
		b.Restore(now, nil)
		assert.Equal(t, booking.StateCheckedOut, b.State())
	})

	t.Run("archived bookings are read only", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, b.Archive(checkout.AddDate(0, 0, 91), now, nil, 90))

		period, err := booking.NewStayPeriod(builder.Date(2024, 2, 1), builder.Date(2024, 2, 3))
		require.NoError(t, err)
		_, err = b.Reschedule(period, now)
		require.ErrorIs(t, err, booking.ErrArchivedIsReadOnly)
		require.ErrorIs(t, b.CheckIn(checkout, now, nil), booking.ErrArchivedIsReadOnly)
		require.NoError(t, b.EnsurePermanentlyDeletable())
	})

	t.Run("permanent delete needs archive first", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.ErrorIs(t, b.EnsurePermanentlyDeletable(), booking.ErrNotArchived)
	})
}

func TestBookingUpdate(t *testing.T) {
	now := time.Date(2023, 12, 2, 0, 0, 0, 0, time.UTC)

	t.Run("reschedule recomputes nights", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		period, err := booking.NewStayPeriod(builder.Date(2024, 1, 1), builder.Date(2024, 1, 8))
		require.NoError(t, err)

		changed, err := b.Reschedule(period, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 7, b.Nights())
	})

	t.Run("same dates report no change", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		changed, err := b.Reschedule(b.Period(), now)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("total change returns the delta", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		total := decimal.NewFromInt(550)
		delta, err := b.ApplyDetails(booking.DetailsPatch{TotalAmount: &total}, now)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(150).Equal(delta))
		assert.True(t, total.Equal(b.TotalAmount()))
	})

	t.Run("deposit can be cleared", func(t *testing.T) {
		d := decimal.NewFromInt(100)
		b := builder.NewBookingBuilder().With(func(bb *builder.BookingBuilder) { bb.DepositAmount = &d }).MustBuildDomain()
		var cleared *decimal.Decimal
		_, err := b.ApplyDetails(booking.DetailsPatch{DepositAmount: &cleared}, now)
		require.NoError(t, err)
		assert.Nil(t, b.DepositAmount())
	})

	t.Run("invalid patch leaves the booking untouched", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		negative := decimal.NewFromInt(-5)
		_, err := b.ApplyDetails(booking.DetailsPatch{TotalAmount: &negative}, now)
		require.ErrorIs(t, err, booking.ErrNegativeAmount)
		assert.True(t, decimal.NewFromInt(400).Equal(b.TotalAmount()))
	})
}

func TestBookingEventData(t *testing.T) {
	b := builder.NewBookingBuilder().WithPaymentStatus("paid").MustBuildDomain()
	data := b.EventData()

	assert.Equal(t, b.ID().String(), data["bookingId"])
	assert.Equal(t, "paid", data["paymentStatus"])
	assert.Equal(t, "2024-01-01", data["checkinDate"])
	assert.Equal(t, "2024-01-05", data["checkoutDate"])
	assert.Equal(t, 4, data["nights"])
	assert.Equal(t, "400", data["totalAmount"])
	assert.Contains(t, data, "unitId")

	noUnit := builder.NewBookingBuilder().WithoutUnit().MustBuildDomain()
	assert.NotContains(t, noUnit.EventData(), "unitId")
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
