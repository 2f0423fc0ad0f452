//go:build unit

package guest_test

import (
	"testing"
	"time"

	"rental-backoffice/internal/domain/guest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuest(t *testing.T) *guest.Guest {
	t.Helper()
	g, err := guest.NewGuest(guest.Contact{Name: " Ada Lovelace ", Email: "ada@example.com"}, time.Now())
	require.NoError(t, err)
	return g
}

func TestNewGuest(t *testing.T) {
	g := newGuest(t)
	assert.Equal(t, "Ada Lovelace", g.Name())
	assert.True(t, g.TotalSpend().IsZero())

	_, err := guest.NewGuest(guest.Contact{Name: "   "}, time.Now())
	require.ErrorIs(t, err, guest.ErrNameRequired)
}

func TestGuestSpend(t *testing.T) {
	g := newGuest(t)
	g.AdjustSpend(decimal.NewFromInt(400))
	g.AdjustSpend(decimal.NewFromInt(250))
	g.AdjustSpend(decimal.NewFromInt(-400))
	assert.True(t, decimal.NewFromInt(250).Equal(g.TotalSpend()))
}

func TestGuestArchive(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := today.Add(9 * time.Hour)
	daysAgo := func(n int) *time.Time {
		d := today.AddDate(0, 0, -n)
		return &d
	}

	cases := []struct {
		name    string
		history guest.StayHistory
		errIs   error
	}{
		{name: "never stayed", history: guest.StayHistory{}},
		{name: "last stay over a year ago", history: guest.StayHistory{LastCheckout: daysAgo(400)}},
		{name: "stayed within the year", history: guest.StayHistory{LastCheckout: daysAgo(200)}, errIs: guest.ErrRecentStay},
		{name: "exactly 365 days", history: guest.StayHistory{LastCheckout: daysAgo(365)}, errIs: guest.ErrRecentStay},
		{name: "active booking", history: guest.StayHistory{ActiveBookingCount: 1}, errIs: guest.ErrHasActiveBookings},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newGuest(t)
			err := g.Archive(today, now, c.history, 365)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				assert.False(t, g.IsArchived())
				return
			}
			require.NoError(t, err)
			assert.True(t, g.IsArchived())
		})
	}

	t.Run("archive twice, restore, permanent delete rules", func(t *testing.T) {
		g := newGuest(t)
		require.ErrorIs(t, g.EnsurePermanentlyDeletable(guest.StayHistory{}), guest.ErrNotArchived)

		require.NoError(t, g.Archive(today, now, guest.StayHistory{}, 365))
		require.ErrorIs(t, g.Archive(today, now, guest.StayHistory{}, 365), guest.ErrAlreadyArchived)
		require.NoError(t, g.EnsurePermanentlyDeletable(guest.StayHistory{}))
		require.ErrorIs(t, g.EnsurePermanentlyDeletable(guest.StayHistory{ActiveBookingCount: 2}), guest.ErrHasActiveBookings)

		assert.True(t, g.Restore(now))
		assert.False(t, g.Restore(now))
	})
}
