//go:build unit

package finance_test

import (
	"testing"
	"time"

	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func TestNewBookingRevenue(t *testing.T) {
	cases := []struct {
		paymentStatus string
		want          finance.Status
	}{
		{"pending", finance.StatusPending},
		{"partial", finance.StatusPending},
		{"paid", finance.StatusPaid},
	}
	for _, c := range cases {
		t.Run(c.paymentStatus, func(t *testing.T) {
			b := builder.NewBookingBuilder().WithPaymentStatus(c.paymentStatus).MustBuildDomain()
			rec, err := finance.NewBookingRevenue(b, now)
			require.NoError(t, err)

			assert.Equal(t, finance.TypeRevenue, rec.Type())
			assert.Equal(t, finance.CategoryBooking, rec.Category())
			assert.True(t, decimal.NewFromInt(400).Equal(rec.Amount()))
			assert.Equal(t, c.want, rec.Status())
			assert.Equal(t, b.ID(), *rec.BookingID())
			assert.Equal(t, b.GuestID(), *rec.GuestID())
			assert.Equal(t, b.Checkin(), rec.Date())
		})
	}
}

func TestTaskExpenses(t *testing.T) {
	ct, err := task.NewCleaningTask(task.NewCleaningParams{PropertyID: uuid.New(), ScheduledDate: now}, now)
	require.NoError(t, err)
	rec, err := finance.NewCleaningExpense(ct, decimal.NewFromInt(60), "", now)
	require.NoError(t, err)
	assert.Equal(t, finance.TypeExpense, rec.Type())
	assert.Equal(t, finance.CategoryCleaning, rec.Category())
	assert.Equal(t, "USD", rec.Currency())
	assert.Equal(t, ct.ID(), *rec.CleaningTaskID())

	mt, err := task.NewMaintenanceTask(task.NewMaintenanceParams{PropertyID: uuid.New(), Title: "AC service"}, now)
	require.NoError(t, err)
	rec, err = finance.NewMaintenanceExpense(mt, decimal.NewFromInt(200), "EUR", now)
	require.NoError(t, err)
	assert.Equal(t, finance.CategoryMaintenance, rec.Category())
	assert.Equal(t, mt.ID(), *rec.MaintenanceTaskID())

	_, err = finance.NewMaintenanceExpense(mt, decimal.NewFromInt(-1), "EUR", now)
	require.ErrorIs(t, err, finance.ErrNegativeAmount)
}

func TestSettle(t *testing.T) {
	b := builder.NewBookingBuilder().MustBuildDomain()
	rec, err := finance.NewBookingRevenue(b, now)
	require.NoError(t, err)

	method := " card "
	require.NoError(t, rec.Settle(finance.StatusPaid, &method, now))
	assert.Equal(t, finance.StatusPaid, rec.Status())
	assert.Equal(t, "card", *rec.PaymentMethod())

	require.ErrorIs(t, rec.Settle(finance.Status("void"), nil, now), finance.ErrInvalidStatus)
}
