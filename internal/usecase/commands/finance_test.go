//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/tests/common/builder"
	"rental-backoffice/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceSettle(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC))

	seed := func(t *testing.T) (*memstore.Store, uuid.UUID) {
		t.Helper()
		store := memstore.New()
		world := builder.NewPortfolio(clk.Now()).Seed(store)
		cleaning, err := task.NewCleaningTask(task.NewCleaningParams{
			PropertyID:    world.Property.ID(),
			ScheduledDate: clk.Now(),
		}, clk.Now())
		require.NoError(t, err)
		rec, err := finance.NewCleaningExpense(cleaning, decimal.NewFromInt(60), "EUR", clk.Now())
		require.NoError(t, err)
		store.AddFinanceRecord(rec)
		return store, rec.ID()
	}

	t.Run("success: settle records the payment method", func(t *testing.T) {
		store, id := seed(t)
		uc := commands.NewFinanceUseCase(store, clk)
		method := " bank transfer "

		require.NoError(t, uc.Settle(ctx, assistant, id, commands.SettleFinanceInput{Status: "paid", PaymentMethod: &method}))

		records := store.FinanceRecords()
		require.Len(t, records, 1)
		assert.Equal(t, finance.StatusPaid, records[0].Status())
		require.NotNil(t, records[0].PaymentMethod())
		assert.Equal(t, "bank transfer", *records[0].PaymentMethod())
		assert.True(t, decimal.NewFromInt(60).Equal(records[0].Amount()))
	})

	t.Run("error: unknown status", func(t *testing.T) {
		store, id := seed(t)
		err := commands.NewFinanceUseCase(store, clk).Settle(ctx, admin, id, commands.SettleFinanceInput{Status: "refunded"})
		assert.True(t, errs.Is(err, finance.ErrInvalidStatus))
	})

	t.Run("error: missing record", func(t *testing.T) {
		store, _ := seed(t)
		err := commands.NewFinanceUseCase(store, clk).Settle(ctx, admin, uuid.New(), commands.SettleFinanceInput{Status: "paid"})
		assert.True(t, errs.Is(err, commands.ErrFinanceNotFound))
		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})

	t.Run("error: field staff cannot settle", func(t *testing.T) {
		store, id := seed(t)
		err := commands.NewFinanceUseCase(store, clk).Settle(ctx, cleaner, id, commands.SettleFinanceInput{Status: "paid"})
		assert.Equal(t, errs.KindForbidden, errs.KindOf(err))
	})
}
