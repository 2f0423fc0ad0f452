//go:build unit

package export

import (
	"bytes"
	"testing"
	"time"

	"rental-backoffice/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() *queries.BookingView {
	unit := "A-1"
	deposit := decimal.NewFromInt(100)
	return &queries.BookingView{
		Reference:     "BK-LQX1Z2-AB12",
		PropertyName:  "Seaside",
		UnitCode:      &unit,
		GuestName:     "Ana Lima",
		CheckinDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		CheckoutDate:  time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		Nights:        4,
		TotalAmount:   decimal.NewFromInt(400),
		Currency:      "USD",
		PaymentStatus: "paid",
		DepositAmount: &deposit,
	}
}

func TestRender(t *testing.T) {
	out, err := NewVoucherRenderer("Rental Office").Render(sampleView())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestVoucherLines(t *testing.T) {
	want := [][2]string{
		{"Guest", "Ana Lima"},
		{"Property", "Seaside / A-1"},
		{"Check-in", "Mon 01 Jan 2024"},
		{"Check-out", "Fri 05 Jan 2024"},
		{"Nights", "4"},
		{"Total", "400.00 USD"},
		{"Payment", "paid"},
		{"Deposit", "100.00 USD"},
	}
	if diff := cmp.Diff(want, voucherLines(sampleView())); diff != "" {
		t.Errorf("voucher lines mismatch (-want +got):\n%s", diff)
	}
}
