//go:build unit || e2e

package builder

import (
	"time"

	"rental-backoffice/internal/domain/booking"
	reqdto "rental-backoffice/internal/handler/dto/request"
	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	Reference      string
	PropertyID     uuid.UUID
	UnitID         *uuid.UUID
	GuestID        uuid.UUID
	Channel        string
	Checkin        time.Time
	Checkout       time.Time
	TotalAmount    decimal.Decimal
	Currency       string
	PaymentStatus  string
	DepositAmount  *decimal.Decimal
	Notes          string
	CreateCleaning bool
	Now            time.Time
}

func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewBookingBuilder() *BookingBuilder {
	unitID := uuid.New()
	return &BookingBuilder{
		Reference:     "BK-TEST-0001",
		PropertyID:    uuid.New(),
		UnitID:        &unitID,
		GuestID:       uuid.New(),
		Channel:       "direct",
		Checkin:       Date(2024, time.January, 1),
		Checkout:      Date(2024, time.January, 5),
		TotalAmount:   decimal.NewFromInt(400),
		Currency:      "USD",
		PaymentStatus: "pending",
		Now:           time.Date(2023, time.December, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStay(checkin, checkout time.Time) *BookingBuilder {
	b.Checkin, b.Checkout = checkin, checkout
	return b
}

func (b *BookingBuilder) WithoutUnit() *BookingBuilder {
	b.UnitID = nil
	return b
}

func (b *BookingBuilder) WithTotal(amount int64) *BookingBuilder {
	b.TotalAmount = decimal.NewFromInt(amount)
	return b
}

func (b *BookingBuilder) WithReference(ref string) *BookingBuilder {
	b.Reference = ref
	return b
}

func (b *BookingBuilder) WithPaymentStatus(s string) *BookingBuilder {
	b.PaymentStatus = s
	return b
}

func (b *BookingBuilder) BuildParams() (booking.NewBookingParams, error) {
	period, err := booking.NewStayPeriod(b.Checkin, b.Checkout)
	if err != nil {
		return booking.NewBookingParams{}, err
	}
	channel, err := booking.NewChannel(b.Channel)
	if err != nil {
		return booking.NewBookingParams{}, err
	}
	status, err := booking.NewPaymentStatus(b.PaymentStatus)
	if err != nil {
		return booking.NewBookingParams{}, err
	}
	return booking.NewBookingParams{
		PropertyID:    b.PropertyID,
		UnitID:        b.UnitID,
		GuestID:       b.GuestID,
		Channel:       channel,
		Period:        period,
		TotalAmount:   b.TotalAmount,
		Currency:      b.Currency,
		PaymentStatus: status,
		DepositAmount: b.DepositAmount,
		Notes:         b.Notes,
	}, nil
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	p, err := b.BuildParams()
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(p, b.Reference, nil, b.Now)
}

// MustBuildDomain is for fixtures where the builder defaults are known valid.
func (b *BookingBuilder) MustBuildDomain() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}

func (b *BookingBuilder) BuildCreateRequest() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PropertyID:    b.PropertyID,
		UnitID:        b.UnitID,
		GuestID:       b.GuestID,
		Channel:       b.Channel,
		CheckinDate:   &reqdto.Date{Time: b.Checkin},
		CheckoutDate:  &reqdto.Date{Time: b.Checkout},
		TotalAmount:   b.TotalAmount,
		Currency:      b.Currency,
		PaymentStatus: b.PaymentStatus,
		DepositAmount: b.DepositAmount,
		Notes:         b.Notes,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	unitCode := "A"
	return &queries.BookingView{
		ID:             uuid.New(),
		Reference:      b.Reference,
		PropertyID:     b.PropertyID,
		PropertyCode:   "VILLA-1",
		PropertyName:   "Villa Serena",
		UnitID:         b.UnitID,
		UnitCode:       &unitCode,
		GuestID:        b.GuestID,
		GuestName:      "Ana Lima",
		GuestEmail:     "ana@example.com",
		Channel:        b.Channel,
		CheckinDate:    b.Checkin,
		CheckoutDate:   b.Checkout,
		Nights:         int32(b.Checkout.Sub(b.Checkin).Hours() / 24),
		TotalAmount:    b.TotalAmount,
		Currency:       b.Currency,
		PaymentStatus:  b.PaymentStatus,
		DepositAmount:  b.DepositAmount,
		Notes:          b.Notes,
		Documents:      []string{},
		LifecycleState: string(booking.StatePending),
		CreatedAt:      b.Now,
		UpdatedAt:      b.Now,
	}
}
