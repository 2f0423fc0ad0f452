package request

import (
	"rental-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	PropertyID         uuid.UUID        `json:"property_id" binding:"required"`
	UnitID             *uuid.UUID       `json:"unit_id"`
	GuestID            uuid.UUID        `json:"guest_id" binding:"required"`
	Channel            string           `json:"channel"`
	CheckinDate        *Date            `json:"checkin_date" binding:"required"`
	CheckoutDate       *Date            `json:"checkout_date" binding:"required"`
	TotalAmount        decimal.Decimal  `json:"total_amount"`
	Currency           string           `json:"currency" binding:"omitempty,len=3"`
	PaymentStatus      string           `json:"payment_status"`
	DepositAmount      *decimal.Decimal `json:"deposit_amount"`
	Notes              string           `json:"notes" binding:"max=2000"`
	CreateCleaningTask bool             `json:"create_cleaning_task"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		PropertyID:         r.PropertyID,
		UnitID:             r.UnitID,
		GuestID:            r.GuestID,
		Channel:            r.Channel,
		Checkin:            r.CheckinDate.Time,
		Checkout:           r.CheckoutDate.Time,
		TotalAmount:        r.TotalAmount,
		Currency:           r.Currency,
		PaymentStatus:      r.PaymentStatus,
		DepositAmount:      r.DepositAmount,
		Notes:              r.Notes,
		CreateCleaningTask: r.CreateCleaningTask,
	}
}

// UpdateBookingRequest is a partial update; deposit_amount: null clears the deposit.
type UpdateBookingRequest struct {
	CheckinDate   *Date                     `json:"checkin_date"`
	CheckoutDate  *Date                     `json:"checkout_date"`
	GuestID       *uuid.UUID                `json:"guest_id"`
	Channel       *string                   `json:"channel"`
	TotalAmount   *decimal.Decimal          `json:"total_amount"`
	Currency      *string                   `json:"currency" binding:"omitempty,len=3"`
	PaymentStatus *string                   `json:"payment_status"`
	DepositAmount Optional[decimal.Decimal] `json:"deposit_amount"`
	Notes         *string                   `json:"notes" binding:"omitempty,max=2000"`
}

func (r UpdateBookingRequest) ToInput() commands.UpdateBookingInput {
	return commands.UpdateBookingInput{
		Checkin:       r.CheckinDate.Ptr(),
		Checkout:      r.CheckoutDate.Ptr(),
		GuestID:       r.GuestID,
		Channel:       r.Channel,
		TotalAmount:   r.TotalAmount,
		Currency:      r.Currency,
		PaymentStatus: r.PaymentStatus,
		DepositAmount: r.DepositAmount.Patch(),
		Notes:         r.Notes,
	}
}

type ConflictCheckRequest struct {
	PropertyID       uuid.UUID  `json:"property_id" binding:"required"`
	UnitID           *uuid.UUID `json:"unit_id"`
	CheckinDate      *Date      `json:"checkin_date" binding:"required"`
	CheckoutDate     *Date      `json:"checkout_date" binding:"required"`
	ExcludeBookingID *uuid.UUID `json:"exclude_booking_id"`
}

func (r ConflictCheckRequest) ToInput() commands.ConflictCheckInput {
	return commands.ConflictCheckInput{
		PropertyID:       r.PropertyID,
		UnitID:           r.UnitID,
		Checkin:          r.CheckinDate.Time,
		Checkout:         r.CheckoutDate.Time,
		ExcludeBookingID: r.ExcludeBookingID,
	}
}
