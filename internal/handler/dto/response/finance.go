package response

import (
	"time"

	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type FinanceRecordResponse struct {
	ID                uuid.UUID       `json:"id"`
	Type              string          `json:"type"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Date              time.Time       `json:"date"`
	PropertyID        *uuid.UUID      `json:"property_id,omitempty"`
	BookingID         *uuid.UUID      `json:"booking_id,omitempty"`
	GuestID           *uuid.UUID      `json:"guest_id,omitempty"`
	CleaningTaskID    *uuid.UUID      `json:"cleaning_task_id,omitempty"`
	MaintenanceTaskID *uuid.UUID      `json:"maintenance_task_id,omitempty"`
	Status            string          `json:"status"`
	PaymentMethod     *string         `json:"payment_method,omitempty"`
	Description       string          `json:"description"`
	CreatedAt         time.Time       `json:"created_at"`
}

type FinanceTotalResponse struct {
	Type     string          `json:"type"`
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

type FinanceListResponse struct {
	Items  []FinanceRecordResponse `json:"items"`
	Totals []FinanceTotalResponse  `json:"totals"`
}

func FromFinanceViews(views []*queries.FinanceRecordView, totals []queries.FinanceTotal) (*FinanceListResponse, error) {
	res := &FinanceListResponse{
		Items:  make([]FinanceRecordResponse, 0, len(views)),
		Totals: make([]FinanceTotalResponse, 0, len(totals)),
	}
	if err := copier.Copy(&res.Items, &views); err != nil {
		return nil, err
	}
	if err := copier.Copy(&res.Totals, &totals); err != nil {
		return nil, err
	}
	return res, nil
}
