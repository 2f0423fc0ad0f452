package response

import (
	"time"

	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GuestResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Nationality string          `json:"nationality"`
	TotalSpend  decimal.Decimal `json:"total_spend"`
	Blacklisted bool            `json:"blacklisted"`
	Notes       string          `json:"notes"`
	Archived    bool            `json:"archived"`
	ArchivedAt  *time.Time      `json:"archived_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func FromGuestView(v *queries.GuestView) *GuestResponse {
	return &GuestResponse{
		ID:          v.ID,
		Name:        v.Name,
		Email:       v.Email,
		Phone:       v.Phone,
		Nationality: v.Nationality,
		TotalSpend:  v.TotalSpend,
		Blacklisted: v.Blacklisted,
		Notes:       v.Notes,
		Archived:    v.ArchivedAt != nil,
		ArchivedAt:  v.ArchivedAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

type GuestListResponse struct {
	Items      []*GuestResponse `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

func FromGuestViews(views []*queries.GuestView, next *queries.Cursor) *GuestListResponse {
	res := &GuestListResponse{Items: make([]*GuestResponse, 0, len(views))}
	for _, v := range views {
		res.Items = append(res.Items, FromGuestView(v))
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}
