package response

import (
	"time"

	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type UnitResponse struct {
	ID       uuid.UUID `json:"id"`
	UnitCode string    `json:"unit_code"`
	Name     string    `json:"name"`
}

type PropertyResponse struct {
	ID        uuid.UUID      `json:"id"`
	Code      string         `json:"code"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	Status    string         `json:"status"`
	Units     []UnitResponse `json:"units"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func FromPropertyView(v *queries.PropertyView) *PropertyResponse {
	res := &PropertyResponse{
		ID:        v.ID,
		Code:      v.Code,
		Name:      v.Name,
		Address:   v.Address,
		Status:    v.Status,
		Units:     make([]UnitResponse, 0, len(v.Units)),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	for _, u := range v.Units {
		res.Units = append(res.Units, UnitResponse{ID: u.ID, UnitCode: u.UnitCode, Name: u.Name})
	}
	return res
}

func FromPropertyViews(views []*queries.PropertyView) []*PropertyResponse {
	out := make([]*PropertyResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromPropertyView(v))
	}
	return out
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
