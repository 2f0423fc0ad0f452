package response

import (
	"time"

	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type CleaningTaskResponse struct {
	ID            uuid.UUID        `json:"id"`
	CleaningID    string           `json:"cleaning_id"`
	PropertyID    uuid.UUID        `json:"property_id"`
	UnitID        *uuid.UUID       `json:"unit_id,omitempty"`
	BookingID     *uuid.UUID       `json:"booking_id,omitempty"`
	ScheduledDate time.Time        `json:"scheduled_date"`
	Status        string           `json:"status"`
	AssigneeID    *uuid.UUID       `json:"assignee_id,omitempty"`
	BeforePhotos  []string         `json:"before_photos"`
	AfterPhotos   []string         `json:"after_photos"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	Notes         string           `json:"notes"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type MaintenanceTaskResponse struct {
	ID          uuid.UUID        `json:"id"`
	PropertyID  uuid.UUID        `json:"property_id"`
	UnitID      *uuid.UUID       `json:"unit_id,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Priority    string           `json:"priority"`
	Type        string           `json:"type"`
	Status      string           `json:"status"`
	AssigneeID  *uuid.UUID       `json:"assignee_id,omitempty"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	ResolvedAt  *time.Time       `json:"resolved_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func FromCleaningTaskViews(views []*queries.CleaningTaskView) ([]CleaningTaskResponse, error) {
	out := make([]CleaningTaskResponse, 0, len(views))
	if err := copier.Copy(&out, &views); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].BeforePhotos == nil {
			out[i].BeforePhotos = []string{}
		}
		if out[i].AfterPhotos == nil {
			out[i].AfterPhotos = []string{}
		}
	}
	return out, nil
}

func FromMaintenanceTaskViews(views []*queries.MaintenanceTaskView) ([]MaintenanceTaskResponse, error) {
	out := make([]MaintenanceTaskResponse, 0, len(views))
	if err := copier.Copy(&out, &views); err != nil {
		return nil, err
	}
	return out, nil
}
