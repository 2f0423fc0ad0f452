package request

import (
	"time"

	"rental-backoffice/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCleaningTaskRequest struct {
	PropertyID    uuid.UUID  `json:"property_id" binding:"required"`
	UnitID        *uuid.UUID `json:"unit_id"`
	BookingID     *uuid.UUID `json:"booking_id"`
	ScheduledDate *Date      `json:"scheduled_date" binding:"required"`
	AssigneeID    *uuid.UUID `json:"assignee_id"`
	Notes         string     `json:"notes" binding:"max=2000"`
}

func (r CreateCleaningTaskRequest) ToInput() commands.CreateCleaningInput {
	return commands.CreateCleaningInput{
		PropertyID:    r.PropertyID,
		UnitID:        r.UnitID,
		BookingID:     r.BookingID,
		ScheduledDate: r.ScheduledDate.Time,
		AssigneeID:    r.AssigneeID,
		Notes:         r.Notes,
	}
}

type UpdateCleaningTaskRequest struct {
	ScheduledDate *Date               `json:"scheduled_date"`
	Status        *string             `json:"status"`
	AssigneeID    Optional[uuid.UUID] `json:"assignee_id"`
	BeforePhotos  []string            `json:"before_photos" binding:"omitempty,dive,url"`
	AfterPhotos   []string            `json:"after_photos" binding:"omitempty,dive,url"`
	Notes         *string             `json:"notes" binding:"omitempty,max=2000"`
}

func (r UpdateCleaningTaskRequest) ToInput() commands.UpdateCleaningInput {
	return commands.UpdateCleaningInput{
		ScheduledDate: r.ScheduledDate.Ptr(),
		Status:        r.Status,
		AssigneeID:    r.AssigneeID.Patch(),
		BeforePhotos:  r.BeforePhotos,
		AfterPhotos:   r.AfterPhotos,
		Notes:         r.Notes,
	}
}

type ResolveCleaningTaskRequest struct {
	Cost        *decimal.Decimal `json:"cost"`
	AfterPhotos []string         `json:"after_photos" binding:"omitempty,dive,url"`
}

func (r ResolveCleaningTaskRequest) ToInput() commands.ResolveCleaningInput {
	return commands.ResolveCleaningInput(r)
}

type CreateMaintenanceTaskRequest struct {
	PropertyID  uuid.UUID  `json:"property_id" binding:"required"`
	UnitID      *uuid.UUID `json:"unit_id"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=4000"`
	Priority    string     `json:"priority"`
	Type        string     `json:"type"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
	DueDate     *Date      `json:"due_date"`
}

func (r CreateMaintenanceTaskRequest) ToInput() commands.CreateMaintenanceInput {
	return commands.CreateMaintenanceInput{
		PropertyID:  r.PropertyID,
		UnitID:      r.UnitID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Type:        r.Type,
		AssigneeID:  r.AssigneeID,
		DueDate:     r.DueDate.Ptr(),
	}
}

type UpdateMaintenanceTaskRequest struct {
	Title       *string             `json:"title" binding:"omitempty,max=200"`
	Description *string             `json:"description" binding:"omitempty,max=4000"`
	Priority    *string             `json:"priority"`
	Type        *string             `json:"type"`
	Status      *string             `json:"status"`
	AssigneeID  Optional[uuid.UUID] `json:"assignee_id"`
	DueDate     Optional[Date]      `json:"due_date"`
}

func (r UpdateMaintenanceTaskRequest) ToInput() commands.UpdateMaintenanceInput {
	in := commands.UpdateMaintenanceInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Type:        r.Type,
		Status:      r.Status,
		AssigneeID:  r.AssigneeID.Patch(),
	}
	if r.DueDate.Set {
		var due *time.Time
		if r.DueDate.Value != nil {
			due = r.DueDate.Value.Ptr()
		}
		in.DueDate = &due
	}
	return in
}

type ResolveMaintenanceTaskRequest struct {
	Cost *decimal.Decimal `json:"cost"`
	Note string           `json:"note" binding:"max=2000"`
}

func (r ResolveMaintenanceTaskRequest) ToInput() commands.ResolveMaintenanceInput {
	return commands.ResolveMaintenanceInput(r)
}
