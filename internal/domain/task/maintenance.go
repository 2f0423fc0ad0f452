package task

import (
	"strings"
	"time"

	"rental-backoffice/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func NewPriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, nil
	}
	return "", ErrInvalidPriority
}

type MaintenanceType string

const (
	TypeAC         MaintenanceType = "ac"
	TypePlumbing   MaintenanceType = "plumbing"
	TypeElectrical MaintenanceType = "electrical"
	TypeAppliance  MaintenanceType = "appliance"
	TypeOther      MaintenanceType = "other"
)

func NewMaintenanceType(s string) (MaintenanceType, error) {
	switch t := MaintenanceType(s); t {
	case "":
		return TypeOther, nil
	case TypeAC, TypePlumbing, TypeElectrical, TypeAppliance, TypeOther:
		return t, nil
	}
	return "", ErrInvalidType
}

type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "open"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceResolved   MaintenanceStatus = "resolved"
)

func (s MaintenanceStatus) IsValid() bool {
	switch s {
	case MaintenanceOpen, MaintenanceInProgress, MaintenanceResolved:
		return true
	}
	return false
}

type MaintenanceTask struct {
	id          uuid.UUID
	propertyID  uuid.UUID
	unitID      *uuid.UUID
	title       string
	description string
	priority    Priority
	kind        MaintenanceType
	status      MaintenanceStatus
	assigneeID  *uuid.UUID
	dueDate     *time.Time
	cost        *decimal.Decimal
	resolvedAt  *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

type NewMaintenanceParams struct {
	PropertyID  uuid.UUID
	UnitID      *uuid.UUID
	Title       string
	Description string
	Priority    Priority
	Type        MaintenanceType
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

func NewMaintenanceTask(p NewMaintenanceParams, now time.Time) (*MaintenanceTask, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
	if p.Type == "" {
		p.Type = TypeOther
	}
	var due *time.Time
	if p.DueDate != nil {
		d := clock.DateOf(*p.DueDate)
		due = &d
	}
	return &MaintenanceTask{
		id:          uuid.New(),
		propertyID:  p.PropertyID,
		unitID:      p.UnitID,
		title:       title,
		description: p.Description,
		priority:    p.Priority,
		kind:        p.Type,
		status:      MaintenanceOpen,
		assigneeID:  p.AssigneeID,
		dueDate:     due,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

type MaintenanceSnapshot struct {
	ID          uuid.UUID
	PropertyID  uuid.UUID
	UnitID      *uuid.UUID
	Title       string
	Description string
	Priority    Priority
	Type        MaintenanceType
	Status      MaintenanceStatus
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
	Cost        *decimal.Decimal
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func ReconstructMaintenanceTask(s MaintenanceSnapshot) *MaintenanceTask {
	return &MaintenanceTask{
		id:          s.ID,
		propertyID:  s.PropertyID,
		unitID:      s.UnitID,
		title:       s.Title,
		description: s.Description,
		priority:    s.Priority,
		kind:        s.Type,
		status:      s.Status,
		assigneeID:  s.AssigneeID,
		dueDate:     s.DueDate,
		cost:        s.Cost,
		resolvedAt:  s.ResolvedAt,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
}

func (t *MaintenanceTask) ID() uuid.UUID             { return t.id }
func (t *MaintenanceTask) PropertyID() uuid.UUID     { return t.propertyID }
func (t *MaintenanceTask) UnitID() *uuid.UUID        { return t.unitID }
func (t *MaintenanceTask) Title() string             { return t.title }
func (t *MaintenanceTask) Description() string       { return t.description }
func (t *MaintenanceTask) Priority() Priority        { return t.priority }
func (t *MaintenanceTask) Type() MaintenanceType     { return t.kind }
func (t *MaintenanceTask) Status() MaintenanceStatus { return t.status }
func (t *MaintenanceTask) AssigneeID() *uuid.UUID    { return t.assigneeID }
func (t *MaintenanceTask) DueDate() *time.Time       { return t.dueDate }
func (t *MaintenanceTask) Cost() *decimal.Decimal    { return t.cost }
func (t *MaintenanceTask) ResolvedAt() *time.Time    { return t.resolvedAt }
func (t *MaintenanceTask) CreatedAt() time.Time      { return t.createdAt }
func (t *MaintenanceTask) UpdatedAt() time.Time      { return t.updatedAt }
func (t *MaintenanceTask) IsResolved() bool          { return t.status == MaintenanceResolved }

func (t *MaintenanceTask) IsAssignedTo(userID uuid.UUID) bool {
	return t.assigneeID != nil && *t.assigneeID == userID
}

type MaintenancePatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Type        *MaintenanceType
	Status      *MaintenanceStatus
	AssigneeID  **uuid.UUID
	DueDate     **time.Time
}

func (t *MaintenanceTask) Apply(p MaintenancePatch, now time.Time) error {
	if t.IsResolved() {
		return ErrAlreadyResolved
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return ErrTitleRequired
		}
		t.title = title
	}
	if p.Description != nil {
		t.description = *p.Description
	}
	if p.Priority != nil {
		pr, err := NewPriority(string(*p.Priority))
		if err != nil {
			return err
		}
		t.priority = pr
	}
	if p.Type != nil {
		kind, err := NewMaintenanceType(string(*p.Type))
		if err != nil {
			return err
		}
		t.kind = kind
	}
	if p.Status != nil {
		if !p.Status.IsValid() {
			return ErrInvalidStatus
		}
		if *p.Status == MaintenanceResolved {
			return ErrResolveViaEndpoint
		}
		t.status = *p.Status
	}
	if p.AssigneeID != nil {
		t.assigneeID = *p.AssigneeID
	}
	if p.DueDate != nil {
		if *p.DueDate == nil {
			t.dueDate = nil
		} else {
			d := clock.DateOf(**p.DueDate)
			t.dueDate = &d
		}
	}
	t.updatedAt = now
	return nil
}

// Resolve reports whether an expense leg is due.
func (t *MaintenanceTask) Resolve(cost *decimal.Decimal, note string, now time.Time) (bool, error) {
	if t.IsResolved() {
		return false, ErrAlreadyResolved
	}
	if cost != nil && cost.IsNegative() {
		return false, ErrNegativeCost
	}
	if note = strings.TrimSpace(note); note != "" {
		if t.description != "" {
			t.description += "\n"
		}
		t.description += "Resolution: " + note
	}
	t.status = MaintenanceResolved
	t.cost = cost
	t.resolvedAt = &now
	t.updatedAt = now
	return cost != nil && cost.IsPositive(), nil
}
