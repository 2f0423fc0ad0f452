package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingView is the booking as the back office reads it, joined with its property, unit and guest.
type BookingView struct {
	ID             uuid.UUID        `json:"id"`
	Reference      string           `json:"reference"`
	PropertyID     uuid.UUID        `json:"property_id"`
	PropertyCode   string           `json:"property_code"`
	PropertyName   string           `json:"property_name"`
	UnitID         *uuid.UUID       `json:"unit_id,omitempty"`
	UnitCode       *string          `json:"unit_code,omitempty"`
	GuestID        uuid.UUID        `json:"guest_id"`
	GuestName      string           `json:"guest_name"`
	GuestEmail     string           `json:"guest_email"`
	Channel        string           `json:"channel"`
	CheckinDate    time.Time        `json:"checkin_date"`
	CheckoutDate   time.Time        `json:"checkout_date"`
	Nights         int32            `json:"nights"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	Currency       string           `json:"currency"`
	PaymentStatus  string           `json:"payment_status"`
	DepositAmount  *decimal.Decimal `json:"deposit_amount,omitempty"`
	Notes          string           `json:"notes"`
	Documents      []string         `json:"documents"`
	LifecycleState string           `json:"lifecycle_state"`
	CheckedInAt    *time.Time       `json:"checked_in_at,omitempty"`
	CheckedOutAt   *time.Time       `json:"checked_out_at,omitempty"`
	ArchivedAt     *time.Time       `json:"archived_at,omitempty"`
	ArchivedBy     *uuid.UUID       `json:"archived_by,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type BookingEventView struct {
	ID         int64      `json:"id"`
	Kind       string     `json:"kind"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	ActorEmail *string    `json:"actor_email,omitempty"`
	Note       string     `json:"note"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type GuestView struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Nationality string          `json:"nationality"`
	TotalSpend  decimal.Decimal `json:"total_spend"`
	Blacklisted bool            `json:"blacklisted"`
	Notes       string          `json:"notes"`
	ArchivedAt  *time.Time      `json:"archived_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type UnitView struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	UnitCode   string    `json:"unit_code"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type PropertyView struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Status    string     `json:"status"`
	Units     []UnitView `json:"units,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CleaningTaskView struct {
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

type MaintenanceTaskView struct {
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

type FinanceRecordView struct {
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
	UpdatedAt         time.Time       `json:"updated_at"`
}

type FinanceTotal struct {
	Type     string          `json:"type"`
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

type AutomationView struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Trigger    string         `json:"trigger"`
	Conditions map[string]any `json:"conditions"`
	Actions    []ActionView   `json:"actions"`
	Enabled    bool           `json:"enabled"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type ActionView struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
