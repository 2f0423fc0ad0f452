package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type Users struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	Name         string             `json:"name"`
	PasswordHash string             `json:"password_hash"`
	Role         string             `json:"role"`
	IsActive     bool               `json:"is_active"`
	LastLogin    pgtype.Timestamptz `json:"last_login"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type Properties struct {
	ID        uuid.UUID          `json:"id"`
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Address   string             `json:"address"`
	Status    string             `json:"status"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Units struct {
	ID         uuid.UUID          `json:"id"`
	PropertyID uuid.UUID          `json:"property_id"`
	UnitCode   string             `json:"unit_code"`
	Name       string             `json:"name"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

type Guests struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Nationality string             `json:"nationality"`
	TotalSpend  decimal.Decimal    `json:"total_spend"`
	Blacklisted bool               `json:"blacklisted"`
	Notes       string             `json:"notes"`
	ArchivedAt  pgtype.Timestamptz `json:"archived_at"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type Bookings struct {
	ID             uuid.UUID           `json:"id"`
	Reference      string              `json:"reference"`
	PropertyID     uuid.UUID           `json:"property_id"`
	UnitID         pgtype.UUID         `json:"unit_id"`
	GuestID        uuid.UUID           `json:"guest_id"`
	Channel        string              `json:"channel"`
	CheckinDate    pgtype.Date         `json:"checkin_date"`
	CheckoutDate   pgtype.Date         `json:"checkout_date"`
	Nights         int32               `json:"nights"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	Currency       string              `json:"currency"`
	PaymentStatus  string              `json:"payment_status"`
	DepositAmount  decimal.NullDecimal `json:"deposit_amount"`
	Notes          string              `json:"notes"`
	Documents      []string            `json:"documents"`
	LifecycleState string              `json:"lifecycle_state"`
	CheckedInAt    pgtype.Timestamptz  `json:"checked_in_at"`
	CheckedOutAt   pgtype.Timestamptz  `json:"checked_out_at"`
	ArchivedAt     pgtype.Timestamptz  `json:"archived_at"`
	ArchivedBy     pgtype.UUID         `json:"archived_by"`
	CreatedAt      pgtype.Timestamptz  `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz  `json:"updated_at"`
}

type BookingEvents struct {
	ID         int64              `json:"id"`
	BookingID  uuid.UUID          `json:"booking_id"`
	Kind       string             `json:"kind"`
	ActorID    pgtype.UUID        `json:"actor_id"`
	Note       string             `json:"note"`
	OccurredAt pgtype.Timestamptz `json:"occurred_at"`
}

type CleaningTasks struct {
	ID            uuid.UUID           `json:"id"`
	CleaningID    string              `json:"cleaning_id"`
	PropertyID    uuid.UUID           `json:"property_id"`
	UnitID        pgtype.UUID         `json:"unit_id"`
	BookingID     pgtype.UUID         `json:"booking_id"`
	ScheduledDate pgtype.Date         `json:"scheduled_date"`
	Status        string              `json:"status"`
	AssigneeID    pgtype.UUID         `json:"assignee_id"`
	BeforePhotos  []string            `json:"before_photos"`
	AfterPhotos   []string            `json:"after_photos"`
	Cost          decimal.NullDecimal `json:"cost"`
	Notes         string              `json:"notes"`
	CompletedAt   pgtype.Timestamptz  `json:"completed_at"`
	CreatedAt     pgtype.Timestamptz  `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz  `json:"updated_at"`
}

type MaintenanceTasks struct {
	ID          uuid.UUID           `json:"id"`
	PropertyID  uuid.UUID           `json:"property_id"`
	UnitID      pgtype.UUID         `json:"unit_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    string              `json:"priority"`
	Type        string              `json:"type"`
	Status      string              `json:"status"`
	AssigneeID  pgtype.UUID         `json:"assignee_id"`
	DueDate     pgtype.Date         `json:"due_date"`
	Cost        decimal.NullDecimal `json:"cost"`
	ResolvedAt  pgtype.Timestamptz  `json:"resolved_at"`
	CreatedAt   pgtype.Timestamptz  `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz  `json:"updated_at"`
}

type FinanceRecords struct {
	ID                uuid.UUID          `json:"id"`
	Type              string             `json:"type"`
	Category          string             `json:"category"`
	Amount            decimal.Decimal    `json:"amount"`
	Currency          string             `json:"currency"`
	RecordDate        pgtype.Date        `json:"record_date"`
	PropertyID        pgtype.UUID        `json:"property_id"`
	BookingID         pgtype.UUID        `json:"booking_id"`
	GuestID           pgtype.UUID        `json:"guest_id"`
	CleaningTaskID    pgtype.UUID        `json:"cleaning_task_id"`
	MaintenanceTaskID pgtype.UUID        `json:"maintenance_task_id"`
	Status            string             `json:"status"`
	PaymentMethod     pgtype.Text        `json:"payment_method"`
	Description       string             `json:"description"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
}

type Automations struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	Trigger    string             `json:"trigger"`
	Conditions []byte             `json:"conditions"`
	Actions    []byte             `json:"actions"`
	Enabled    bool               `json:"enabled"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

type NotificationJobs struct {
	ID        uuid.UUID          `json:"id"`
	Kind      string             `json:"kind"`
	Topic     string             `json:"topic"`
	Payload   []byte             `json:"payload"`
	RunAt     pgtype.Timestamptz `json:"run_at"`
	Attempts  int32              `json:"attempts"`
	Status    string             `json:"status"`
	LastError pgtype.Text        `json:"last_error"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}
