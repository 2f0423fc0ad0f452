package shared

import (
	"context"
	"time"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/infra/sqlc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Guests() GuestRepository
	Properties() PropertyRepository
	Cleaning() CleaningTaskRepository
	Maintenance() MaintenanceTaskRepository
	Finance() FinanceRepository
	Automations() AutomationRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Locks() ScopeLocker
	Reads() CommandReads
	DB() sqlc.DBTX
}

// ScopeLocker serialises writers of one booking scope until the transaction ends.
type ScopeLocker interface {
	LockScope(ctx context.Context, tx sqlc.DBTX, lock booking.ScopeLock) error
}

type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	BookingReferenceExists(ctx context.Context, reference string) (bool, error)
	OverlappingBookings(ctx context.Context, scope booking.Scope, period booking.StayPeriod) ([]*booking.Booking, error)
	GuestByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error)
	GuestStayHistory(ctx context.Context, guestID uuid.UUID, today time.Time) (guest.StayHistory, error)
	PropertyByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
	UnitByID(ctx context.Context, id uuid.UUID) (*property.Unit, error)
	ActiveProperties(ctx context.Context) ([]*property.Property, error)
	CleaningTaskByID(ctx context.Context, id uuid.UUID) (*task.CleaningTask, error)
	FirstCleaningTaskForBooking(ctx context.Context, bookingID uuid.UUID) (*task.CleaningTask, error)
	MaintenanceTaskByID(ctx context.Context, id uuid.UUID) (*task.MaintenanceTask, error)
	FinanceRecordByID(ctx context.Context, id uuid.UUID) (*finance.Record, error)
	AutomationByID(ctx context.Context, id uuid.UUID) (*automation.Rule, error)
	EnabledAutomationsByTrigger(ctx context.Context, trigger string) ([]*automation.Rule, error)
	UserByEmail(ctx context.Context, email string) (*user.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error
	Update(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error
	Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error
	DeleteByGuest(ctx context.Context, tx sqlc.DBTX, guestID uuid.UUID) error
	AppendEvents(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID, events []booking.Event) error
}

type GuestRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, g *guest.Guest) error
	Update(ctx context.Context, tx sqlc.DBTX, g *guest.Guest) error
	// AdjustSpend is an atomic increment so concurrent bookings never lose an update.
	AdjustSpend(ctx context.Context, tx sqlc.DBTX, guestID uuid.UUID, delta decimal.Decimal) error
	Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error
}

type PropertyRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, p *property.Property) error
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, p *property.Property) error
	CreateUnit(ctx context.Context, tx sqlc.DBTX, u *property.Unit) error
}

type CleaningTaskRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, t *task.CleaningTask) error
	Update(ctx context.Context, tx sqlc.DBTX, t *task.CleaningTask) error
}

type MaintenanceTaskRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, t *task.MaintenanceTask) error
	Update(ctx context.Context, tx sqlc.DBTX, t *task.MaintenanceTask) error
}

type FinanceRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, r *finance.Record) error
	UpdateSettlement(ctx context.Context, tx sqlc.DBTX, r *finance.Record) error
	DeleteByBooking(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID) error
}

type AutomationRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, r *automation.Rule) error
	Update(ctx context.Context, tx sqlc.DBTX, r *automation.Rule) error
	Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID, at time.Time) error
}
