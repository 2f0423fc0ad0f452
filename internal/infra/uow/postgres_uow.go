package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/infra/readstore"
	"rental-backoffice/internal/infra/repository"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/pkg/pgconv"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxRetries  = 3
	backoffBase = 100 * time.Millisecond
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
	q    *sqlc.Queries
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
		q:    q,
	}
}

// Within runs fn in a ReadCommitted transaction; booking writers serialise on the scope lock instead of isolation.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u.q, u.pool)
}

// A fresh tx per attempt; deferring inside the loop would hold every failed connection until return.
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, &pgTx{dbtx: pgxTx, q: u.q})
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
		}

		if !isRetryableError(err) {
			return err
		}
		if attempt == maxRetries {
			slog.Error("transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := calculateBackoff(attempt, backoffBase)
		slog.Warn("retrying transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return errMaxRetriesExceeded
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	wait := time.Duration(1<<attempt) * base
	return wait + time.Duration(cryptoRandInt63n(int64(wait/5)))
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// #nosec G115 -- high bit masked off
	return int64(binary.BigEndian.Uint64(buf[:])&0x7FFFFFFFFFFFFFFF) % n
}

func isRetryableError(err error) bool {
	switch pgconv.PgErrorCode(err) {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	bookingRepo      *repository.BookingRepository
	guestRepo        shared.GuestRepository
	propertyRepo     shared.PropertyRepository
	cleaningRepo     shared.CleaningTaskRepository
	maintenanceRepo  shared.MaintenanceTaskRepository
	financeRepo      shared.FinanceRepository
	automationRepo   shared.AutomationRepository
	notificationRepo shared.NotificationRepository
	userRepo         shared.UserRepository
	reads            shared.CommandReads
}

func (t *pgTx) DB() sqlc.DBTX {
	return t.dbtx
}

func (t *pgTx) booking() *repository.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.q, t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Bookings() shared.BookingRepository { return t.booking() }

func (t *pgTx) Locks() shared.ScopeLocker { return t.booking() }

func (t *pgTx) Guests() shared.GuestRepository {
	if t.guestRepo == nil {
		t.guestRepo = repository.NewGuestRepository(t.q, t.dbtx)
	}
	return t.guestRepo
}

func (t *pgTx) Properties() shared.PropertyRepository {
	if t.propertyRepo == nil {
		t.propertyRepo = repository.NewPropertyRepository(t.q, t.dbtx)
	}
	return t.propertyRepo
}

func (t *pgTx) Cleaning() shared.CleaningTaskRepository {
	if t.cleaningRepo == nil {
		t.cleaningRepo = repository.NewCleaningTaskRepository(t.q, t.dbtx)
	}
	return t.cleaningRepo
}

func (t *pgTx) Maintenance() shared.MaintenanceTaskRepository {
	if t.maintenanceRepo == nil {
		t.maintenanceRepo = repository.NewMaintenanceTaskRepository(t.q, t.dbtx)
	}
	return t.maintenanceRepo
}

func (t *pgTx) Finance() shared.FinanceRepository {
	if t.financeRepo == nil {
		t.financeRepo = repository.NewFinanceRepository(t.q, t.dbtx)
	}
	return t.financeRepo
}

func (t *pgTx) Automations() shared.AutomationRepository {
	if t.automationRepo == nil {
		t.automationRepo = repository.NewAutomationRepository(t.q, t.dbtx)
	}
	return t.automationRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.q, t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.q)
	}
	return t.userRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.reads == nil {
		t.reads = newCommandReads(t.q, t.dbtx)
	}
	return t.reads
}

// commandReads binds every readstore to one DBTX so reads inside Within see the transaction's writes.
type commandReads struct {
	bookings    *readstore.BookingReadStore
	guests      *readstore.GuestReadStore
	properties  *readstore.PropertyReadStore
	tasks       *readstore.TaskReadStore
	finance     *readstore.FinanceReadStore
	automations *readstore.AutomationReadStore
	users       *readstore.UserReadStore
}

func newCommandReads(q *sqlc.Queries, db sqlc.DBTX) *commandReads {
	return &commandReads{
		bookings:    readstore.NewBookingReadStore(q, db),
		guests:      readstore.NewGuestReadStore(q, db),
		properties:  readstore.NewPropertyReadStore(q, db),
		tasks:       readstore.NewTaskReadStore(q, db),
		finance:     readstore.NewFinanceReadStore(q, db),
		automations: readstore.NewAutomationReadStore(q, db),
		users:       readstore.NewUserReadStore(q, db),
	}
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.bookings.Aggregate(ctx, id)
}

func (r *commandReads) BookingReferenceExists(ctx context.Context, reference string) (bool, error) {
	return r.bookings.ReferenceExists(ctx, reference)
}

func (r *commandReads) OverlappingBookings(ctx context.Context, scope booking.Scope, period booking.StayPeriod) ([]*booking.Booking, error) {
	return r.bookings.Overlapping(ctx, scope, period)
}

func (r *commandReads) GuestByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error) {
	return r.guests.Aggregate(ctx, id)
}

func (r *commandReads) GuestStayHistory(ctx context.Context, guestID uuid.UUID, today time.Time) (guest.StayHistory, error) {
	return r.bookings.StayHistory(ctx, guestID, today)
}

func (r *commandReads) PropertyByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	return r.properties.Aggregate(ctx, id)
}

func (r *commandReads) UnitByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	return r.properties.Unit(ctx, id)
}

func (r *commandReads) ActiveProperties(ctx context.Context) ([]*property.Property, error) {
	return r.properties.Active(ctx)
}

func (r *commandReads) CleaningTaskByID(ctx context.Context, id uuid.UUID) (*task.CleaningTask, error) {
	return r.tasks.Cleaning(ctx, id)
}

func (r *commandReads) FirstCleaningTaskForBooking(ctx context.Context, bookingID uuid.UUID) (*task.CleaningTask, error) {
	return r.tasks.FirstCleaningForBooking(ctx, bookingID)
}

func (r *commandReads) MaintenanceTaskByID(ctx context.Context, id uuid.UUID) (*task.MaintenanceTask, error) {
	return r.tasks.Maintenance(ctx, id)
}

func (r *commandReads) FinanceRecordByID(ctx context.Context, id uuid.UUID) (*finance.Record, error) {
	return r.finance.Aggregate(ctx, id)
}

func (r *commandReads) AutomationByID(ctx context.Context, id uuid.UUID) (*automation.Rule, error) {
	return r.automations.Aggregate(ctx, id)
}

func (r *commandReads) EnabledAutomationsByTrigger(ctx context.Context, trigger string) ([]*automation.Rule, error) {
	return r.automations.EnabledByTrigger(ctx, trigger)
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.users.AggregateByEmail(ctx, email)
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.users.Aggregate(ctx, id)
}
