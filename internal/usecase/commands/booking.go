package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/pkg/errs"
	"rental-backoffice/internal/pkg/patch"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TableBookings   = "bookings"
	TableGuests     = "guests"
	TableProperties = "properties"
)

type CreateBookingInput struct {
	PropertyID         uuid.UUID
	UnitID             *uuid.UUID
	GuestID            uuid.UUID
	Channel            string
	Checkin            time.Time
	Checkout           time.Time
	TotalAmount        decimal.Decimal
	Currency           string
	PaymentStatus      string
	DepositAmount      *decimal.Decimal
	Notes              string
	CreateCleaningTask bool
}

type CreateBookingResult struct {
	BookingID    uuid.UUID
	Reference    string
	CleaningTask *CreatedCleaningTask
}

// CreatedCleaningTask is the turnover task scheduled together with a booking.
type CreatedCleaningTask struct {
	ID            uuid.UUID
	CleaningID    string
	ScheduledDate time.Time
	Status        string
}

// UpdateBookingInput is a partial update; nil fields are left as they are.
type UpdateBookingInput struct {
	Checkin       *time.Time
	Checkout      *time.Time
	GuestID       *uuid.UUID
	Channel       *string
	TotalAmount   *decimal.Decimal
	Currency      *string
	PaymentStatus *string
	DepositAmount **decimal.Decimal
	Notes         *string
}

type ConflictCheckInput struct {
	PropertyID       uuid.UUID
	UnitID           *uuid.UUID
	Checkin          time.Time
	Checkout         time.Time
	ExcludeBookingID *uuid.UUID
}

type DocumentUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Size        int64
}

type BookingCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*CreateBookingResult, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateBookingInput) error
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	CheckIn(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	CheckOut(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Archive(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Restore(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	PermanentlyDelete(ctx context.Context, actor shared.Actor, table string, id uuid.UUID) error
	AttachDocument(ctx context.Context, actor shared.Actor, id uuid.UUID, upload DocumentUpload) (string, error)
	CheckConflict(ctx context.Context, actor shared.Actor, in ConflictCheckInput) (booking.ConflictResult, error)
}

// ConflictDetector composes the overlap query of the store with the pure overlap rule.
type ConflictDetector struct{}

func (ConflictDetector) Check(ctx context.Context, reads shared.CommandReads, scope booking.Scope, period booking.StayPeriod, exclude *uuid.UUID) (booking.ConflictResult, error) {
	existing, err := reads.OverlappingBookings(ctx, scope, period)
	if err != nil {
		return booking.ConflictResult{}, err
	}
	return booking.FindConflicts(period, existing, exclude), nil
}

type bookingUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	refs      *booking.ReferenceGenerator
	publisher shared.EventPublisher
	documents shared.DocumentStore
	lifecycle config.LifecycleConfig
	conflicts ConflictDetector
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	clk clock.Clock,
	refs *booking.ReferenceGenerator,
	publisher shared.EventPublisher,
	documents shared.DocumentStore,
	lifecycle config.LifecycleConfig,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:       uow,
		clock:     clk,
		refs:      refs,
		publisher: publisher,
		documents: documents,
		lifecycle: lifecycle,
	}
}

func (uc *bookingUseCaseImpl) today() time.Time {
	return clock.Today(uc.clock, uc.lifecycle.Location())
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, actor shared.Actor, in CreateBookingInput) (*CreateBookingResult, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return nil, err
	}
	period, err := booking.NewStayPeriod(in.Checkin, in.Checkout)
	if err != nil {
		return nil, err
	}
	channel, err := booking.NewChannel(in.Channel)
	if err != nil {
		return nil, err
	}
	payment, err := booking.NewPaymentStatus(in.PaymentStatus)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = booking.DefaultCurrency
	}

	var (
		result = &CreateBookingResult{}
		data   map[string]any
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		*result = CreateBookingResult{}
		reads := tx.Reads()
		now := uc.clock.Now()

		if err := uc.ensureScope(ctx, reads, in.PropertyID, in.UnitID); err != nil {
			return err
		}
		if _, err := reads.GuestByID(ctx, in.GuestID); err != nil {
			return found(err, ErrGuestNotFound, in.GuestID)
		}

		scope := booking.NewScope(in.PropertyID, in.UnitID)
		if err := lockScope(ctx, tx, scope); err != nil {
			return err
		}
		conflicts, err := uc.conflicts.Check(ctx, reads, scope, period, nil)
		if err != nil {
			return err
		}
		if err := conflicts.Err(); err != nil {
			return err
		}

		reference, err := uc.refs.Generate(ctx, reads.BookingReferenceExists)
		if err != nil {
			return err
		}
		b, err := booking.NewBooking(booking.NewBookingParams{
			PropertyID:    in.PropertyID,
			UnitID:        in.UnitID,
			GuestID:       in.GuestID,
			Channel:       channel,
			Period:        period,
			TotalAmount:   in.TotalAmount,
			Currency:      currency,
			PaymentStatus: payment,
			DepositAmount: in.DepositAmount,
			Notes:         in.Notes,
		}, reference, actor.IDPtr(), now)
		if err != nil {
			return err
		}
		if err := duplicate(tx.Bookings().Create(ctx, tx.DB(), b), ErrDuplicateReference); err != nil {
			return err
		}
		if err := uc.saveEvents(ctx, tx, b); err != nil {
			return err
		}

		if in.CreateCleaningTask {
			bookingID := b.ID()
			ct, err := task.NewCleaningTask(task.NewCleaningParams{
				PropertyID:    b.PropertyID(),
				UnitID:        b.UnitID(),
				BookingID:     &bookingID,
				ScheduledDate: b.Checkout(),
			}, now)
			if err != nil {
				return err
			}
			if err := tx.Cleaning().Create(ctx, tx.DB(), ct); err != nil {
				return err
			}
			result.CleaningTask = &CreatedCleaningTask{
				ID:            ct.ID(),
				CleaningID:    ct.Code(),
				ScheduledDate: ct.ScheduledDate(),
				Status:        string(ct.Status()),
			}
		}

		revenue, err := finance.NewBookingRevenue(b, now)
		if err != nil {
			return err
		}
		if err := tx.Finance().Create(ctx, tx.DB(), revenue); err != nil {
			return err
		}
		if err := tx.Guests().AdjustSpend(ctx, tx.DB(), b.GuestID(), b.TotalAmount()); err != nil {
			return err
		}

		result.BookingID = b.ID()
		result.Reference = b.Reference()
		data = b.EventData()
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(booking.TriggerCreated, data)
	return result, nil
}

func lockScope(ctx context.Context, tx shared.Tx, scope booking.Scope) error {
	for _, l := range scope.Locks() {
		if err := tx.Locks().LockScope(ctx, tx.DB(), l); err != nil {
			return err
		}
	}
	return nil
}

// ensureScope checks the property is bookable and the unit, if any, belongs to it.
func (uc *bookingUseCaseImpl) ensureScope(ctx context.Context, reads shared.CommandReads, propertyID uuid.UUID, unitID *uuid.UUID) error {
	p, err := reads.PropertyByID(ctx, propertyID)
	if err != nil {
		return found(err, ErrPropertyNotFound, propertyID)
	}
	if !p.IsActive() {
		return errs.Wrapf(property.ErrInactive, "property %s", p.Code())
	}
	if unitID == nil {
		return nil
	}
	unit, err := reads.UnitByID(ctx, *unitID)
	if err != nil {
		return found(err, ErrUnitNotFound, *unitID)
	}
	return unit.EnsureBelongsTo(propertyID)
}

func (uc *bookingUseCaseImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateBookingInput) error {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return err
	}
	details, err := toDetailsPatch(in)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()
		now := uc.clock.Now()

		b, err := reads.BookingByID(ctx, id)
		if err != nil {
			return found(err, ErrBookingNotFound, id)
		}
		if b.IsArchived() {
			return booking.ErrArchivedIsReadOnly
		}

		if in.Checkin != nil || in.Checkout != nil {
			period, err := booking.NewStayPeriod(
				patch.Coalesce(in.Checkin, b.Checkin()),
				patch.Coalesce(in.Checkout, b.Checkout()),
			)
			if err != nil {
				return err
			}
			if !period.Equal(b.Period()) {
				if err := lockScope(ctx, tx, b.Scope()); err != nil {
					return err
				}
				self := b.ID()
				conflicts, err := uc.conflicts.Check(ctx, reads, b.Scope(), period, &self)
				if err != nil {
					return err
				}
				if err := conflicts.Err(); err != nil {
					return err
				}
				if _, err := b.Reschedule(period, now); err != nil {
					return err
				}
			}
		}

		previousGuest := b.GuestID()
		previousTotal := b.TotalAmount()
		guestChanged := in.GuestID != nil && *in.GuestID != previousGuest
		if guestChanged {
			if _, err := reads.GuestByID(ctx, *in.GuestID); err != nil {
				return found(err, ErrGuestNotFound, *in.GuestID)
			}
		}

		delta, err := b.ApplyDetails(details, now)
		if err != nil {
			return err
		}
		switch {
		case guestChanged:
			if err := tx.Guests().AdjustSpend(ctx, tx.DB(), previousGuest, previousTotal.Neg()); err != nil {
				return err
			}
			if err := tx.Guests().AdjustSpend(ctx, tx.DB(), b.GuestID(), b.TotalAmount()); err != nil {
				return err
			}
		case !delta.IsZero():
			if err := tx.Guests().AdjustSpend(ctx, tx.DB(), b.GuestID(), delta); err != nil {
				return err
			}
		}

		b.MarkUpdated(actor.IDPtr(), now)
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}
		return uc.saveEvents(ctx, tx, b)
	})
}

func toDetailsPatch(in UpdateBookingInput) (booking.DetailsPatch, error) {
	p := booking.DetailsPatch{
		GuestID:       in.GuestID,
		TotalAmount:   in.TotalAmount,
		Currency:      in.Currency,
		DepositAmount: in.DepositAmount,
		Notes:         in.Notes,
	}
	if in.Channel != nil {
		c, err := booking.NewChannel(*in.Channel)
		if err != nil {
			return booking.DetailsPatch{}, err
		}
		p.Channel = &c
	}
	if in.PaymentStatus != nil {
		s, err := booking.NewPaymentStatus(*in.PaymentStatus)
		if err != nil {
			return booking.DetailsPatch{}, err
		}
		p.PaymentStatus = &s
	}
	return p, nil
}

func (uc *bookingUseCaseImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return err
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return found(err, ErrBookingNotFound, id)
		}
		return uc.remove(ctx, tx, b)
	})
}

// remove reverses the guest spend and drops the booking with its finance records.
func (uc *bookingUseCaseImpl) remove(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	if err := tx.Guests().AdjustSpend(ctx, tx.DB(), b.GuestID(), b.TotalAmount().Neg()); err != nil {
		return err
	}
	if err := tx.Finance().DeleteByBooking(ctx, tx.DB(), b.ID()); err != nil {
		return err
	}
	return found(tx.Bookings().Delete(ctx, tx.DB(), b.ID()), ErrBookingNotFound, b.ID())
}

func (uc *bookingUseCaseImpl) CheckIn(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return err
	}
	today := uc.today()
	data, err := uc.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.CheckIn(today, now, actor.IDPtr())
	})
	if err != nil {
		return err
	}
	uc.publisher.Publish(booking.TriggerCheckIn, data)
	return nil
}

func (uc *bookingUseCaseImpl) CheckOut(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return err
	}
	today := uc.today()
	data, err := uc.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.CheckOut(today, now, actor.IDPtr())
	})
	if err != nil {
		return err
	}
	uc.pullCleaningForward(ctx, id, today)
	uc.publisher.Publish(booking.TriggerCheckOut, data)
	return nil
}

// transition loads, mutates and saves one booking and returns its event data.
func (uc *bookingUseCaseImpl) transition(ctx context.Context, id uuid.UUID, apply func(b *booking.Booking, now time.Time) error) (map[string]any, error) {
	var data map[string]any
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return found(err, ErrBookingNotFound, id)
		}
		if err := apply(b, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}
		if err := uc.saveEvents(ctx, tx, b); err != nil {
			return err
		}
		data = b.EventData()
		return nil
	})
	return data, err
}

// pullCleaningForward runs after the checkout commit; a failure leaves the task on its old date.
func (uc *bookingUseCaseImpl) pullCleaningForward(ctx context.Context, bookingID uuid.UUID, today time.Time) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ct, err := tx.Reads().FirstCleaningTaskForBooking(ctx, bookingID)
		if err != nil || ct == nil {
			return err
		}
		if !ct.PullForward(today, uc.clock.Now()) {
			return nil
		}
		return tx.Cleaning().Update(ctx, tx.DB(), ct)
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to reschedule cleaning after checkout",
			"booking_id", bookingID.String(),
			"error", err.Error())
	}
}

func (uc *bookingUseCaseImpl) Archive(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return err
	}
	today := uc.today()
	_, err := uc.transition(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.Archive(today, now, actor.IDPtr(), uc.lifecycle.BookingArchiveAfterDays)
	})
	return err
}

func (uc *bookingUseCaseImpl) Restore(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return err
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return found(err, ErrBookingNotFound, id)
		}
		if !b.Restore(uc.clock.Now(), actor.IDPtr()) {
			return nil
		}
		if err := tx.Bookings().Update(ctx, tx.DB(), b); err != nil {
			return err
		}
		return uc.saveEvents(ctx, tx, b)
	})
}

func (uc *bookingUseCaseImpl) PermanentlyDelete(ctx context.Context, actor shared.Actor, table string, id uuid.UUID) error {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return err
	}
	switch table {
	case TableBookings:
		return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			b, err := tx.Reads().BookingByID(ctx, id)
			if err != nil {
				return found(err, ErrBookingNotFound, id)
			}
			if err := b.EnsurePermanentlyDeletable(); err != nil {
				return err
			}
			return uc.remove(ctx, tx, b)
		})
	case TableGuests:
		today := uc.today()
		return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			reads := tx.Reads()
			g, err := reads.GuestByID(ctx, id)
			if err != nil {
				return found(err, ErrGuestNotFound, id)
			}
			history, err := reads.GuestStayHistory(ctx, id, today)
			if err != nil {
				return err
			}
			if err := g.EnsurePermanentlyDeletable(history); err != nil {
				return err
			}
			if err := tx.Bookings().DeleteByGuest(ctx, tx.DB(), id); err != nil {
				return err
			}
			return found(tx.Guests().Delete(ctx, tx.DB(), id), ErrGuestNotFound, id)
		})
	case TableProperties:
		return property.ErrHardDelete
	default:
		return errs.Wrapf(ErrUnsupportedArchive, "table %q", table)
	}
}

func (uc *bookingUseCaseImpl) AttachDocument(ctx context.Context, actor shared.Actor, id uuid.UUID, upload DocumentUpload) (string, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return "", err
	}
	if upload.Body == nil || upload.Size <= 0 {
		return "", ErrDocumentRequired
	}

	b, err := uc.uow.CommandReads().BookingByID(ctx, id)
	if err != nil {
		return "", found(err, ErrBookingNotFound, id)
	}
	if b.IsArchived() {
		return "", booking.ErrArchivedIsReadOnly
	}

	key := documentKey(b.Reference(), upload.Filename, uc.clock.Now())
	uri, err := uc.documents.Put(ctx, key, upload.ContentType, upload.Body, upload.Size)
	if err != nil {
		return "", errs.Wrap(err, "upload booking document")
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return found(err, ErrBookingNotFound, id)
		}
		if err := b.AddDocument(uri, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Bookings().Update(ctx, tx.DB(), b)
	})
	if err != nil {
		return "", err
	}
	return uri, nil
}

func documentKey(reference, filename string, now time.Time) string {
	name := strings.ReplaceAll(path.Base(strings.ReplaceAll(filename, "\\", "/")), " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "document"
	}
	return fmt.Sprintf("bookings/%s/%d-%s", reference, now.UnixMilli(), name)
}

func (uc *bookingUseCaseImpl) CheckConflict(ctx context.Context, actor shared.Actor, in ConflictCheckInput) (booking.ConflictResult, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return booking.ConflictResult{}, err
	}
	period, err := booking.NewStayPeriod(in.Checkin, in.Checkout)
	if err != nil {
		return booking.ConflictResult{}, err
	}
	return uc.conflicts.Check(ctx, uc.uow.CommandReads(), booking.NewScope(in.PropertyID, in.UnitID), period, in.ExcludeBookingID)
}

func (uc *bookingUseCaseImpl) saveEvents(ctx context.Context, tx shared.Tx, b *booking.Booking) error {
	if err := tx.Bookings().AppendEvents(ctx, tx.DB(), b.ID(), b.PendingEvents()); err != nil {
		return err
	}
	b.ClearPendingEvents()
	return nil
}
