package commands

import (
	"context"
	"time"

	"rental-backoffice/internal/domain/booking"
	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCleaningInput struct {
	PropertyID    uuid.UUID
	UnitID        *uuid.UUID
	BookingID     *uuid.UUID
	ScheduledDate time.Time
	AssigneeID    *uuid.UUID
	Notes         string
}

type UpdateCleaningInput struct {
	ScheduledDate *time.Time
	Status        *string
	AssigneeID    **uuid.UUID
	BeforePhotos  []string
	AfterPhotos   []string
	Notes         *string
}

type ResolveCleaningInput struct {
	Cost        *decimal.Decimal
	AfterPhotos []string
}

type CreateMaintenanceInput struct {
	PropertyID  uuid.UUID
	UnitID      *uuid.UUID
	Title       string
	Description string
	Priority    string
	Type        string
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

type UpdateMaintenanceInput struct {
	Title       *string
	Description *string
	Priority    *string
	Type        *string
	Status      *string
	AssigneeID  **uuid.UUID
	DueDate     **time.Time
}

type ResolveMaintenanceInput struct {
	Cost *decimal.Decimal
	Note string
}

type TaskCommands interface {
	CreateCleaning(ctx context.Context, actor shared.Actor, in CreateCleaningInput) (uuid.UUID, error)
	UpdateCleaning(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateCleaningInput) error
	ResolveCleaning(ctx context.Context, actor shared.Actor, id uuid.UUID, in ResolveCleaningInput) error
	CreateMaintenance(ctx context.Context, actor shared.Actor, in CreateMaintenanceInput) (uuid.UUID, error)
	UpdateMaintenance(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateMaintenanceInput) error
	ResolveMaintenance(ctx context.Context, actor shared.Actor, id uuid.UUID, in ResolveMaintenanceInput) error
}

type taskUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTaskUseCase(uow shared.UnitOfWork, clk clock.Clock) TaskCommands {
	return &taskUseCaseImpl{uow: uow, clock: clk}
}

// ensureLocation checks the property exists and the unit, if any, is one of its units.
func ensureLocation(ctx context.Context, reads shared.CommandReads, propertyID uuid.UUID, unitID *uuid.UUID) error {
	if _, err := reads.PropertyByID(ctx, propertyID); err != nil {
		return found(err, ErrPropertyNotFound, propertyID)
	}
	if unitID == nil {
		return nil
	}
	u, err := reads.UnitByID(ctx, *unitID)
	if err != nil {
		return found(err, ErrUnitNotFound, *unitID)
	}
	return u.EnsureBelongsTo(propertyID)
}

// mayResolve lets office staff resolve any task and field staff only their own.
func mayResolve(actor shared.Actor, assigned func(uuid.UUID) bool) error {
	if actor.Role.IsOffice() {
		return nil
	}
	if err := actor.Require(user.RoleCleaner, user.RoleMaintenance); err != nil {
		return err
	}
	if !assigned(actor.ID) {
		return ErrTaskNotAssigned
	}
	return nil
}

func (uc *taskUseCaseImpl) CreateCleaning(ctx context.Context, actor shared.Actor, in CreateCleaningInput) (uuid.UUID, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return uuid.Nil, err
	}
	t, err := task.NewCleaningTask(task.NewCleaningParams(in), uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()
		if err := ensureLocation(ctx, reads, in.PropertyID, in.UnitID); err != nil {
			return err
		}
		if in.BookingID != nil {
			if _, err := reads.BookingByID(ctx, *in.BookingID); err != nil {
				return found(err, ErrBookingNotFound, *in.BookingID)
			}
		}
		return tx.Cleaning().Create(ctx, tx.DB(), t)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return t.ID(), nil
}

func (uc *taskUseCaseImpl) UpdateCleaning(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateCleaningInput) error {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return err
	}
	p := task.CleaningPatch{
		ScheduledDate: in.ScheduledDate,
		AssigneeID:    in.AssigneeID,
		BeforePhotos:  in.BeforePhotos,
		AfterPhotos:   in.AfterPhotos,
		Notes:         in.Notes,
	}
	if in.Status != nil {
		s, err := task.NewCleaningStatus(*in.Status)
		if err != nil {
			return err
		}
		p.Status = &s
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Reads().CleaningTaskByID(ctx, id)
		if err != nil {
			return found(err, ErrTaskNotFound, id)
		}
		if err := t.Apply(p, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Cleaning().Update(ctx, tx.DB(), t)
	})
}

func (uc *taskUseCaseImpl) ResolveCleaning(ctx context.Context, actor shared.Actor, id uuid.UUID, in ResolveCleaningInput) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()
		t, err := reads.CleaningTaskByID(ctx, id)
		if err != nil {
			return found(err, ErrTaskNotFound, id)
		}
		if err := mayResolve(actor, t.IsAssignedTo); err != nil {
			return err
		}
		now := uc.clock.Now()
		expenseDue, err := t.Complete(in.Cost, in.AfterPhotos, now)
		if err != nil {
			return err
		}
		if err := tx.Cleaning().Update(ctx, tx.DB(), t); err != nil {
			return err
		}
		if !expenseDue {
			return nil
		}

		currency := booking.DefaultCurrency
		if t.BookingID() != nil {
			b, err := reads.BookingByID(ctx, *t.BookingID())
			switch {
			case err == nil:
				currency = b.Currency()
			case !isNotFound(err):
				return err
			}
		}
		expense, err := finance.NewCleaningExpense(t, *t.Cost(), currency, now)
		if err != nil {
			return err
		}
		return tx.Finance().Create(ctx, tx.DB(), expense)
	})
}

func (uc *taskUseCaseImpl) CreateMaintenance(ctx context.Context, actor shared.Actor, in CreateMaintenanceInput) (uuid.UUID, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return uuid.Nil, err
	}
	priority, err := task.NewPriority(in.Priority)
	if err != nil {
		return uuid.Nil, err
	}
	kind, err := task.NewMaintenanceType(in.Type)
	if err != nil {
		return uuid.Nil, err
	}
	t, err := task.NewMaintenanceTask(task.NewMaintenanceParams{
		PropertyID:  in.PropertyID,
		UnitID:      in.UnitID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		Type:        kind,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
	}, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureLocation(ctx, tx.Reads(), in.PropertyID, in.UnitID); err != nil {
			return err
		}
		return tx.Maintenance().Create(ctx, tx.DB(), t)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return t.ID(), nil
}

func (uc *taskUseCaseImpl) UpdateMaintenance(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateMaintenanceInput) error {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return err
	}
	p := task.MaintenancePatch{
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
	}
	if in.Priority != nil {
		pr := task.Priority(*in.Priority)
		p.Priority = &pr
	}
	if in.Type != nil {
		kind := task.MaintenanceType(*in.Type)
		p.Type = &kind
	}
	if in.Status != nil {
		s := task.MaintenanceStatus(*in.Status)
		p.Status = &s
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Reads().MaintenanceTaskByID(ctx, id)
		if err != nil {
			return found(err, ErrTaskNotFound, id)
		}
		if err := t.Apply(p, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Maintenance().Update(ctx, tx.DB(), t)
	})
}

func (uc *taskUseCaseImpl) ResolveMaintenance(ctx context.Context, actor shared.Actor, id uuid.UUID, in ResolveMaintenanceInput) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Reads().MaintenanceTaskByID(ctx, id)
		if err != nil {
			return found(err, ErrTaskNotFound, id)
		}
		if err := mayResolve(actor, t.IsAssignedTo); err != nil {
			return err
		}
		now := uc.clock.Now()
		expenseDue, err := t.Resolve(in.Cost, in.Note, now)
		if err != nil {
			return err
		}
		if err := tx.Maintenance().Update(ctx, tx.DB(), t); err != nil {
			return err
		}
		if !expenseDue {
			return nil
		}
		expense, err := finance.NewMaintenanceExpense(t, *t.Cost(), booking.DefaultCurrency, now)
		if err != nil {
			return err
		}
		return tx.Finance().Create(ctx, tx.DB(), expense)
	})
}
