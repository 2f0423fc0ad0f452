package commands

import (
	"context"

	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/config"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateGuestInput struct {
	Name        string
	Email       string
	Phone       string
	Nationality string
	Notes       string
}

type UpdateGuestInput struct {
	Name        *string
	Email       *string
	Phone       *string
	Nationality *string
	Notes       *string
	Blacklisted *bool
}

type GuestCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreateGuestInput) (uuid.UUID, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateGuestInput) error
	Archive(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Restore(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type guestUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	lifecycle config.LifecycleConfig
}

func NewGuestUseCase(uow shared.UnitOfWork, clk clock.Clock, lifecycle config.LifecycleConfig) GuestCommands {
	return &guestUseCaseImpl{uow: uow, clock: clk, lifecycle: lifecycle}
}

func (uc *guestUseCaseImpl) Create(ctx context.Context, actor shared.Actor, in CreateGuestInput) (uuid.UUID, error) {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return uuid.Nil, err
	}
	g, err := guest.NewGuest(guest.Contact(in), uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Guests().Create(ctx, tx.DB(), g)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return g.ID(), nil
}

func (uc *guestUseCaseImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateGuestInput) error {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return err
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		g, err := tx.Reads().GuestByID(ctx, id)
		if err != nil {
			return found(err, ErrGuestNotFound, id)
		}
		if err := g.Apply(guest.Patch(in), uc.clock.Now()); err != nil {
			return err
		}
		return tx.Guests().Update(ctx, tx.DB(), g)
	})
}

func (uc *guestUseCaseImpl) Archive(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return err
	}
	today := clock.Today(uc.clock, uc.lifecycle.Location())
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
		if err := g.Archive(today, uc.clock.Now(), history, uc.lifecycle.GuestArchiveAfterDays); err != nil {
			return err
		}
		return tx.Guests().Update(ctx, tx.DB(), g)
	})
}

// Restore is a no-op for a guest that is not archived.
func (uc *guestUseCaseImpl) Restore(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return err
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		g, err := tx.Reads().GuestByID(ctx, id)
		if err != nil {
			return found(err, ErrGuestNotFound, id)
		}
		if !g.Restore(uc.clock.Now()) {
			return nil
		}
		return tx.Guests().Update(ctx, tx.DB(), g)
	})
}
