package commands

import (
	"context"

	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreatePropertyInput struct {
	Code    string
	Name    string
	Address string
}

type AddUnitInput struct {
	UnitCode string
	Name     string
}

// PropertyCommands is admin-only; properties are never hard-deleted, only set inactive.
type PropertyCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreatePropertyInput) (uuid.UUID, error)
	SetStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, status string) error
	AddUnit(ctx context.Context, actor shared.Actor, propertyID uuid.UUID, in AddUnitInput) (uuid.UUID, error)
}

type propertyUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPropertyUseCase(uow shared.UnitOfWork, clk clock.Clock) PropertyCommands {
	return &propertyUseCaseImpl{uow: uow, clock: clk}
}

func (uc *propertyUseCaseImpl) Create(ctx context.Context, actor shared.Actor, in CreatePropertyInput) (uuid.UUID, error) {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return uuid.Nil, err
	}
	p, err := property.NewProperty(in.Code, in.Name, in.Address, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return duplicate(tx.Properties().Create(ctx, tx.DB(), p), ErrDuplicateCode)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID(), nil
}

func (uc *propertyUseCaseImpl) SetStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, status string) error {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return err
	}
	s, err := property.NewStatus(status)
	if err != nil {
		return err
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Reads().PropertyByID(ctx, id)
		if err != nil {
			return found(err, ErrPropertyNotFound, id)
		}
		if p.Status() == s {
			return nil
		}
		if err := p.SetStatus(s, uc.clock.Now()); err != nil {
			return err
		}
		return found(tx.Properties().UpdateStatus(ctx, tx.DB(), p), ErrPropertyNotFound, id)
	})
}

func (uc *propertyUseCaseImpl) AddUnit(ctx context.Context, actor shared.Actor, propertyID uuid.UUID, in AddUnitInput) (uuid.UUID, error) {
	if err := actor.Require(user.RoleAdmin); err != nil {
		return uuid.Nil, err
	}
	u, err := property.NewUnit(propertyID, in.UnitCode, in.Name, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().PropertyByID(ctx, propertyID); err != nil {
			return found(err, ErrPropertyNotFound, propertyID)
		}
		return duplicate(tx.Properties().CreateUnit(ctx, tx.DB(), u), ErrDuplicateCode)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return u.ID(), nil
}
