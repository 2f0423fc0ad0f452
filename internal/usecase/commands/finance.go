package commands

import (
	"context"

	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

type SettleFinanceInput struct {
	Status        string
	PaymentMethod *string
}

type FinanceCommands interface {
	Settle(ctx context.Context, actor shared.Actor, id uuid.UUID, in SettleFinanceInput) error
}

type financeUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewFinanceUseCase(uow shared.UnitOfWork, clk clock.Clock) FinanceCommands {
	return &financeUseCaseImpl{uow: uow, clock: clk}
}

func (uc *financeUseCaseImpl) Settle(ctx context.Context, actor shared.Actor, id uuid.UUID, in SettleFinanceInput) error {
	if err := actor.Require(user.RoleAdmin, user.RoleAssistant); err != nil {
		return err
	}
	status, err := finance.NewStatus(in.Status)
	if err != nil {
		return err
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reads().FinanceRecordByID(ctx, id)
		if err != nil {
			return found(err, ErrFinanceNotFound, id)
		}
		if err := r.Settle(status, in.PaymentMethod, uc.clock.Now()); err != nil {
			return err
		}
		return found(tx.Finance().UpdateSettlement(ctx, tx.DB(), r), ErrFinanceNotFound, id)
	})
}
