package repository

import (
	"context"

	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GuestWriteQueries interface {
	CreateGuest(ctx context.Context, db sqlc.DBTX, arg sqlc.Guests) error
	UpdateGuest(ctx context.Context, db sqlc.DBTX, arg sqlc.Guests) (int64, error)
	AdjustGuestSpend(ctx context.Context, db sqlc.DBTX, id uuid.UUID, delta decimal.Decimal) (int64, error)
	DeleteGuest(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
}

type GuestRepository struct {
	queries GuestWriteQueries
	db      sqlc.DBTX
}

func NewGuestRepository(queries GuestWriteQueries, db sqlc.DBTX) *GuestRepository {
	return &GuestRepository{
		queries: queries,
		db:      db,
	}
}

func (r *GuestRepository) Create(ctx context.Context, tx sqlc.DBTX, g *guest.Guest) error {
	if err := r.queries.CreateGuest(ctx, tx, converter.GuestToRow(g)); err != nil {
		return infra.WrapRepoErr("failed to create guest", err)
	}
	return nil
}

func (r *GuestRepository) Update(ctx context.Context, tx sqlc.DBTX, g *guest.Guest) error {
	n, err := r.queries.UpdateGuest(ctx, tx, converter.GuestToRow(g))
	if err != nil {
		return infra.WrapRepoErr("failed to update guest", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("guest not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *GuestRepository) AdjustSpend(ctx context.Context, tx sqlc.DBTX, guestID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	n, err := r.queries.AdjustGuestSpend(ctx, tx, guestID, delta)
	if err != nil {
		return infra.WrapRepoErr("failed to adjust guest spend", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("guest not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error {
	n, err := r.queries.DeleteGuest(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete guest", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("guest not found", nil, infra.KindNotFound)
	}
	return nil
}
