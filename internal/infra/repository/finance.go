package repository

import (
	"context"

	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"

	"github.com/google/uuid"
)

type FinanceWriteQueries interface {
	CreateFinanceRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.FinanceRecords) error
	UpdateFinanceSettlement(ctx context.Context, db sqlc.DBTX, arg sqlc.FinanceRecords) (int64, error)
	DeleteFinanceRecordsByBooking(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) (int64, error)
}

type FinanceRepository struct {
	queries FinanceWriteQueries
	db      sqlc.DBTX
}

func NewFinanceRepository(queries FinanceWriteQueries, db sqlc.DBTX) *FinanceRepository {
	return &FinanceRepository{queries: queries, db: db}
}

// Create relies on the partial unique indexes: a second leg for the same source is DUPLICATE_KEY.
func (r *FinanceRepository) Create(ctx context.Context, tx sqlc.DBTX, rec *finance.Record) error {
	if err := r.queries.CreateFinanceRecord(ctx, tx, converter.FinanceRecordToRow(rec)); err != nil {
		return infra.WrapRepoErr("failed to create finance record", err)
	}
	return nil
}

func (r *FinanceRepository) UpdateSettlement(ctx context.Context, tx sqlc.DBTX, rec *finance.Record) error {
	n, err := r.queries.UpdateFinanceSettlement(ctx, tx, converter.FinanceRecordToRow(rec))
	if err != nil {
		return infra.WrapRepoErr("failed to update finance record", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("finance record not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *FinanceRepository) DeleteByBooking(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID) error {
	if _, err := r.queries.DeleteFinanceRecordsByBooking(ctx, tx, bookingID); err != nil {
		return infra.WrapRepoErr("failed to delete booking finance records", err)
	}
	return nil
}
