package readstore

import (
	"context"

	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type FinanceReadQueries interface {
	GetFinanceRecordByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.FinanceRecords, error)
	ListFinanceRecords(ctx context.Context, db sqlc.DBTX, arg sqlc.ListFinanceRecordsParams) ([]sqlc.FinanceRecords, error)
	SummarizeFinanceRecords(ctx context.Context, db sqlc.DBTX, propertyID pgtype.UUID, from, to pgtype.Date) ([]sqlc.FinanceSummaryRow, error)
}

type FinanceReadStore struct {
	queries FinanceReadQueries
	db      sqlc.DBTX
}

func NewFinanceReadStore(queries FinanceReadQueries, db sqlc.DBTX) *FinanceReadStore {
	return &FinanceReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *FinanceReadStore) Aggregate(ctx context.Context, id uuid.UUID) (*finance.Record, error) {
	row, err := r.queries.GetFinanceRecordByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("finance record not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find finance record by ID", err)
	}
	return converter.FinanceRecordFromRow(row), nil
}

func (r *FinanceReadStore) List(ctx context.Context, filter queries.FinanceFilter, limit int32) ([]*queries.FinanceRecordView, error) {
	rows, err := r.queries.ListFinanceRecords(ctx, r.db, sqlc.ListFinanceRecordsParams{
		Type:       pgconv.StringPtrToPgtype(filter.Type),
		Status:     pgconv.StringPtrToPgtype(filter.Status),
		PropertyID: pgconv.UUIDPtrToPgtype(filter.PropertyID),
		BookingID:  pgconv.UUIDPtrToPgtype(filter.BookingID),
		DateFrom:   pgconv.DatePtrToPgtype(filter.DateFrom),
		DateTo:     pgconv.DatePtrToPgtype(filter.DateTo),
		Limit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list finance records", err)
	}

	result := make([]*queries.FinanceRecordView, len(rows))
	for i, row := range rows {
		result[i] = &queries.FinanceRecordView{
			ID:                row.ID,
			Type:              row.Type,
			Category:          row.Category,
			Amount:            row.Amount,
			Currency:          row.Currency,
			Date:              pgconv.DateFromPgtype(row.RecordDate),
			PropertyID:        pgconv.UUIDPtrFromPgtype(row.PropertyID),
			BookingID:         pgconv.UUIDPtrFromPgtype(row.BookingID),
			GuestID:           pgconv.UUIDPtrFromPgtype(row.GuestID),
			CleaningTaskID:    pgconv.UUIDPtrFromPgtype(row.CleaningTaskID),
			MaintenanceTaskID: pgconv.UUIDPtrFromPgtype(row.MaintenanceTaskID),
			Status:            row.Status,
			PaymentMethod:     pgconv.StringPtrFromPgtype(row.PaymentMethod),
			Description:       row.Description,
			CreatedAt:         pgconv.TimeFromPgtype(row.CreatedAt),
			UpdatedAt:         pgconv.TimeFromPgtype(row.UpdatedAt),
		}
	}
	return result, nil
}

// Totals sums amounts per type and currency; type and status filters do not apply.
func (r *FinanceReadStore) Totals(ctx context.Context, filter queries.FinanceFilter) ([]queries.FinanceTotal, error) {
	rows, err := r.queries.SummarizeFinanceRecords(ctx, r.db,
		pgconv.UUIDPtrToPgtype(filter.PropertyID),
		pgconv.DatePtrToPgtype(filter.DateFrom),
		pgconv.DatePtrToPgtype(filter.DateTo),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to summarize finance records", err)
	}
	totals := make([]queries.FinanceTotal, len(rows))
	for i, row := range rows {
		totals[i] = queries.FinanceTotal{
			Type:     row.Type,
			Currency: row.Currency,
			Total:    row.Total,
			Count:    row.Count,
		}
	}
	return totals, nil
}
