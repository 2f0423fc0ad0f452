package converter

import (
	"rental-backoffice/internal/domain/finance"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
)

func FinanceRecordToRow(r *finance.Record) sqlc.FinanceRecords {
	return sqlc.FinanceRecords{
		ID:                r.ID(),
		Type:              string(r.Type()),
		Category:          r.Category(),
		Amount:            r.Amount(),
		Currency:          r.Currency(),
		RecordDate:        pgconv.DateToPgtype(r.Date()),
		PropertyID:        pgconv.UUIDPtrToPgtype(r.PropertyID()),
		BookingID:         pgconv.UUIDPtrToPgtype(r.BookingID()),
		GuestID:           pgconv.UUIDPtrToPgtype(r.GuestID()),
		CleaningTaskID:    pgconv.UUIDPtrToPgtype(r.CleaningTaskID()),
		MaintenanceTaskID: pgconv.UUIDPtrToPgtype(r.MaintenanceTaskID()),
		Status:            string(r.Status()),
		PaymentMethod:     pgconv.StringPtrToPgtype(r.PaymentMethod()),
		Description:       r.Description(),
		CreatedAt:         pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt:         pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func FinanceRecordFromRow(row sqlc.FinanceRecords) *finance.Record {
	return finance.Reconstruct(finance.Snapshot{
		ID:                row.ID,
		Type:              finance.Type(row.Type),
		Category:          row.Category,
		Amount:            row.Amount,
		Currency:          row.Currency,
		Date:              pgconv.DateFromPgtype(row.RecordDate),
		PropertyID:        pgconv.UUIDPtrFromPgtype(row.PropertyID),
		BookingID:         pgconv.UUIDPtrFromPgtype(row.BookingID),
		GuestID:           pgconv.UUIDPtrFromPgtype(row.GuestID),
		CleaningTaskID:    pgconv.UUIDPtrFromPgtype(row.CleaningTaskID),
		MaintenanceTaskID: pgconv.UUIDPtrFromPgtype(row.MaintenanceTaskID),
		Status:            finance.Status(row.Status),
		PaymentMethod:     pgconv.StringPtrFromPgtype(row.PaymentMethod),
		Description:       row.Description,
		CreatedAt:         pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:         pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}
