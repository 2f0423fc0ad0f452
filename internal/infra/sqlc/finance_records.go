package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const financeColumns = `id, type, category, amount, currency, record_date, property_id, booking_id, guest_id,
	cleaning_task_id, maintenance_task_id, status, payment_method, description, created_at, updated_at`

func scanFinanceRecord(row pgx.Row) (FinanceRecords, error) {
	var i FinanceRecords
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Category,
		&i.Amount,
		&i.Currency,
		&i.RecordDate,
		&i.PropertyID,
		&i.BookingID,
		&i.GuestID,
		&i.CleaningTaskID,
		&i.MaintenanceTaskID,
		&i.Status,
		&i.PaymentMethod,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createFinanceRecord = `-- name: CreateFinanceRecord :exec
INSERT INTO finance_records (` + financeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

func (q *Queries) CreateFinanceRecord(ctx context.Context, db DBTX, arg FinanceRecords) error {
	_, err := db.Exec(ctx, createFinanceRecord,
		arg.ID,
		arg.Type,
		arg.Category,
		arg.Amount,
		arg.Currency,
		arg.RecordDate,
		arg.PropertyID,
		arg.BookingID,
		arg.GuestID,
		arg.CleaningTaskID,
		arg.MaintenanceTaskID,
		arg.Status,
		arg.PaymentMethod,
		arg.Description,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateFinanceSettlement = `-- name: UpdateFinanceSettlement :execrows
UPDATE finance_records SET status = $2, payment_method = $3, updated_at = $4 WHERE id = $1
`

func (q *Queries) UpdateFinanceSettlement(ctx context.Context, db DBTX, arg FinanceRecords) (int64, error) {
	result, err := db.Exec(ctx, updateFinanceSettlement, arg.ID, arg.Status, arg.PaymentMethod, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteFinanceRecordsByBooking = `-- name: DeleteFinanceRecordsByBooking :execrows
DELETE FROM finance_records WHERE booking_id = $1
`

func (q *Queries) DeleteFinanceRecordsByBooking(ctx context.Context, db DBTX, bookingID uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteFinanceRecordsByBooking, bookingID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getFinanceRecordByID = `-- name: GetFinanceRecordByID :one
SELECT ` + financeColumns + ` FROM finance_records WHERE id = $1
`

func (q *Queries) GetFinanceRecordByID(ctx context.Context, db DBTX, id uuid.UUID) (FinanceRecords, error) {
	return scanFinanceRecord(db.QueryRow(ctx, getFinanceRecordByID, id))
}

type ListFinanceRecordsParams struct {
	Type       pgtype.Text `json:"type"`
	Status     pgtype.Text `json:"status"`
	PropertyID pgtype.UUID `json:"property_id"`
	BookingID  pgtype.UUID `json:"booking_id"`
	DateFrom   pgtype.Date `json:"date_from"`
	DateTo     pgtype.Date `json:"date_to"`
	Limit      int32       `json:"limit"`
}

const listFinanceRecords = `-- name: ListFinanceRecords :many
SELECT ` + financeColumns + ` FROM finance_records
WHERE ($1::text IS NULL OR type = $1)
  AND ($2::text IS NULL OR status = $2)
  AND ($3::uuid IS NULL OR property_id = $3)
  AND ($4::uuid IS NULL OR booking_id = $4)
  AND ($5::date IS NULL OR record_date >= $5)
  AND ($6::date IS NULL OR record_date <= $6)
ORDER BY record_date DESC, id DESC
LIMIT $7
`

func (q *Queries) ListFinanceRecords(ctx context.Context, db DBTX, arg ListFinanceRecordsParams) ([]FinanceRecords, error) {
	rows, err := db.Query(ctx, listFinanceRecords,
		arg.Type, arg.Status, arg.PropertyID, arg.BookingID, arg.DateFrom, arg.DateTo, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (FinanceRecords, error) { return scanFinanceRecord(r) })
}

type FinanceSummaryRow struct {
	Type     string          `json:"type"`
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

const summarizeFinanceRecords = `-- name: SummarizeFinanceRecords :many
SELECT type, currency, COALESCE(SUM(amount), 0)::numeric AS total, COUNT(*) AS count
FROM finance_records
WHERE ($1::uuid IS NULL OR property_id = $1)
  AND ($2::date IS NULL OR record_date >= $2)
  AND ($3::date IS NULL OR record_date <= $3)
GROUP BY type, currency
ORDER BY type, currency
`

func (q *Queries) SummarizeFinanceRecords(ctx context.Context, db DBTX, propertyID pgtype.UUID, from, to pgtype.Date) ([]FinanceSummaryRow, error) {
	rows, err := db.Query(ctx, summarizeFinanceRecords, propertyID, from, to)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (FinanceSummaryRow, error) {
		var i FinanceSummaryRow
		err := r.Scan(&i.Type, &i.Currency, &i.Total, &i.Count)
		return i, err
	})
}
