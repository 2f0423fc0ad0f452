package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const guestColumns = `id, name, email, phone, nationality, total_spend, blacklisted, notes, archived_at, created_at, updated_at`

func scanGuest(row pgx.Row) (Guests, error) {
	var i Guests
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.Nationality,
		&i.TotalSpend,
		&i.Blacklisted,
		&i.Notes,
		&i.ArchivedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createGuest = `-- name: CreateGuest :exec
INSERT INTO guests (` + guestColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func (q *Queries) CreateGuest(ctx context.Context, db DBTX, arg Guests) error {
	_, err := db.Exec(ctx, createGuest,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Nationality,
		arg.TotalSpend,
		arg.Blacklisted,
		arg.Notes,
		arg.ArchivedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

// total_spend is deliberately absent; it only moves through AdjustGuestSpend.
const updateGuest = `-- name: UpdateGuest :execrows
UPDATE guests SET
	name = $2,
	email = $3,
	phone = $4,
	nationality = $5,
	blacklisted = $6,
	notes = $7,
	archived_at = $8,
	updated_at = $9
WHERE id = $1
`

func (q *Queries) UpdateGuest(ctx context.Context, db DBTX, arg Guests) (int64, error) {
	result, err := db.Exec(ctx, updateGuest,
		arg.ID,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Nationality,
		arg.Blacklisted,
		arg.Notes,
		arg.ArchivedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const adjustGuestSpend = `-- name: AdjustGuestSpend :execrows
UPDATE guests SET total_spend = total_spend + $2, updated_at = now() WHERE id = $1
`

func (q *Queries) AdjustGuestSpend(ctx context.Context, db DBTX, id uuid.UUID, delta decimal.Decimal) (int64, error) {
	result, err := db.Exec(ctx, adjustGuestSpend, id, delta)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteGuest = `-- name: DeleteGuest :execrows
DELETE FROM guests WHERE id = $1
`

func (q *Queries) DeleteGuest(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteGuest, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getGuestByID = `-- name: GetGuestByID :one
SELECT ` + guestColumns + ` FROM guests WHERE id = $1
`

func (q *Queries) GetGuestByID(ctx context.Context, db DBTX, id uuid.UUID) (Guests, error) {
	return scanGuest(db.QueryRow(ctx, getGuestByID, id))
}

type ListGuestsParams struct {
	Search         pgtype.Text        `json:"search"`
	Archived       pgtype.Bool        `json:"archived"`
	AfterCreatedAt pgtype.Timestamptz `json:"after_created_at"`
	AfterID        pgtype.UUID        `json:"after_id"`
	Limit          int32              `json:"limit"`
}

const listGuests = `-- name: ListGuests :many
SELECT ` + guestColumns + ` FROM guests
WHERE ($1::text IS NULL OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
  AND ($2::boolean IS NULL OR (archived_at IS NOT NULL) = $2)
  AND ($3::timestamptz IS NULL OR (created_at, id) < ($3, $4::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $5
`

func (q *Queries) ListGuests(ctx context.Context, db DBTX, arg ListGuestsParams) ([]Guests, error) {
	rows, err := db.Query(ctx, listGuests, arg.Search, arg.Archived, arg.AfterCreatedAt, arg.AfterID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (Guests, error) { return scanGuest(r) })
}
