package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createProperty = `-- name: CreateProperty :exec
INSERT INTO properties (id, code, name, address, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (q *Queries) CreateProperty(ctx context.Context, db DBTX, arg Properties) error {
	_, err := db.Exec(ctx, createProperty, arg.ID, arg.Code, arg.Name, arg.Address, arg.Status, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const updatePropertyStatus = `-- name: UpdatePropertyStatus :execrows
UPDATE properties SET status = $2, updated_at = $3 WHERE id = $1
`

func (q *Queries) UpdatePropertyStatus(ctx context.Context, db DBTX, id uuid.UUID, status string, updatedAt pgtype.Timestamptz) (int64, error) {
	result, err := db.Exec(ctx, updatePropertyStatus, id, status, updatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getPropertyByID = `-- name: GetPropertyByID :one
SELECT id, code, name, address, status, created_at, updated_at FROM properties WHERE id = $1
`

func scanProperty(row pgx.Row) (Properties, error) {
	var i Properties
	err := row.Scan(&i.ID, &i.Code, &i.Name, &i.Address, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func (q *Queries) GetPropertyByID(ctx context.Context, db DBTX, id uuid.UUID) (Properties, error) {
	return scanProperty(db.QueryRow(ctx, getPropertyByID, id))
}

const listProperties = `-- name: ListProperties :many
SELECT id, code, name, address, status, created_at, updated_at FROM properties
WHERE ($1::text IS NULL OR status = $1)
ORDER BY code
`

func (q *Queries) ListProperties(ctx context.Context, db DBTX, status pgtype.Text) ([]Properties, error) {
	rows, err := db.Query(ctx, listProperties, status)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (Properties, error) { return scanProperty(r) })
}

const createUnit = `-- name: CreateUnit :exec
INSERT INTO units (id, property_id, unit_code, name, created_at) VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) CreateUnit(ctx context.Context, db DBTX, arg Units) error {
	_, err := db.Exec(ctx, createUnit, arg.ID, arg.PropertyID, arg.UnitCode, arg.Name, arg.CreatedAt)
	return err
}

const getUnitByID = `-- name: GetUnitByID :one
SELECT id, property_id, unit_code, name, created_at FROM units WHERE id = $1
`

func scanUnit(row pgx.Row) (Units, error) {
	var i Units
	err := row.Scan(&i.ID, &i.PropertyID, &i.UnitCode, &i.Name, &i.CreatedAt)
	return i, err
}

func (q *Queries) GetUnitByID(ctx context.Context, db DBTX, id uuid.UUID) (Units, error) {
	return scanUnit(db.QueryRow(ctx, getUnitByID, id))
}

const listUnitsByProperty = `-- name: ListUnitsByProperty :many
SELECT id, property_id, unit_code, name, created_at FROM units WHERE property_id = $1 ORDER BY unit_code
`

func (q *Queries) ListUnitsByProperty(ctx context.Context, db DBTX, propertyID uuid.UUID) ([]Units, error) {
	rows, err := db.Query(ctx, listUnitsByProperty, propertyID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (Units, error) { return scanUnit(r) })
}
