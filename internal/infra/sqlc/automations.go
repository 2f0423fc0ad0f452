package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const automationColumns = `id, name, trigger, conditions, actions, enabled, created_at, updated_at`

func scanAutomation(row pgx.Row) (Automations, error) {
	var i Automations
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Trigger,
		&i.Conditions,
		&i.Actions,
		&i.Enabled,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createAutomation = `-- name: CreateAutomation :exec
INSERT INTO automations (` + automationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (q *Queries) CreateAutomation(ctx context.Context, db DBTX, arg Automations) error {
	_, err := db.Exec(ctx, createAutomation,
		arg.ID, arg.Name, arg.Trigger, arg.Conditions, arg.Actions, arg.Enabled, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const updateAutomation = `-- name: UpdateAutomation :execrows
UPDATE automations SET name = $2, trigger = $3, conditions = $4, actions = $5, enabled = $6, updated_at = $7
WHERE id = $1
`

func (q *Queries) UpdateAutomation(ctx context.Context, db DBTX, arg Automations) (int64, error) {
	result, err := db.Exec(ctx, updateAutomation,
		arg.ID, arg.Name, arg.Trigger, arg.Conditions, arg.Actions, arg.Enabled, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteAutomation = `-- name: DeleteAutomation :execrows
DELETE FROM automations WHERE id = $1
`

func (q *Queries) DeleteAutomation(ctx context.Context, db DBTX, id uuid.UUID) (int64, error) {
	result, err := db.Exec(ctx, deleteAutomation, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getAutomationByID = `-- name: GetAutomationByID :one
SELECT ` + automationColumns + ` FROM automations WHERE id = $1
`

func (q *Queries) GetAutomationByID(ctx context.Context, db DBTX, id uuid.UUID) (Automations, error) {
	return scanAutomation(db.QueryRow(ctx, getAutomationByID, id))
}

const listAutomations = `-- name: ListAutomations :many
SELECT ` + automationColumns + ` FROM automations ORDER BY created_at, id
`

func (q *Queries) ListAutomations(ctx context.Context, db DBTX) ([]Automations, error) {
	rows, err := db.Query(ctx, listAutomations)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (Automations, error) { return scanAutomation(r) })
}

const listEnabledAutomationsByTrigger = `-- name: ListEnabledAutomationsByTrigger :many
SELECT ` + automationColumns + ` FROM automations WHERE enabled AND trigger = $1 ORDER BY created_at, id
`

func (q *Queries) ListEnabledAutomationsByTrigger(ctx context.Context, db DBTX, trigger string) ([]Automations, error) {
	rows, err := db.Query(ctx, listEnabledAutomationsByTrigger, trigger)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (Automations, error) { return scanAutomation(r) })
}
