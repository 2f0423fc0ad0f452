package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const cleaningColumns = `id, cleaning_id, property_id, unit_id, booking_id, scheduled_date, status, assignee_id,
	before_photos, after_photos, cost, notes, completed_at, created_at, updated_at`

func scanCleaningTask(row pgx.Row) (CleaningTasks, error) {
	var i CleaningTasks
	err := row.Scan(
		&i.ID,
		&i.CleaningID,
		&i.PropertyID,
		&i.UnitID,
		&i.BookingID,
		&i.ScheduledDate,
		&i.Status,
		&i.AssigneeID,
		&i.BeforePhotos,
		&i.AfterPhotos,
		&i.Cost,
		&i.Notes,
		&i.CompletedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createCleaningTask = `-- name: CreateCleaningTask :exec
INSERT INTO cleaning_tasks (` + cleaningColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`

func (q *Queries) CreateCleaningTask(ctx context.Context, db DBTX, arg CleaningTasks) error {
	_, err := db.Exec(ctx, createCleaningTask,
		arg.ID,
		arg.CleaningID,
		arg.PropertyID,
		arg.UnitID,
		arg.BookingID,
		arg.ScheduledDate,
		arg.Status,
		arg.AssigneeID,
		arg.BeforePhotos,
		arg.AfterPhotos,
		arg.Cost,
		arg.Notes,
		arg.CompletedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateCleaningTask = `-- name: UpdateCleaningTask :execrows
UPDATE cleaning_tasks SET
	scheduled_date = $2,
	status = $3,
	assignee_id = $4,
	before_photos = $5,
	after_photos = $6,
	cost = $7,
	notes = $8,
	completed_at = $9,
	updated_at = $10
WHERE id = $1
`

func (q *Queries) UpdateCleaningTask(ctx context.Context, db DBTX, arg CleaningTasks) (int64, error) {
	result, err := db.Exec(ctx, updateCleaningTask,
		arg.ID,
		arg.ScheduledDate,
		arg.Status,
		arg.AssigneeID,
		arg.BeforePhotos,
		arg.AfterPhotos,
		arg.Cost,
		arg.Notes,
		arg.CompletedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getCleaningTaskByID = `-- name: GetCleaningTaskByID :one
SELECT ` + cleaningColumns + ` FROM cleaning_tasks WHERE id = $1
`

func (q *Queries) GetCleaningTaskByID(ctx context.Context, db DBTX, id uuid.UUID) (CleaningTasks, error) {
	return scanCleaningTask(db.QueryRow(ctx, getCleaningTaskByID, id))
}

const getFirstCleaningTaskByBooking = `-- name: GetFirstCleaningTaskByBooking :one
SELECT ` + cleaningColumns + ` FROM cleaning_tasks WHERE booking_id = $1 ORDER BY created_at, id LIMIT 1
`

func (q *Queries) GetFirstCleaningTaskByBooking(ctx context.Context, db DBTX, bookingID uuid.UUID) (CleaningTasks, error) {
	return scanCleaningTask(db.QueryRow(ctx, getFirstCleaningTaskByBooking, bookingID))
}

type ListCleaningTasksParams struct {
	PropertyID pgtype.UUID `json:"property_id"`
	BookingID  pgtype.UUID `json:"booking_id"`
	Status     pgtype.Text `json:"status"`
	AssigneeID pgtype.UUID `json:"assignee_id"`
	DateFrom   pgtype.Date `json:"date_from"`
	DateTo     pgtype.Date `json:"date_to"`
	Limit      int32       `json:"limit"`
}

const listCleaningTasks = `-- name: ListCleaningTasks :many
SELECT ` + cleaningColumns + ` FROM cleaning_tasks
WHERE ($1::uuid IS NULL OR property_id = $1)
  AND ($2::uuid IS NULL OR booking_id = $2)
  AND ($3::text IS NULL OR status = $3)
  AND ($4::uuid IS NULL OR assignee_id = $4)
  AND ($5::date IS NULL OR scheduled_date >= $5)
  AND ($6::date IS NULL OR scheduled_date <= $6)
ORDER BY scheduled_date, created_at
LIMIT $7
`

func (q *Queries) ListCleaningTasks(ctx context.Context, db DBTX, arg ListCleaningTasksParams) ([]CleaningTasks, error) {
	rows, err := db.Query(ctx, listCleaningTasks,
		arg.PropertyID, arg.BookingID, arg.Status, arg.AssigneeID, arg.DateFrom, arg.DateTo, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (CleaningTasks, error) { return scanCleaningTask(r) })
}

const maintenanceColumns = `id, property_id, unit_id, title, description, priority, type, status, assignee_id,
	due_date, cost, resolved_at, created_at, updated_at`

func scanMaintenanceTask(row pgx.Row) (MaintenanceTasks, error) {
	var i MaintenanceTasks
	err := row.Scan(
		&i.ID,
		&i.PropertyID,
		&i.UnitID,
		&i.Title,
		&i.Description,
		&i.Priority,
		&i.Type,
		&i.Status,
		&i.AssigneeID,
		&i.DueDate,
		&i.Cost,
		&i.ResolvedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createMaintenanceTask = `-- name: CreateMaintenanceTask :exec
INSERT INTO maintenance_tasks (` + maintenanceColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func (q *Queries) CreateMaintenanceTask(ctx context.Context, db DBTX, arg MaintenanceTasks) error {
	_, err := db.Exec(ctx, createMaintenanceTask,
		arg.ID,
		arg.PropertyID,
		arg.UnitID,
		arg.Title,
		arg.Description,
		arg.Priority,
		arg.Type,
		arg.Status,
		arg.AssigneeID,
		arg.DueDate,
		arg.Cost,
		arg.ResolvedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateMaintenanceTask = `-- name: UpdateMaintenanceTask :execrows
UPDATE maintenance_tasks SET
	title = $2,
	description = $3,
	priority = $4,
	type = $5,
	status = $6,
	assignee_id = $7,
	due_date = $8,
	cost = $9,
	resolved_at = $10,
	updated_at = $11
WHERE id = $1
`

func (q *Queries) UpdateMaintenanceTask(ctx context.Context, db DBTX, arg MaintenanceTasks) (int64, error) {
	result, err := db.Exec(ctx, updateMaintenanceTask,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.Priority,
		arg.Type,
		arg.Status,
		arg.AssigneeID,
		arg.DueDate,
		arg.Cost,
		arg.ResolvedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getMaintenanceTaskByID = `-- name: GetMaintenanceTaskByID :one
SELECT ` + maintenanceColumns + ` FROM maintenance_tasks WHERE id = $1
`

func (q *Queries) GetMaintenanceTaskByID(ctx context.Context, db DBTX, id uuid.UUID) (MaintenanceTasks, error) {
	return scanMaintenanceTask(db.QueryRow(ctx, getMaintenanceTaskByID, id))
}

type ListMaintenanceTasksParams struct {
	PropertyID pgtype.UUID `json:"property_id"`
	Status     pgtype.Text `json:"status"`
	AssigneeID pgtype.UUID `json:"assignee_id"`
	Priority   pgtype.Text `json:"priority"`
	Limit      int32       `json:"limit"`
}

const listMaintenanceTasks = `-- name: ListMaintenanceTasks :many
SELECT ` + maintenanceColumns + ` FROM maintenance_tasks
WHERE ($1::uuid IS NULL OR property_id = $1)
  AND ($2::text IS NULL OR status = $2)
  AND ($3::uuid IS NULL OR assignee_id = $3)
  AND ($4::text IS NULL OR priority = $4)
ORDER BY created_at DESC, id DESC
LIMIT $5
`

func (q *Queries) ListMaintenanceTasks(ctx context.Context, db DBTX, arg ListMaintenanceTasksParams) ([]MaintenanceTasks, error) {
	rows, err := db.Query(ctx, listMaintenanceTasks, arg.PropertyID, arg.Status, arg.AssigneeID, arg.Priority, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r pgx.Rows) (MaintenanceTasks, error) { return scanMaintenanceTask(r) })
}
