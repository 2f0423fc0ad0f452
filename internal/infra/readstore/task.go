package readstore

import (
	"context"

	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type TaskReadQueries interface {
	GetCleaningTaskByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.CleaningTasks, error)
	GetFirstCleaningTaskByBooking(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) (sqlc.CleaningTasks, error)
	ListCleaningTasks(ctx context.Context, db sqlc.DBTX, arg sqlc.ListCleaningTasksParams) ([]sqlc.CleaningTasks, error)
	GetMaintenanceTaskByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.MaintenanceTasks, error)
	ListMaintenanceTasks(ctx context.Context, db sqlc.DBTX, arg sqlc.ListMaintenanceTasksParams) ([]sqlc.MaintenanceTasks, error)
}

type TaskReadStore struct {
	queries TaskReadQueries
	db      sqlc.DBTX
}

func NewTaskReadStore(queries TaskReadQueries, db sqlc.DBTX) *TaskReadStore {
	return &TaskReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *TaskReadStore) Cleaning(ctx context.Context, id uuid.UUID) (*task.CleaningTask, error) {
	row, err := r.queries.GetCleaningTaskByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cleaning task not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cleaning task by ID", err)
	}
	return converter.CleaningTaskFromRow(row), nil
}

// FirstCleaningForBooking returns nil when the booking never got a cleaning task.
func (r *TaskReadStore) FirstCleaningForBooking(ctx context.Context, bookingID uuid.UUID) (*task.CleaningTask, error) {
	row, err := r.queries.GetFirstCleaningTaskByBooking(ctx, r.db, bookingID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find cleaning task by booking", err)
	}
	return converter.CleaningTaskFromRow(row), nil
}

func (r *TaskReadStore) Maintenance(ctx context.Context, id uuid.UUID) (*task.MaintenanceTask, error) {
	row, err := r.queries.GetMaintenanceTaskByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("maintenance task not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find maintenance task by ID", err)
	}
	return converter.MaintenanceTaskFromRow(row), nil
}

func (r *TaskReadStore) ListCleaning(ctx context.Context, filter queries.CleaningTaskFilter, limit int32) ([]*queries.CleaningTaskView, error) {
	rows, err := r.queries.ListCleaningTasks(ctx, r.db, sqlc.ListCleaningTasksParams{
		PropertyID: pgconv.UUIDPtrToPgtype(filter.PropertyID),
		BookingID:  pgconv.UUIDPtrToPgtype(filter.BookingID),
		Status:     pgconv.StringPtrToPgtype(filter.Status),
		AssigneeID: pgconv.UUIDPtrToPgtype(filter.AssigneeID),
		DateFrom:   pgconv.DatePtrToPgtype(filter.DateFrom),
		DateTo:     pgconv.DatePtrToPgtype(filter.DateTo),
		Limit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list cleaning tasks", err)
	}

	result := make([]*queries.CleaningTaskView, len(rows))
	for i, row := range rows {
		result[i] = &queries.CleaningTaskView{
			ID:            row.ID,
			CleaningID:    row.CleaningID,
			PropertyID:    row.PropertyID,
			UnitID:        pgconv.UUIDPtrFromPgtype(row.UnitID),
			BookingID:     pgconv.UUIDPtrFromPgtype(row.BookingID),
			ScheduledDate: pgconv.DateFromPgtype(row.ScheduledDate),
			Status:        row.Status,
			AssigneeID:    pgconv.UUIDPtrFromPgtype(row.AssigneeID),
			BeforePhotos:  row.BeforePhotos,
			AfterPhotos:   row.AfterPhotos,
			Cost:          pgconv.DecimalPtrFromNull(row.Cost),
			Notes:         row.Notes,
			CompletedAt:   pgconv.TimePtrFromPgtype(row.CompletedAt),
			CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
			UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
		}
	}
	return result, nil
}

func (r *TaskReadStore) ListMaintenance(ctx context.Context, filter queries.MaintenanceTaskFilter, limit int32) ([]*queries.MaintenanceTaskView, error) {
	rows, err := r.queries.ListMaintenanceTasks(ctx, r.db, sqlc.ListMaintenanceTasksParams{
		PropertyID: pgconv.UUIDPtrToPgtype(filter.PropertyID),
		Status:     pgconv.StringPtrToPgtype(filter.Status),
		AssigneeID: pgconv.UUIDPtrToPgtype(filter.AssigneeID),
		Priority:   pgconv.StringPtrToPgtype(filter.Priority),
		Limit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list maintenance tasks", err)
	}

	result := make([]*queries.MaintenanceTaskView, len(rows))
	for i, row := range rows {
		result[i] = &queries.MaintenanceTaskView{
			ID:          row.ID,
			PropertyID:  row.PropertyID,
			UnitID:      pgconv.UUIDPtrFromPgtype(row.UnitID),
			Title:       row.Title,
			Description: row.Description,
			Priority:    row.Priority,
			Type:        row.Type,
			Status:      row.Status,
			AssigneeID:  pgconv.UUIDPtrFromPgtype(row.AssigneeID),
			DueDate:     pgconv.DatePtrFromPgtype(row.DueDate),
			Cost:        pgconv.DecimalPtrFromNull(row.Cost),
			ResolvedAt:  pgconv.TimePtrFromPgtype(row.ResolvedAt),
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
			UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
		}
	}
	return result, nil
}
