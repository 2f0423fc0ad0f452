package converter

import (
	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
)

func CleaningTaskToRow(t *task.CleaningTask) sqlc.CleaningTasks {
	return sqlc.CleaningTasks{
		ID:            t.ID(),
		CleaningID:    t.Code(),
		PropertyID:    t.PropertyID(),
		UnitID:        pgconv.UUIDPtrToPgtype(t.UnitID()),
		BookingID:     pgconv.UUIDPtrToPgtype(t.BookingID()),
		ScheduledDate: pgconv.DateToPgtype(t.ScheduledDate()),
		Status:        string(t.Status()),
		AssigneeID:    pgconv.UUIDPtrToPgtype(t.AssigneeID()),
		BeforePhotos:  nonNil(t.BeforePhotos()),
		AfterPhotos:   nonNil(t.AfterPhotos()),
		Cost:          pgconv.DecimalPtrToNull(t.Cost()),
		Notes:         t.Notes(),
		CompletedAt:   pgconv.TimePtrToPgtype(t.CompletedAt()),
		CreatedAt:     pgconv.TimeToPgtype(t.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(t.UpdatedAt()),
	}
}

func CleaningTaskFromRow(row sqlc.CleaningTasks) *task.CleaningTask {
	return task.ReconstructCleaningTask(task.CleaningSnapshot{
		ID:            row.ID,
		Code:          row.CleaningID,
		PropertyID:    row.PropertyID,
		UnitID:        pgconv.UUIDPtrFromPgtype(row.UnitID),
		BookingID:     pgconv.UUIDPtrFromPgtype(row.BookingID),
		ScheduledDate: pgconv.DateFromPgtype(row.ScheduledDate),
		Status:        task.CleaningStatus(row.Status),
		AssigneeID:    pgconv.UUIDPtrFromPgtype(row.AssigneeID),
		BeforePhotos:  nonNil(row.BeforePhotos),
		AfterPhotos:   nonNil(row.AfterPhotos),
		Cost:          pgconv.DecimalPtrFromNull(row.Cost),
		Notes:         row.Notes,
		CompletedAt:   pgconv.TimePtrFromPgtype(row.CompletedAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func MaintenanceTaskToRow(t *task.MaintenanceTask) sqlc.MaintenanceTasks {
	return sqlc.MaintenanceTasks{
		ID:          t.ID(),
		PropertyID:  t.PropertyID(),
		UnitID:      pgconv.UUIDPtrToPgtype(t.UnitID()),
		Title:       t.Title(),
		Description: t.Description(),
		Priority:    string(t.Priority()),
		Type:        string(t.Type()),
		Status:      string(t.Status()),
		AssigneeID:  pgconv.UUIDPtrToPgtype(t.AssigneeID()),
		DueDate:     pgconv.DatePtrToPgtype(t.DueDate()),
		Cost:        pgconv.DecimalPtrToNull(t.Cost()),
		ResolvedAt:  pgconv.TimePtrToPgtype(t.ResolvedAt()),
		CreatedAt:   pgconv.TimeToPgtype(t.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(t.UpdatedAt()),
	}
}

func MaintenanceTaskFromRow(row sqlc.MaintenanceTasks) *task.MaintenanceTask {
	return task.ReconstructMaintenanceTask(task.MaintenanceSnapshot{
		ID:          row.ID,
		PropertyID:  row.PropertyID,
		UnitID:      pgconv.UUIDPtrFromPgtype(row.UnitID),
		Title:       row.Title,
		Description: row.Description,
		Priority:    task.Priority(row.Priority),
		Type:        task.MaintenanceType(row.Type),
		Status:      task.MaintenanceStatus(row.Status),
		AssigneeID:  pgconv.UUIDPtrFromPgtype(row.AssigneeID),
		DueDate:     pgconv.DatePtrFromPgtype(row.DueDate),
		Cost:        pgconv.DecimalPtrFromNull(row.Cost),
		ResolvedAt:  pgconv.TimePtrFromPgtype(row.ResolvedAt),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}
