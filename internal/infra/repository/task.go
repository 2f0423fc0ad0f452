package repository

import (
	"context"

	"rental-backoffice/internal/domain/task"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"
)

type CleaningTaskWriteQueries interface {
	CreateCleaningTask(ctx context.Context, db sqlc.DBTX, arg sqlc.CleaningTasks) error
	UpdateCleaningTask(ctx context.Context, db sqlc.DBTX, arg sqlc.CleaningTasks) (int64, error)
}

type CleaningTaskRepository struct {
	queries CleaningTaskWriteQueries
	db      sqlc.DBTX
}

func NewCleaningTaskRepository(queries CleaningTaskWriteQueries, db sqlc.DBTX) *CleaningTaskRepository {
	return &CleaningTaskRepository{queries: queries, db: db}
}

func (r *CleaningTaskRepository) Create(ctx context.Context, tx sqlc.DBTX, t *task.CleaningTask) error {
	if err := r.queries.CreateCleaningTask(ctx, tx, converter.CleaningTaskToRow(t)); err != nil {
		return infra.WrapRepoErr("failed to create cleaning task", err)
	}
	return nil
}

func (r *CleaningTaskRepository) Update(ctx context.Context, tx sqlc.DBTX, t *task.CleaningTask) error {
	n, err := r.queries.UpdateCleaningTask(ctx, tx, converter.CleaningTaskToRow(t))
	if err != nil {
		return infra.WrapRepoErr("failed to update cleaning task", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("cleaning task not found", nil, infra.KindNotFound)
	}
	return nil
}

type MaintenanceTaskWriteQueries interface {
	CreateMaintenanceTask(ctx context.Context, db sqlc.DBTX, arg sqlc.MaintenanceTasks) error
	UpdateMaintenanceTask(ctx context.Context, db sqlc.DBTX, arg sqlc.MaintenanceTasks) (int64, error)
}

type MaintenanceTaskRepository struct {
	queries MaintenanceTaskWriteQueries
	db      sqlc.DBTX
}

func NewMaintenanceTaskRepository(queries MaintenanceTaskWriteQueries, db sqlc.DBTX) *MaintenanceTaskRepository {
	return &MaintenanceTaskRepository{queries: queries, db: db}
}

func (r *MaintenanceTaskRepository) Create(ctx context.Context, tx sqlc.DBTX, t *task.MaintenanceTask) error {
	if err := r.queries.CreateMaintenanceTask(ctx, tx, converter.MaintenanceTaskToRow(t)); err != nil {
		return infra.WrapRepoErr("failed to create maintenance task", err)
	}
	return nil
}

func (r *MaintenanceTaskRepository) Update(ctx context.Context, tx sqlc.DBTX, t *task.MaintenanceTask) error {
	n, err := r.queries.UpdateMaintenanceTask(ctx, tx, converter.MaintenanceTaskToRow(t))
	if err != nil {
		return infra.WrapRepoErr("failed to update maintenance task", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("maintenance task not found", nil, infra.KindNotFound)
	}
	return nil
}
