package repository

import (
	"context"

	"rental-backoffice/internal/domain/automation"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"

	"github.com/google/uuid"
)

type AutomationWriteQueries interface {
	CreateAutomation(ctx context.Context, db sqlc.DBTX, arg sqlc.Automations) error
	UpdateAutomation(ctx context.Context, db sqlc.DBTX, arg sqlc.Automations) (int64, error)
	DeleteAutomation(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
}

type AutomationRepository struct {
	queries AutomationWriteQueries
	db      sqlc.DBTX
}

func NewAutomationRepository(queries AutomationWriteQueries, db sqlc.DBTX) *AutomationRepository {
	return &AutomationRepository{queries: queries, db: db}
}

func (r *AutomationRepository) Create(ctx context.Context, tx sqlc.DBTX, rule *automation.Rule) error {
	row, err := converter.AutomationToRow(rule)
	if err != nil {
		return infra.WrapRepoErr("failed to encode automation", err)
	}
	if err := r.queries.CreateAutomation(ctx, tx, row); err != nil {
		return infra.WrapRepoErr("failed to create automation", err)
	}
	return nil
}

func (r *AutomationRepository) Update(ctx context.Context, tx sqlc.DBTX, rule *automation.Rule) error {
	row, err := converter.AutomationToRow(rule)
	if err != nil {
		return infra.WrapRepoErr("failed to encode automation", err)
	}
	n, err := r.queries.UpdateAutomation(ctx, tx, row)
	if err != nil {
		return infra.WrapRepoErr("failed to update automation", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("automation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AutomationRepository) Delete(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error {
	n, err := r.queries.DeleteAutomation(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete automation", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("automation not found", nil, infra.KindNotFound)
	}
	return nil
}
