package repository

import (
	"context"

	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PropertyWriteQueries interface {
	CreateProperty(ctx context.Context, db sqlc.DBTX, arg sqlc.Properties) error
	UpdatePropertyStatus(ctx context.Context, db sqlc.DBTX, id uuid.UUID, status string, updatedAt pgtype.Timestamptz) (int64, error)
	CreateUnit(ctx context.Context, db sqlc.DBTX, arg sqlc.Units) error
}

type PropertyRepository struct {
	queries PropertyWriteQueries
	db      sqlc.DBTX
}

func NewPropertyRepository(queries PropertyWriteQueries, db sqlc.DBTX) *PropertyRepository {
	return &PropertyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, tx sqlc.DBTX, p *property.Property) error {
	if err := r.queries.CreateProperty(ctx, tx, converter.PropertyToRow(p)); err != nil {
		return infra.WrapRepoErr("failed to create property", err)
	}
	return nil
}

func (r *PropertyRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, p *property.Property) error {
	n, err := r.queries.UpdatePropertyStatus(ctx, tx, p.ID(), string(p.Status()), pgconv.TimeToPgtype(p.UpdatedAt()))
	if err != nil {
		return infra.WrapRepoErr("failed to update property status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("property not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PropertyRepository) CreateUnit(ctx context.Context, tx sqlc.DBTX, u *property.Unit) error {
	if err := r.queries.CreateUnit(ctx, tx, converter.UnitToRow(u)); err != nil {
		return infra.WrapRepoErr("failed to create unit", err)
	}
	return nil
}
