package readstore

import (
	"context"

	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PropertyReadQueries interface {
	GetPropertyByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Properties, error)
	ListProperties(ctx context.Context, db sqlc.DBTX, status pgtype.Text) ([]sqlc.Properties, error)
	GetUnitByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Units, error)
	ListUnitsByProperty(ctx context.Context, db sqlc.DBTX, propertyID uuid.UUID) ([]sqlc.Units, error)
}

type PropertyReadStore struct {
	queries PropertyReadQueries
	db      sqlc.DBTX
}

func NewPropertyReadStore(queries PropertyReadQueries, db sqlc.DBTX) *PropertyReadStore {
	return &PropertyReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PropertyReadStore) get(ctx context.Context, id uuid.UUID) (sqlc.Properties, error) {
	row, err := r.queries.GetPropertyByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return sqlc.Properties{}, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return sqlc.Properties{}, infra.WrapRepoErr("failed to find property by ID", err)
	}
	return row, nil
}

func (r *PropertyReadStore) Aggregate(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	row, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PropertyFromRow(row), nil
}

func (r *PropertyReadStore) Unit(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	row, err := r.queries.GetUnitByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("unit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find unit by ID", err)
	}
	return converter.UnitFromRow(row), nil
}

func (r *PropertyReadStore) Active(ctx context.Context) ([]*property.Property, error) {
	rows, err := r.queries.ListProperties(ctx, r.db, pgtype.Text{String: string(property.StatusActive), Valid: true})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active properties", err)
	}
	result := make([]*property.Property, len(rows))
	for i, row := range rows {
		result[i] = converter.PropertyFromRow(row)
	}
	return result, nil
}

func (r *PropertyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PropertyView, error) {
	row, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	units, err := r.queries.ListUnitsByProperty(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list units", err)
	}

	view := toPropertyView(row)
	view.Units = make([]queries.UnitView, len(units))
	for i, u := range units {
		view.Units[i] = queries.UnitView{
			ID:         u.ID,
			PropertyID: u.PropertyID,
			UnitCode:   u.UnitCode,
			Name:       u.Name,
			CreatedAt:  pgconv.TimeFromPgtype(u.CreatedAt),
		}
	}
	return view, nil
}

func (r *PropertyReadStore) List(ctx context.Context, status *string) ([]*queries.PropertyView, error) {
	rows, err := r.queries.ListProperties(ctx, r.db, pgconv.StringPtrToPgtype(status))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list properties", err)
	}
	result := make([]*queries.PropertyView, len(rows))
	for i, row := range rows {
		result[i] = toPropertyView(row)
	}
	return result, nil
}

func toPropertyView(row sqlc.Properties) *queries.PropertyView {
	return &queries.PropertyView{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		Address:   row.Address,
		Status:    row.Status,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
