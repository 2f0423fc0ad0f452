package readstore

import (
	"context"

	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type GuestReadQueries interface {
	GetGuestByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Guests, error)
	ListGuests(ctx context.Context, db sqlc.DBTX, arg sqlc.ListGuestsParams) ([]sqlc.Guests, error)
}

type GuestReadStore struct {
	queries GuestReadQueries
	db      sqlc.DBTX
}

func NewGuestReadStore(queries GuestReadQueries, db sqlc.DBTX) *GuestReadStore {
	return &GuestReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *GuestReadStore) get(ctx context.Context, id uuid.UUID) (sqlc.Guests, error) {
	row, err := r.queries.GetGuestByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return sqlc.Guests{}, infra.WrapRepoErr("guest not found", err, infra.KindNotFound)
		}
		return sqlc.Guests{}, infra.WrapRepoErr("failed to find guest by ID", err)
	}
	return row, nil
}

func (r *GuestReadStore) Aggregate(ctx context.Context, id uuid.UUID) (*guest.Guest, error) {
	row, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.GuestFromRow(row), nil
}

func (r *GuestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.GuestView, error) {
	row, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGuestView(row), nil
}

func (r *GuestReadStore) List(ctx context.Context, filter queries.GuestFilter, after *queries.Keyset, limit int32) ([]*queries.GuestView, error) {
	params := sqlc.ListGuestsParams{
		Search:   pgconv.StringPtrToPgtype(filter.Search),
		Archived: boolPtrToPgtype(filter.Archived),
		Limit:    limit,
	}
	if after != nil {
		params.AfterCreatedAt = pgconv.TimeToPgtype(after.CreatedAt)
		params.AfterID = pgconv.UUIDPtrToPgtype(&after.ID)
	}

	rows, err := r.queries.ListGuests(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list guests", err)
	}
	result := make([]*queries.GuestView, len(rows))
	for i, row := range rows {
		result[i] = toGuestView(row)
	}
	return result, nil
}

func toGuestView(row sqlc.Guests) *queries.GuestView {
	return &queries.GuestView{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Phone:       row.Phone,
		Nationality: row.Nationality,
		TotalSpend:  row.TotalSpend,
		Blacklisted: row.Blacklisted,
		Notes:       row.Notes,
		ArchivedAt:  pgconv.TimePtrFromPgtype(row.ArchivedAt),
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
