package readstore

import (
	"context"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/infra"
	"rental-backoffice/internal/infra/repository/converter"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
	"rental-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Users, error)
	FindUserByEmail(ctx context.Context, db sqlc.DBTX, email string) (sqlc.Users, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      sqlc.DBTX
}

func NewUserReadStore(queries UserReadQueries, db sqlc.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) byID(ctx context.Context, id uuid.UUID) (sqlc.Users, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return sqlc.Users{}, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return sqlc.Users{}, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return row, nil
}

func (r *UserReadStore) byEmail(ctx context.Context, email string) (sqlc.Users, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return sqlc.Users{}, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return sqlc.Users{}, infra.WrapRepoErr("failed to find user by email", err)
	}
	return row, nil
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAuthorizedUserView(row), nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row, err := r.byEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	return toAuthorizedUserView(row), row.PasswordHash, nil
}

func (r *UserReadStore) Aggregate(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row, err := r.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.UserFromRow(row)
}

func (r *UserReadStore) AggregateByEmail(ctx context.Context, email string) (*user.User, error) {
	row, err := r.byEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return converter.UserFromRow(row)
}

func toAuthorizedUserView(row sqlc.Users) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       row.ID,
		Email:    row.Email,
		Name:     row.Name,
		Role:     row.Role,
		IsActive: row.IsActive,
	}
}
