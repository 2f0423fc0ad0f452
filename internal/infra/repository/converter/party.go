package converter

import (
	"rental-backoffice/internal/domain/guest"
	"rental-backoffice/internal/domain/property"
	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/infra/sqlc"
	"rental-backoffice/internal/pkg/pgconv"
)

func GuestToRow(g *guest.Guest) sqlc.Guests {
	return sqlc.Guests{
		ID:          g.ID(),
		Name:        g.Name(),
		Email:       g.Email(),
		Phone:       g.Phone(),
		Nationality: g.Nationality(),
		TotalSpend:  g.TotalSpend(),
		Blacklisted: g.Blacklisted(),
		Notes:       g.Notes(),
		ArchivedAt:  pgconv.TimePtrToPgtype(g.ArchivedAt()),
		CreatedAt:   pgconv.TimeToPgtype(g.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(g.UpdatedAt()),
	}
}

func GuestFromRow(row sqlc.Guests) *guest.Guest {
	return guest.ReconstructGuest(
		row.ID,
		guest.Contact{
			Name:        row.Name,
			Email:       row.Email,
			Phone:       row.Phone,
			Nationality: row.Nationality,
			Notes:       row.Notes,
		},
		row.TotalSpend,
		row.Blacklisted,
		pgconv.TimePtrFromPgtype(row.ArchivedAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func PropertyToRow(p *property.Property) sqlc.Properties {
	return sqlc.Properties{
		ID:        p.ID(),
		Code:      p.Code(),
		Name:      p.Name(),
		Address:   p.Address(),
		Status:    string(p.Status()),
		CreatedAt: pgconv.TimeToPgtype(p.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func PropertyFromRow(row sqlc.Properties) *property.Property {
	return property.ReconstructProperty(
		row.ID,
		row.Code,
		row.Name,
		row.Address,
		property.Status(row.Status),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func UnitToRow(u *property.Unit) sqlc.Units {
	return sqlc.Units{
		ID:         u.ID(),
		PropertyID: u.PropertyID(),
		UnitCode:   u.UnitCode(),
		Name:       u.Name(),
		CreatedAt:  pgconv.TimeToPgtype(u.CreatedAt()),
	}
}

func UnitFromRow(row sqlc.Units) *property.Unit {
	return property.ReconstructUnit(row.ID, row.PropertyID, row.UnitCode, row.Name, pgconv.TimeFromPgtype(row.CreatedAt))
}

// UserFromRow trusts the stored email; it was validated on the way in.
func UserFromRow(row sqlc.Users) (*user.User, error) {
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(row.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(
		row.ID,
		email,
		row.Name,
		row.PasswordHash,
		role,
		pgconv.TimePtrFromPgtype(row.LastLogin),
		row.IsActive,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func UserToRow(u *user.User) sqlc.Users {
	return sqlc.Users{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsActive:     u.IsActive(),
		LastLogin:    pgconv.TimePtrToPgtype(u.LastLogin()),
		CreatedAt:    pgconv.TimeToPgtype(u.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(u.UpdatedAt()),
	}
}
