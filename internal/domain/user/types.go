package user

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleAssistant   Role = "assistant"
	RoleCleaner     Role = "cleaner"
	RoleMaintenance Role = "maintenance"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAssistant, RoleCleaner, RoleMaintenance:
		return true
	default:
		return false
	}
}

// IsOffice is true for the back-office roles that manage bookings.
func (r Role) IsOffice() bool {
	return r == RoleAdmin || r == RoleAssistant
}

func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
