//go:build unit

package user_test

import (
	"testing"
	"time"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("new user starts active", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		email, err := user.NewEmail("  Desk@Example.com ")
		require.NoError(t, err)

		actual := user.NewUser(email, "Front Desk", "hash", user.RoleAssistant, now)

		expected := user.ReconstructUser(actual.ID(), email, "Front Desk", "hash", user.RoleAssistant, nil, true, now, now)
		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}
		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "desk@example.com", actual.Email().Value())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("email", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "valid",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("valid@example.com") },
			},
			{
				name:   "empty",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "no domain",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "no at sign",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalidemail.com") },
				errIs:  user.ErrInvalidEmail,
			},
		})
	})

	t.Run("role", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "admin", mutate: func(b *builder.UserBuilder) { b.WithRole(user.RoleAdmin) }},
			{name: "assistant", mutate: func(b *builder.UserBuilder) { b.WithRole(user.RoleAssistant) }},
			{name: "cleaner", mutate: func(b *builder.UserBuilder) { b.WithRole(user.RoleCleaner) }},
			{name: "maintenance", mutate: func(b *builder.UserBuilder) { b.WithRole(user.RoleMaintenance) }},
			{
				name:   "unknown",
				mutate: func(b *builder.UserBuilder) { b.WithRole("operator") },
				errIs:  user.ErrInvalidRole,
			},
			{
				name:   "empty",
				mutate: func(b *builder.UserBuilder) { b.WithRole("") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})

	t.Run("inactive accounts still reconstruct", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().AsInactive().BuildDomain()
		require.NoError(t, err)
		assert.False(t, actual.IsActive())
	})
}

func TestRole(t *testing.T) {
	tests := []struct {
		role   user.Role
		office bool
	}{
		{user.RoleAdmin, true},
		{user.RoleAssistant, true},
		{user.RoleCleaner, false},
		{user.RoleMaintenance, false},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.office, tt.role.IsOffice())
			assert.True(t, tt.role.In(user.RoleCleaner, tt.role))
		})
	}
	assert.False(t, user.RoleCleaner.In())
}

func TestPassword(t *testing.T) {
	_, err := user.NewPassword("short")
	require.ErrorIs(t, err, user.ErrPasswordTooWeak)

	p, err := user.NewPassword("long-enough")
	require.NoError(t, err)
	assert.Equal(t, "long-enough", p.Value())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
