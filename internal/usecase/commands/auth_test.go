//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/pkg/clock"
	"rental-backoffice/internal/pkg/errs"
	pkgjwt "rental-backoffice/internal/pkg/jwt"
	"rental-backoffice/internal/pkg/password"
	"rental-backoffice/internal/usecase/commands"
	"rental-backoffice/tests/common/builder"
	"rental-backoffice/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret-key-that-is-long-enough"

type AuthCommandsTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memstore.Store
	jwt   *pkgjwt.Service
	clock *clock.MockClock
	uc    commands.AuthCommands
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.jwt = pkgjwt.NewService(testSecret, 15*time.Minute, 24*time.Hour)
	s.clock = clock.NewMockClock(time.Date(2024, time.April, 2, 9, 30, 0, 0, time.UTC))
	s.uc = commands.NewAuthCommands(s.store, s.jwt, s.clock)
}

func (s *AuthCommandsTestSuite) seedUser(mutate func(*builder.UserBuilder)) *user.User {
	hash, err := password.HashPassword("correct-horse")
	s.Require().NoError(err)
	b := builder.NewUserBuilder().With(func(b *builder.UserBuilder) {
		b.Email = "desk@example.com"
		b.Role = string(user.RoleAssistant)
		b.PasswordHash = hash
	})
	if mutate != nil {
		b.With(mutate)
	}
	u, err := b.BuildDomain()
	s.Require().NoError(err)
	s.store.AddUser(u)
	return u
}

func (s *AuthCommandsTestSuite) TestLogin() {
	s.Run("success: tokens carry the role and last login is stamped", func() {
		s.SetupTest()
		u := s.seedUser(nil)

		res, err := s.uc.Login(s.ctx, " Desk@Example.com ", "correct-horse")
		s.Require().NoError(err)
		s.Equal(u.ID(), res.UserID)
		s.Equal(user.RoleAssistant, res.Role)

		claims, err := s.jwt.ValidateToken(res.TokenPair.AccessToken)
		s.Require().NoError(err)
		s.Equal(pkgjwt.TokenTypeAccess, claims.TokenType)
		s.Equal("assistant", claims.Role)

		stored, _ := s.store.User(u.ID())
		s.Require().NotNil(stored.LastLogin())
		s.True(s.clock.Now().Equal(*stored.LastLogin()))
	})

	tests := []struct {
		name   string
		mutate func(*builder.UserBuilder)
		email  string
		pass   string
		errIs  error
	}{
		{name: "wrong password", email: "desk@example.com", pass: "battery-staple", errIs: commands.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", pass: "correct-horse", errIs: commands.ErrInvalidCredentials},
		{name: "malformed email", email: "desk", pass: "correct-horse", errIs: commands.ErrInvalidCredentials},
		{name: "short password", email: "desk@example.com", pass: "short", errIs: commands.ErrInvalidCredentials},
		{
			name:   "inactive account",
			mutate: func(b *builder.UserBuilder) { b.IsActive = false },
			email:  "desk@example.com",
			pass:   "correct-horse",
			errIs:  commands.ErrUserInactive,
		},
	}
	for _, tt := range tests {
		s.Run("error: "+tt.name, func() {
			s.SetupTest()
			s.seedUser(tt.mutate)
			_, err := s.uc.Login(s.ctx, tt.email, tt.pass)
			s.True(errs.Is(err, tt.errIs), "got %v", err)
		})
	}
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	s.Run("success: refresh issues a new pair", func() {
		s.SetupTest()
		u := s.seedUser(nil)
		refresh, err := s.jwt.GenerateRefreshToken(u.ID(), u.Email().Value(), u.Role())
		s.Require().NoError(err)

		pair, err := s.uc.RefreshToken(s.ctx, refresh)
		s.Require().NoError(err)
		s.NotEmpty(pair.AccessToken)
		s.NotEmpty(pair.RefreshToken)
	})

	s.Run("error: access tokens cannot refresh", func() {
		s.SetupTest()
		u := s.seedUser(nil)
		access, err := s.jwt.GenerateAccessToken(u.ID(), u.Email().Value(), u.Role())
		s.Require().NoError(err)
		_, err = s.uc.RefreshToken(s.ctx, access)
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("error: deleted user", func() {
		s.SetupTest()
		refresh, err := s.jwt.GenerateRefreshToken(uuid.New(), "gone@example.com", user.RoleAdmin)
		s.Require().NoError(err)
		_, err = s.uc.RefreshToken(s.ctx, refresh)
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("error: deactivated user", func() {
		s.SetupTest()
		u := s.seedUser(func(b *builder.UserBuilder) { b.IsActive = false })
		refresh, err := s.jwt.GenerateRefreshToken(u.ID(), u.Email().Value(), u.Role())
		s.Require().NoError(err)
		_, err = s.uc.RefreshToken(s.ctx, refresh)
		s.True(errs.Is(err, commands.ErrUserInactive))
		s.Equal(errs.KindForbidden, errs.KindOf(err))
	})

	s.Run("error: garbage token", func() {
		s.SetupTest()
		_, err := s.uc.RefreshToken(s.ctx, "not-a-token")
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})
}
