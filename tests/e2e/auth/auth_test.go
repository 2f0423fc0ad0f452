//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"rental-backoffice/internal/domain/user"
	"rental-backoffice/internal/handler/dto/request"
	"rental-backoffice/internal/handler/dto/response"
	"rental-backoffice/tests/common/authtest"
	"rental-backoffice/tests/common/dbtest"
	"rental-backoffice/tests/common/httptest"
	"rental-backoffice/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL   = "/api/auth/login"
	logoutURL  = "/api/auth/logout"
	refreshURL = "/api/auth/refresh"
	meURL      = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	t := s.T()
	dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))
	dbtest.CreateTestUser(t, s.DB, "desk@example.com", string(user.RoleAssistant))
	dbtest.CreateTestUser(t, s.DB, "cleaner@example.com", string(user.RoleCleaner))
	dbtest.CreateTestUser(t, s.DB, "inactive@example.com", string(user.RoleAdmin))
	dbtest.DeactivateUser(t, s.DB, "inactive@example.com")
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		expectedRole   string
	}{
		{name: "admin", email: "admin@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusOK, expectedRole: "admin"},
		{name: "assistant", email: "desk@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusOK, expectedRole: "assistant"},
		{name: "email is case insensitive", email: "Admin@Example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusOK, expectedRole: "admin"},
		{name: "unknown user", email: "nobody@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusUnauthorized},
		{name: "wrong password", email: "admin@example.com", password: "wrongpassword", expectedStatus: http.StatusUnauthorized},
		{name: "inactive account", email: "inactive@example.com", password: dbtest.DefaultPassword, expectedStatus: http.StatusForbidden},
		{name: "malformed email", email: "not-an-email", password: dbtest.DefaultPassword, expectedStatus: http.StatusBadRequest},
		{name: "short password", email: "admin@example.com", password: "short", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus != http.StatusOK {
				return
			}
			var res response.LoginResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
			assert.NotEmpty(t, res.AccessToken)
			assert.NotEmpty(t, res.RefreshToken)
			assert.Equal(t, tt.expectedRole, res.User.Role)
			assert.NotNil(t, httptest.ExtractCookie(w, "access_token"))
			assert.NotNil(t, httptest.ExtractCookie(w, "refresh_token"))

			var lastLoginSet bool
			err := s.DB.QueryRow(t.Context(), "SELECT last_login IS NOT NULL FROM users WHERE id = $1", res.User.ID).Scan(&lastLoginSet)
			require.NoError(t, err)
			assert.True(t, lastLoginSet)
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("bearer token from login", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "desk@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		var res response.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		assert.Equal(t, "desk@example.com", res.Email)
		assert.Equal(t, "assistant", res.Role)
	})

	s.Run("cookie only", func() {
		t := s.T()
		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "admin@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, login.Code)

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, meURL, nil, httptest.ExtractCookies(login), "")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("expired token", func() {
		t := s.T()
		token := s.jwt.CreateExpiredToken(t, uuid.New(), "admin@example.com", user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("token signed for a user that no longer exists", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New(), "ghost@example.com", user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		assert.Contains(t, []int{http.StatusUnauthorized, http.StatusNotFound}, w.Code)
	})

	s.Run("no token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "")
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestRefresh() {
	s.Run("body token", func() {
		t := s.T()
		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "admin@example.com", Password: dbtest.DefaultPassword}, "")
		var pair response.LoginResponse
		httptest.AssertSuccessResponse(t, login, http.StatusOK, &pair)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			request.RefreshRequest{RefreshToken: pair.RefreshToken}, "")
		var res response.TokenResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		assert.NotEmpty(t, res.AccessToken)
		assert.Equal(t, int64(900), res.ExpiresIn)
	})

	s.Run("access token is not a refresh token", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "admin@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			request.RefreshRequest{RefreshToken: token}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("deactivated after login", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "leaver@example.com", string(user.RoleAssistant))
		refresh := s.jwt.GenerateRefreshToken(t, userID, "leaver@example.com", user.RoleAssistant)
		dbtest.DeactivateUser(t, s.DB, "leaver@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			request.RefreshRequest{RefreshToken: refresh}, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("missing token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, refreshURL, nil, "")
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	})
}

func (s *authSuite) TestLogout() {
	s.Run("clears cookies", func() {
		t := s.T()
		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "admin@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, login.Code)
		cookies := httptest.ExtractCookies(login)

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, logoutURL, nil, cookies, "")
		require.Equal(t, http.StatusNoContent, w.Code)
		cleared := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
	})

	s.Run("logout helper", func() {
		t := s.T()
		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "desk@example.com", Password: dbtest.DefaultPassword}, "")
		require.Equal(t, http.StatusOK, login.Code)
		authtest.LogoutUser(t, s.Router, httptest.ExtractCookies(login))
	})

	s.Run("requires auth", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestRoleGates() {
	s.Run("cleaner cannot reach bookings", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "cleaner@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/bookings", nil, token)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/cleaning-tasks", nil, token)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("assistant cannot manage automations", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "desk@example.com", dbtest.DefaultPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/automations", nil, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
