package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/teamboard/internal/api/handler"
	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/auth"
	"github.com/teamboard/teamboard/internal/team"
	"github.com/teamboard/teamboard/internal/user"
)

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestAuthRegister_NewTeam(t *testing.T) {
	var createdTeam *team.Team
	var createdUser *user.User

	users := &mockUserRepo{
		t: t,
		getByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
			return nil, user.ErrUserNotFound
		},
		createFunc: func(_ context.Context, u *user.User) error {
			u.ID = uuid.New()
			createdUser = u
			return nil
		},
	}
	teams := &mockTeamRepo{
		t: t,
		createFunc: func(_ context.Context, tm *team.Team) error {
			tm.ID = uuid.New()
			createdTeam = tm
			return nil
		},
	}

	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, teams)

	req := makeRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Alice",
		"lastName":  "Smith",
		"email":     "alice@example.com",
		"password":  "secret123",
		"teamName":  "Platform",
	}, nil, nil)
	w := httptest.NewRecorder()

	h.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, createdTeam)
	assert.Equal(t, "Platform", createdTeam.Name)

	require.NotNil(t, createdUser)
	assert.Equal(t, user.RoleAdmin, createdUser.Role)
	assert.Equal(t, createdTeam.ID, createdUser.TeamID)

	body := parseBody(t, w)
	assert.NotEmpty(t, body["jwt"])
	userObj := body["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", userObj["email"])
	assert.Equal(t, "ADMIN", userObj["role"])
	_, hasPassword := userObj["password"]
	assert.False(t, hasPassword)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.False(t, cookie.Secure)
	assert.NotEmpty(t, cookie.Value)
}

func TestAuthRegister_DefaultTeamName(t *testing.T) {
	var createdTeam *team.Team

	users := &mockUserRepo{
		t: t,
		getByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
			return nil, user.ErrUserNotFound
		},
		createFunc: func(_ context.Context, u *user.User) error {
			u.ID = uuid.New()
			return nil
		},
	}
	teams := &mockTeamRepo{
		t: t,
		createFunc: func(_ context.Context, tm *team.Team) error {
			tm.ID = uuid.New()
			createdTeam = tm
			return nil
		},
	}

	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, teams)

	req := makeRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Bob",
		"lastName":  "Jones",
		"email":     "bob@example.com",
		"password":  "secret123",
	}, nil, nil)
	w := httptest.NewRecorder()

	h.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, createdTeam)
	assert.Equal(t, "Bob Team", createdTeam.Name)
}

func TestAuthRegister_JoinExistingTeam(t *testing.T) {
	teamID := uuid.New()
	var createdUser *user.User

	users := &mockUserRepo{
		t: t,
		getByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
			return nil, user.ErrUserNotFound
		},
		createFunc: func(_ context.Context, u *user.User) error {
			u.ID = uuid.New()
			createdUser = u
			return nil
		},
	}
	teams := &mockTeamRepo{
		t: t,
		getByIDFunc: func(_ context.Context, id uuid.UUID) (*team.Team, error) {
			require.Equal(t, teamID, id)
			return &team.Team{ID: teamID, Name: "Platform"}, nil
		},
	}

	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, teams)

	req := makeRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Carol",
		"lastName":  "King",
		"email":     "carol@example.com",
		"password":  "secret123",
		"teamId":    teamID.String(),
	}, nil, nil)
	w := httptest.NewRecorder()

	h.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, createdUser)
	assert.Equal(t, user.RoleUser, createdUser.Role)
	assert.Equal(t, teamID, createdUser.TeamID)
}

func TestAuthRegister_UnknownTeam(t *testing.T) {
	users := &mockUserRepo{
		t: t,
		getByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
			return nil, user.ErrUserNotFound
		},
	}
	teams := &mockTeamRepo{
		t: t,
		getByIDFunc: func(_ context.Context, _ uuid.UUID) (*team.Team, error) {
			return nil, team.ErrTeamNotFound
		},
	}

	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, teams)

	req := makeRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Carol",
		"lastName":  "King",
		"email":     "carol@example.com",
		"password":  "secret123",
		"teamId":    uuid.New().String(),
	}, nil, nil)
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "The team you are trying to join does not exist!", parseBody(t, w)["message"])
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	teamID := uuid.New()
	users := &mockUserRepo{
		t: t,
		getByEmailFunc: func(_ context.Context, _ string) (*user.User, error) {
			return testUser(teamID), nil
		},
	}
	teams := &mockTeamRepo{t: t}

	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, teams)

	req := makeRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Alice",
		"lastName":  "Smith",
		"email":     "alice@example.com",
		"password":  "secret123",
	}, nil, nil)
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", parseBody(t, w)["message"])
}

func TestAuthRegister_ValidationFailure(t *testing.T) {
	users := &mockUserRepo{t: t}
	teams := &mockTeamRepo{t: t}

	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, teams)

	req := makeRequest(t, http.MethodPost, "/auth/register", map[string]string{
		"email": "not-an-email",
	}, nil, nil)
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, "Validation failed", body["message"])
	assert.NotEmpty(t, body["errors"])
}

func TestAuthRegister_InvalidBody(t *testing.T) {
	users := &mockUserRepo{t: t}
	teams := &mockTeamRepo{t: t}

	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, teams)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", parseBody(t, w)["message"])
}

func TestAuthLogin(t *testing.T) {
	teamID := uuid.New()
	hash, err := auth.HashPassword("secret123", testBcryptCost)
	require.NoError(t, err)

	u := testUser(teamID)
	u.PasswordHash = hash

	users := &mockUserRepo{
		t: t,
		getByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
			require.Equal(t, "alice@example.com", email)
			return u, nil
		},
	}

	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, &mockTeamRepo{t: t})

	req := makeRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}, nil, nil)
	w := httptest.NewRecorder()

	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.NotEmpty(t, body["jwt"])
	userObj := body["user"].(map[string]any)
	assert.Equal(t, u.ID.String(), userObj["id"])

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
}

func TestAuthLogin_FailuresLookIdentical(t *testing.T) {
	teamID := uuid.New()
	hash, err := auth.HashPassword("secret123", testBcryptCost)
	require.NoError(t, err)

	u := testUser(teamID)
	u.PasswordHash = hash

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@example.com", password: "secret123"},
		{name: "wrong password", email: "alice@example.com", password: "wrongpass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserRepo{
				t: t,
				getByEmailFunc: func(_ context.Context, email string) (*user.User, error) {
					if email == u.Email {
						return u, nil
					}
					return nil, user.ErrUserNotFound
				},
			}

			h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, &mockTeamRepo{t: t})

			req := makeRequest(t, http.MethodPost, "/auth/login", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			}, nil, nil)
			w := httptest.NewRecorder()

			h.Login(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Invalid credentials", parseBody(t, w)["message"])
			assert.Nil(t, sessionCookie(t, w))
		})
	}
}

func TestAuthLogout(t *testing.T) {
	users := &mockUserRepo{t: t}
	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, &mockTeamRepo{t: t})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()

	h.Logout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", parseBody(t, w)["message"])

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuthMe(t *testing.T) {
	teamID := uuid.New()
	u := testUser(teamID)

	users := &mockUserRepo{
		t: t,
		getByIDFunc: func(_ context.Context, id uuid.UUID) (*user.User, error) {
			require.Equal(t, u.ID, id)
			return u, nil
		},
	}

	h := handler.NewAuthHandler(testConfig(), newAuthService(users), users, &mockTeamRepo{t: t})

	identity := &auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role, TeamID: teamID}
	req := makeRequest(t, http.MethodGet, "/auth/me", nil, identity, nil)
	w := httptest.NewRecorder()

	h.Me(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, u.ID.String(), data["id"])
	assert.Equal(t, "2026-03-01T12:00:00Z", data["createdAt"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword)
}
