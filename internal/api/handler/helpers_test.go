package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/teamboard/internal/api/middleware"
	"github.com/teamboard/teamboard/internal/auth"
	"github.com/teamboard/teamboard/internal/comment"
	"github.com/teamboard/teamboard/internal/config"
	"github.com/teamboard/teamboard/internal/discussion"
	"github.com/teamboard/teamboard/internal/team"
	"github.com/teamboard/teamboard/internal/user"
)

const testBcryptCost = 4

// mockUserRepo implements user.Repository with overridable functions. Methods
// without an override fail the calling test.
type mockUserRepo struct {
	t               *testing.T
	createFunc      func(ctx context.Context, u *user.User) error
	getByIDFunc     func(ctx context.Context, id uuid.UUID) (*user.User, error)
	getByEmailFunc  func(ctx context.Context, email string) (*user.User, error)
	listByTeamFunc  func(ctx context.Context, teamID uuid.UUID, filter user.ListFilter) ([]user.User, int, error)
	updateFunc      func(ctx context.Context, u *user.User) error
	updateRoleFunc  func(ctx context.Context, id uuid.UUID, role string) (*user.User, error)
	deleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	if m.createFunc == nil {
		m.t.Fatal("unexpected call to user Create")
	}
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.getByIDFunc == nil {
		m.t.Fatal("unexpected call to user GetByID")
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.getByEmailFunc == nil {
		m.t.Fatal("unexpected call to user GetByEmail")
	}
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) ListByTeam(ctx context.Context, teamID uuid.UUID, filter user.ListFilter) ([]user.User, int, error) {
	if m.listByTeamFunc == nil {
		m.t.Fatal("unexpected call to user ListByTeam")
	}
	return m.listByTeamFunc(ctx, teamID, filter)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, u *user.User) error {
	if m.updateFunc == nil {
		m.t.Fatal("unexpected call to user UpdateProfile")
	}
	return m.updateFunc(ctx, u)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*user.User, error) {
	if m.updateRoleFunc == nil {
		m.t.Fatal("unexpected call to user UpdateRole")
	}
	return m.updateRoleFunc(ctx, id, role)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc == nil {
		m.t.Fatal("unexpected call to user Delete")
	}
	return m.deleteFunc(ctx, id)
}

// mockTeamRepo implements team.Repository with overridable functions.
type mockTeamRepo struct {
	t           *testing.T
	createFunc  func(ctx context.Context, tm *team.Team) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*team.Team, error)
	listFunc    func(ctx context.Context) ([]team.Team, error)
}

func (m *mockTeamRepo) Create(ctx context.Context, tm *team.Team) error {
	if m.createFunc == nil {
		m.t.Fatal("unexpected call to team Create")
	}
	return m.createFunc(ctx, tm)
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	if m.getByIDFunc == nil {
		m.t.Fatal("unexpected call to team GetByID")
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockTeamRepo) List(ctx context.Context) ([]team.Team, error) {
	if m.listFunc == nil {
		m.t.Fatal("unexpected call to team List")
	}
	return m.listFunc(ctx)
}

// mockDiscussionRepo implements discussion.Repository with overridable
// functions.
type mockDiscussionRepo struct {
	t               *testing.T
	createFunc      func(ctx context.Context, d *discussion.Discussion) error
	getForTeamFunc  func(ctx context.Context, id, teamID uuid.UUID) (*discussion.Discussion, error)
	listByTeamFunc  func(ctx context.Context, teamID uuid.UUID, filter discussion.ListFilter) ([]discussion.Discussion, int, error)
	updateFunc      func(ctx context.Context, d *discussion.Discussion) error
	deleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDiscussionRepo) Create(ctx context.Context, d *discussion.Discussion) error {
	if m.createFunc == nil {
		m.t.Fatal("unexpected call to discussion Create")
	}
	return m.createFunc(ctx, d)
}

func (m *mockDiscussionRepo) GetForTeam(ctx context.Context, id, teamID uuid.UUID) (*discussion.Discussion, error) {
	if m.getForTeamFunc == nil {
		m.t.Fatal("unexpected call to discussion GetForTeam")
	}
	return m.getForTeamFunc(ctx, id, teamID)
}

func (m *mockDiscussionRepo) ListByTeam(ctx context.Context, teamID uuid.UUID, filter discussion.ListFilter) ([]discussion.Discussion, int, error) {
	if m.listByTeamFunc == nil {
		m.t.Fatal("unexpected call to discussion ListByTeam")
	}
	return m.listByTeamFunc(ctx, teamID, filter)
}

func (m *mockDiscussionRepo) Update(ctx context.Context, d *discussion.Discussion) error {
	if m.updateFunc == nil {
		m.t.Fatal("unexpected call to discussion Update")
	}
	return m.updateFunc(ctx, d)
}

func (m *mockDiscussionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc == nil {
		m.t.Fatal("unexpected call to discussion Delete")
	}
	return m.deleteFunc(ctx, id)
}

// mockCommentRepo implements comment.Repository with overridable functions.
type mockCommentRepo struct {
	t                    *testing.T
	createFunc           func(ctx context.Context, c *comment.Comment) error
	getByIDFunc          func(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
	listByDiscussionFunc func(ctx context.Context, discussionID uuid.UUID, limit, offset int) ([]comment.Comment, int, error)
	deleteFunc           func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCommentRepo) Create(ctx context.Context, c *comment.Comment) error {
	if m.createFunc == nil {
		m.t.Fatal("unexpected call to comment Create")
	}
	return m.createFunc(ctx, c)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	if m.getByIDFunc == nil {
		m.t.Fatal("unexpected call to comment GetByID")
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockCommentRepo) ListByDiscussion(ctx context.Context, discussionID uuid.UUID, limit, offset int) ([]comment.Comment, int, error) {
	if m.listByDiscussionFunc == nil {
		m.t.Fatal("unexpected call to comment ListByDiscussion")
	}
	return m.listByDiscussionFunc(ctx, discussionID, limit, offset)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc == nil {
		m.t.Fatal("unexpected call to comment Delete")
	}
	return m.deleteFunc(ctx, id)
}

func testConfig() *config.Config {
	return &config.Config{
		Env:        "development",
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: testBcryptCost,
	}
}

func newAuthService(users user.Repository) *auth.Service {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return auth.NewService(users, tokens, testBcryptCost)
}

func adminIdentity(teamID uuid.UUID) *auth.Identity {
	return &auth.Identity{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin, TeamID: teamID}
}

func memberIdentity(teamID uuid.UUID) *auth.Identity {
	return &auth.Identity{ID: uuid.New(), Email: "member@example.com", Role: user.RoleUser, TeamID: teamID}
}

// makeRequest builds a request carrying an optional JSON body, an optional
// authenticated identity and chi URL parameters.
func makeRequest(t *testing.T, method, target string, body any, identity *auth.Identity, urlParams map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if identity != nil {
		ctx = middleware.WithIdentity(ctx, identity)
	}

	if len(urlParams) > 0 {
		routeCtx := chi.NewRouteContext()
		for k, v := range urlParams {
			routeCtx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}

	return req.WithContext(ctx)
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func testUser(teamID uuid.UUID) *user.User {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &user.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		FirstName:    "Alice",
		LastName:     "Smith",
		PasswordHash: "$2a$04$stubstubstubstubstubstub",
		Role:         user.RoleUser,
		TeamID:       teamID,
		Bio:          "Hello",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
