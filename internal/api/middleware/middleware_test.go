package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/teamboard/internal/auth"
	"github.com/teamboard/teamboard/internal/user"
)

const testBcryptCost = 4

// mockUserRepo implements user.Repository with overridable functions.
type mockUserRepo struct {
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) ListByTeam(ctx context.Context, teamID uuid.UUID, filter user.ListFilter) ([]user.User, int, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*user.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// newAuthService wires a token manager and mock repo into an auth.Service
// that resolves every token to the given user.
func newAuthService(u *user.User) (*auth.Service, *auth.TokenManager) {
	repo := &mockUserRepo{
		getByIDFunc: func(_ context.Context, id uuid.UUID) (*user.User, error) {
			if u == nil || u.ID != id {
				return nil, user.ErrUserNotFound
			}
			return u, nil
		},
	}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return auth.NewService(repo, tokens, testBcryptCost), tokens
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func parseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}
