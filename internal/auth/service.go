package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/teamboard/teamboard/internal/user"
)

// ErrUnknownUser is returned when a verified token references a user that no
// longer exists, which covers deleted accounts holding stale tokens.
var ErrUnknownUser = errors.New("user not found")

// Identity is stored in the request context after authentication. Role and
// team come from the current user record, never from token claims, so role
// or team changes take effect on the next request.
type Identity struct {
	ID     uuid.UUID
	Email  string
	Role   string
	TeamID uuid.UUID
}

// IsAdmin reports whether the caller holds the ADMIN role in their team.
func (i *Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}

// Service resolves session tokens to caller identities.
type Service struct {
	users      user.Repository
	tokens     *TokenManager
	bcryptCost int
}

// NewService creates a new auth Service.
func NewService(users user.Repository, tokens *TokenManager, bcryptCost int) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Tokens exposes the token manager for handlers that issue sessions.
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

// Hash returns the bcrypt hash of a password at the configured cost.
func (s *Service) Hash(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}

// Authenticate verifies a session token and re-fetches the referenced user.
func (s *Service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("fetching user for token: %w", err)
	}

	return &Identity{
		ID:     u.ID,
		Email:  u.Email,
		Role:   u.Role,
		TeamID: u.TeamID,
	}, nil
}
