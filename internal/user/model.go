package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user can hold within their team. ADMIN privileges never cross the
// team boundary.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents a row in the users table. A user belongs to exactly one
// team for its lifetime.
type User struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	TeamID       uuid.UUID
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the ADMIN role in their team.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
