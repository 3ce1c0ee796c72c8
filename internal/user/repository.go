package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user record is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an insert or update collides with an
// existing email address. Email uniqueness is global, not per team.
var ErrDuplicateEmail = errors.New("email already in use")

// ListFilter narrows and pages a team member listing.
type ListFilter struct {
	Search string // case-insensitive substring over first name, last name, email
	Limit  int
	Offset int
}

// Repository provides access to the users table.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// ListByTeam returns one page of a team's members ordered by first name
	// then last name, plus the total number of matches.
	ListByTeam(ctx context.Context, teamID uuid.UUID, filter ListFilter) ([]User, int, error)
	// UpdateProfile persists first name, last name, email and bio.
	UpdateProfile(ctx context.Context, u *User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
