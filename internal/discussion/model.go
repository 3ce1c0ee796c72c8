package discussion

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamboard/teamboard/internal/user"
)

// Sort keys accepted by list queries.
const (
	SortByTitle     = "title"
	SortByCreatedAt = "createdAt"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Discussion represents a row in the discussions table. Author and team are
// fixed at creation from the creating admin's identity and never change.
type Discussion struct {
	ID        uuid.UUID
	Title     string
	Body      string
	AuthorID  uuid.UUID
	TeamID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	// Author is populated on reads that join the users table.
	Author *user.User
}
