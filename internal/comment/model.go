package comment

import (
	"time"

	"github.com/google/uuid"

	"github.com/teamboard/teamboard/internal/user"
)

// Comment represents a row in the comments table. A comment has no team
// column of its own; its effective team is the parent discussion's.
type Comment struct {
	ID           uuid.UUID
	Body         string
	AuthorID     uuid.UUID
	DiscussionID uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Author is populated on reads that join the users table.
	Author *user.User
	// DiscussionTeamID is the parent discussion's team, populated on reads
	// that join the discussions table. Authorization joins through it.
	DiscussionTeamID uuid.UUID
}
