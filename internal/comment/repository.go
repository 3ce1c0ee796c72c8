package comment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrCommentNotFound is returned when a comment does not exist. Handlers also
// report team-mismatched comments with this error so callers cannot probe for
// existence across teams.
var ErrCommentNotFound = errors.New("comment not found")

// Repository provides access to the comments table.
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	// GetByID retrieves a comment with its parent discussion's team attached.
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	// ListByDiscussion returns one page of a discussion's comments in
	// conversational order (oldest first) with authors attached, plus the
	// total count.
	ListByDiscussion(ctx context.Context, discussionID uuid.UUID, limit, offset int) ([]Comment, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
