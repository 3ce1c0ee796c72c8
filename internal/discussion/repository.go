package discussion

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrDiscussionNotFound is returned when a discussion does not exist or
// belongs to another team. The two cases are deliberately indistinguishable.
var ErrDiscussionNotFound = errors.New("discussion not found")

// ListFilter narrows, orders and pages a team's discussion listing.
type ListFilter struct {
	Search    string // case-insensitive substring over title and body
	SortBy    string // SortByTitle or SortByCreatedAt
	SortOrder string // SortAsc or SortDesc
	Limit     int
	Offset    int
}

// Repository provides access to the discussions table.
type Repository interface {
	Create(ctx context.Context, d *Discussion) error
	// GetForTeam retrieves a discussion only when it belongs to the given
	// team; any other outcome is ErrDiscussionNotFound.
	GetForTeam(ctx context.Context, id, teamID uuid.UUID) (*Discussion, error)
	// ListByTeam returns one page of a team's discussions with authors
	// attached, plus the total number of matches.
	ListByTeam(ctx context.Context, teamID uuid.UUID, filter ListFilter) ([]Discussion, int, error)
	// Update persists title and body.
	Update(ctx context.Context, d *Discussion) error
	Delete(ctx context.Context, id uuid.UUID) error
}
