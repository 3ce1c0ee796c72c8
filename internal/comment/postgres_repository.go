package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teamboard/teamboard/internal/database"
	"github.com/teamboard/teamboard/internal/user"
)

// PostgresRepository implements Repository on a pgx pool.
type PostgresRepository struct {
	pool database.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool database.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new comment record.
func (r *PostgresRepository) Create(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (body, author_id, discussion_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, c.Body, c.AuthorID, c.DiscussionID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment joined with its parent discussion's team id.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	query := `
		SELECT c.id, c.body, c.author_id, c.discussion_id, c.created_at, c.updated_at, d.team_id
		FROM comments c
		JOIN discussions d ON d.id = c.discussion_id
		WHERE c.id = $1`

	var c Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Body, &c.AuthorID, &c.DiscussionID, &c.CreatedAt, &c.UpdatedAt, &c.DiscussionTeamID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("querying comment: %w", err)
	}

	return &c, nil
}

// ListByDiscussion returns one page of a discussion's comments, oldest first.
func (r *PostgresRepository) ListByDiscussion(ctx context.Context, discussionID uuid.UUID, limit, offset int) ([]Comment, int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE discussion_id = $1`, discussionID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting comments: %w", err)
	}

	query := `
		SELECT c.id, c.body, c.author_id, c.discussion_id, c.created_at, c.updated_at,
			u.id, u.email, u.first_name, u.last_name, u.password_hash, u.role, u.team_id, u.bio, u.created_at, u.updated_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.discussion_id = $1
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, discussionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		var a user.User
		err := rows.Scan(
			&c.ID, &c.Body, &c.AuthorID, &c.DiscussionID, &c.CreatedAt, &c.UpdatedAt,
			&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.PasswordHash,
			&a.Role, &a.TeamID, &a.Bio, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning comment row: %w", err)
		}
		c.Author = &a
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating comment rows: %w", err)
	}

	if comments == nil {
		comments = []Comment{}
	}

	return comments, total, nil
}

// Delete removes a comment by its UUID.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCommentNotFound
	}

	return nil
}
