package discussion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teamboard/teamboard/internal/database"
	"github.com/teamboard/teamboard/internal/user"
)

const discussionWithAuthorColumns = `
	d.id, d.title, d.body, d.author_id, d.team_id, d.created_at, d.updated_at,
	u.id, u.email, u.first_name, u.last_name, u.password_hash, u.role, u.team_id, u.bio, u.created_at, u.updated_at`

// PostgresRepository implements Repository on a pgx pool.
type PostgresRepository struct {
	pool database.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool database.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

func scanDiscussionWithAuthor(row pgx.Row, d *Discussion) error {
	var a user.User
	err := row.Scan(
		&d.ID, &d.Title, &d.Body, &d.AuthorID, &d.TeamID, &d.CreatedAt, &d.UpdatedAt,
		&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.PasswordHash,
		&a.Role, &a.TeamID, &a.Bio, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	d.Author = &a
	return nil
}

// Create inserts a new discussion record.
func (r *PostgresRepository) Create(ctx context.Context, d *Discussion) error {
	query := `
		INSERT INTO discussions (title, body, author_id, team_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, d.Title, d.Body, d.AuthorID, d.TeamID).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting discussion: %w", err)
	}

	return nil
}

// GetForTeam retrieves a discussion only when it belongs to the given team.
func (r *PostgresRepository) GetForTeam(ctx context.Context, id, teamID uuid.UUID) (*Discussion, error) {
	query := `
		SELECT ` + discussionWithAuthorColumns + `
		FROM discussions d
		JOIN users u ON u.id = d.author_id
		WHERE d.id = $1 AND d.team_id = $2`

	var d Discussion
	if err := scanDiscussionWithAuthor(r.pool.QueryRow(ctx, query, id, teamID), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("querying discussion: %w", err)
	}

	return &d, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// orderClause maps the whitelisted sort keys onto SQL. Anything unexpected
// falls back to newest-first.
func orderClause(filter ListFilter) string {
	column := "d.created_at"
	if filter.SortBy == SortByTitle {
		column = "d.title"
	}
	direction := "DESC"
	if filter.SortOrder == SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}

// ListByTeam returns one page of a team's discussions plus the total count.
func (r *PostgresRepository) ListByTeam(ctx context.Context, teamID uuid.UUID, filter ListFilter) ([]Discussion, int, error) {
	where := `d.team_id = $1`
	args := []any{teamID}

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		where += ` AND (d.title ILIKE $2 OR d.body ILIKE $2)`
		args = append(args, pattern)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM discussions d WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting discussions: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM discussions d JOIN users u ON u.id = d.author_id WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		discussionWithAuthorColumns, where, orderClause(filter), len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing discussions: %w", err)
	}
	defer rows.Close()

	var discussions []Discussion
	for rows.Next() {
		var d Discussion
		if err := scanDiscussionWithAuthor(rows, &d); err != nil {
			return nil, 0, fmt.Errorf("scanning discussion row: %w", err)
		}
		discussions = append(discussions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating discussion rows: %w", err)
	}

	if discussions == nil {
		discussions = []Discussion{}
	}

	return discussions, total, nil
}

// Update persists title and body.
func (r *PostgresRepository) Update(ctx context.Context, d *Discussion) error {
	query := `
		UPDATE discussions
		SET title = $1, body = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query, d.Title, d.Body, d.ID).Scan(&d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDiscussionNotFound
		}
		return fmt.Errorf("updating discussion: %w", err)
	}

	return nil
}

// Delete removes a discussion by its UUID. Comments cascade in the schema.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM discussions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting discussion: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrDiscussionNotFound
	}

	return nil
}
