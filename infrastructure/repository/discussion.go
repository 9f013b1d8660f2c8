package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

const discussionsTable = "discussions"

type DiscussionRepository interface {
	Insert(ctx context.Context, discussion *domain.Discussion) (*domain.Discussion, error)
	ListByCourse(ctx context.Context, courseID int) ([]*domain.Discussion, error)
}

type discussionRepository struct {
	conn *postgres.Connection
}

func NewDiscussionRepository(conn *postgres.Connection) DiscussionRepository {
	return &discussionRepository{
		conn: conn,
	}
}

func (r *discussionRepository) Insert(ctx context.Context, discussion *domain.Discussion) (*domain.Discussion, error) {
	query, args, err := squirrel.
		Insert(discussionsTable).
		Columns("user_id", "course_id", "message").
		Values(discussion.UserID, discussion.CourseID, discussion.Message).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&discussion.ID, &discussion.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting discussion: %w", err)
	}

	return discussion, nil
}

// ListByCourse returns the course thread newest first, with author names
// resolved.
func (r *discussionRepository) ListByCourse(ctx context.Context, courseID int) ([]*domain.Discussion, error) {
	query, args, err := squirrel.
		Select("d.id", "d.user_id", "d.course_id", "d.message", "d.created_at", "u.first_name", "u.last_name").
		From(discussionsTable + " d").
		Join("users u ON u.id = d.user_id").
		Where(squirrel.Eq{"d.course_id": courseID}).
		OrderBy("d.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing discussions: %w", err)
	}
	defer rows.Close()

	discussions := make([]*domain.Discussion, 0)
	for rows.Next() {
		var discussion domain.Discussion
		if err := rows.Scan(
			&discussion.ID,
			&discussion.UserID,
			&discussion.CourseID,
			&discussion.Message,
			&discussion.CreatedAt,
			&discussion.FirstName,
			&discussion.LastName,
		); err != nil {
			return nil, fmt.Errorf("scanning discussion: %w", err)
		}
		discussions = append(discussions, &discussion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating discussions: %w", err)
	}

	return discussions, nil
}
