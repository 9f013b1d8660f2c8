package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

const feedbacksTable = "feedbacks"

type FeedbackRepository interface {
	Insert(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error)
}

type feedbackRepository struct {
	conn *postgres.Connection
}

func NewFeedbackRepository(conn *postgres.Connection) FeedbackRepository {
	return &feedbackRepository{
		conn: conn,
	}
}

// Insert always creates a new row; a user can rate the same course more than
// once and earlier rows are kept.
func (r *feedbackRepository) Insert(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	query, args, err := squirrel.
		Insert(feedbacksTable).
		Columns("user_id", "course_id", "rating", "feedback_text").
		Values(feedback.UserID, feedback.CourseID, feedback.Rating, feedback.FeedbackText).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&feedback.ID, &feedback.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting feedback: %w", err)
	}

	return feedback, nil
}
