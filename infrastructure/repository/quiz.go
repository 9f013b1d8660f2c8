package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

const quizzesTable = "quizzes"

type QuizRepository interface {
	Insert(ctx context.Context, quiz *domain.Quiz) (*domain.Quiz, error)
}

type quizRepository struct {
	conn *postgres.Connection
}

func NewQuizRepository(conn *postgres.Connection) QuizRepository {
	return &quizRepository{
		conn: conn,
	}
}

func (r *quizRepository) Insert(ctx context.Context, quiz *domain.Quiz) (*domain.Quiz, error) {
	query, args, err := squirrel.
		Insert(quizzesTable).
		Columns("user_id", "course_id", "quiz_score").
		Values(quiz.UserID, quiz.CourseID, quiz.QuizScore).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&quiz.ID, &quiz.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting quiz score: %w", err)
	}

	return quiz, nil
}
