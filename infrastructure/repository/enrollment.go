package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

const enrollmentsTable = "enrollments"

type EnrollmentRepository interface {
	Insert(ctx context.Context, userID, courseID int) (*domain.Enrollment, error)
	UpdateProgress(ctx context.Context, userID, courseID, progress int) (*domain.Enrollment, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.Enrollment, error)
}

type enrollmentRepository struct {
	conn *postgres.Connection
}

func NewEnrollmentRepository(conn *postgres.Connection) EnrollmentRepository {
	return &enrollmentRepository{
		conn: conn,
	}
}

// Insert creates the enrollment with progress 0. The insert-if-absent check
// rides on the (user_id, course_id) unique constraint so two concurrent
// enrollments cannot both succeed; on conflict it returns (nil, nil) and the
// caller decides how to report the duplicate.
func (r *enrollmentRepository) Insert(ctx context.Context, userID, courseID int) (*domain.Enrollment, error) {
	query, args, err := squirrel.
		Insert(enrollmentsTable).
		Columns("user_id", "course_id", "progress").
		Values(userID, courseID, 0).
		Suffix("ON CONFLICT (user_id, course_id) DO NOTHING RETURNING id, user_id, course_id, progress, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var enrollment domain.Enrollment
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inserting enrollment: %w", err)
	}

	return &enrollment, nil
}

// UpdateProgress updates the row for (user, course) and returns it, or
// (nil, nil) when no enrollment exists.
func (r *enrollmentRepository) UpdateProgress(ctx context.Context, userID, courseID, progress int) (*domain.Enrollment, error) {
	query, args, err := squirrel.
		Update(enrollmentsTable).
		Set("progress", progress).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID, "course_id": courseID}).
		Suffix("RETURNING id, user_id, course_id, progress, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var enrollment domain.Enrollment
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.Progress,
		&enrollment.CreatedAt,
		&enrollment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("updating enrollment progress: %w", err)
	}

	return &enrollment, nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Enrollment, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "course_id", "progress", "created_at", "updated_at").
		From(enrollmentsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("course_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]*domain.Enrollment, 0)
	for rows.Next() {
		var enrollment domain.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.CourseID,
			&enrollment.Progress,
			&enrollment.CreatedAt,
			&enrollment.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning enrollment: %w", err)
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enrollments: %w", err)
	}

	return enrollments, nil
}
