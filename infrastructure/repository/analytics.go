package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

// AnalyticsRepository exposes the read-only grouped queries behind the admin
// dashboard. Results are sparse: a weekday, month or course with no rows is
// simply absent, and the aggregation engine fills the gaps over the fixed
// dimensions.
type AnalyticsRepository interface {
	CountEmployees(ctx context.Context) (int, error)
	CountActiveCourses(ctx context.Context) (int, error)
	CountCompletedEmployees(ctx context.Context) (int, error)
	AverageEngagement(ctx context.Context) (float64, error)
	WeekdayEngagementCounts(ctx context.Context) ([]domain.BucketCount, error)
	MonthlyCompletionCounts(ctx context.Context) ([]domain.BucketCount, error)
	AverageRatingByCourse(ctx context.Context) ([]domain.CourseAverage, error)
	AverageTimeByCourse(ctx context.Context) ([]domain.CourseAverage, error)
	EmployeeCourseRows(ctx context.Context) ([]domain.EmployeeCourseRow, error)
}

type analyticsRepository struct {
	conn *postgres.Connection
}

func NewAnalyticsRepository(conn *postgres.Connection) AnalyticsRepository {
	return &analyticsRepository{
		conn: conn,
	}
}

func (r *analyticsRepository) CountEmployees(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE user_type = $1",
		domain.UserTypeEmployee,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting employees: %w", err)
	}

	return count, nil
}

func (r *analyticsRepository) CountActiveCourses(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT course_id) FROM enrollments",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting active courses: %w", err)
	}

	return count, nil
}

func (r *analyticsRepository) CountCompletedEmployees(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT user_id) FROM enrollments WHERE progress = $1",
		domain.CompletedProgress,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting completed employees: %w", err)
	}

	return count, nil
}

// AverageEngagement reports 0, not an error, over an empty engagement set.
func (r *analyticsRepository) AverageEngagement(ctx context.Context) (float64, error) {
	var avg float64
	err := r.conn.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(time_spent), 0) FROM engagements",
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("averaging engagement: %w", err)
	}

	return avg, nil
}

// WeekdayEngagementCounts groups engagements by the weekday of created_at.
// Postgres EXTRACT(DOW) runs 0..6 with 0 = Sunday; the +1 shifts it onto the
// 1..7 calendar convention (1 = Sunday) the catalog uses.
func (r *analyticsRepository) WeekdayEngagementCounts(ctx context.Context) ([]domain.BucketCount, error) {
	return r.bucketCounts(ctx, `
		SELECT EXTRACT(DOW FROM created_at)::int + 1 AS weekday, COUNT(*)
		FROM engagements
		GROUP BY weekday
	`)
}

func (r *analyticsRepository) MonthlyCompletionCounts(ctx context.Context) ([]domain.BucketCount, error) {
	return r.bucketCounts(ctx, fmt.Sprintf(`
		SELECT EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*)
		FROM enrollments
		WHERE progress = %d
		GROUP BY month
	`, domain.CompletedProgress))
}

func (r *analyticsRepository) bucketCounts(ctx context.Context, query string) ([]domain.BucketCount, error) {
	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying bucket counts: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.BucketCount, 0)
	for rows.Next() {
		var count domain.BucketCount
		if err := rows.Scan(&count.Key, &count.Count); err != nil {
			return nil, fmt.Errorf("scanning bucket count: %w", err)
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bucket counts: %w", err)
	}

	return counts, nil
}

func (r *analyticsRepository) AverageRatingByCourse(ctx context.Context) ([]domain.CourseAverage, error) {
	return r.courseAverages(ctx, "rating", feedbacksTable)
}

func (r *analyticsRepository) AverageTimeByCourse(ctx context.Context) ([]domain.CourseAverage, error) {
	return r.courseAverages(ctx, "time_spent", engagementsTable)
}

func (r *analyticsRepository) courseAverages(ctx context.Context, column, table string) ([]domain.CourseAverage, error) {
	query, args, err := squirrel.
		Select("course_id", fmt.Sprintf("AVG(%s)", column)).
		From(table).
		GroupBy("course_id").
		OrderBy("course_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying course averages: %w", err)
	}
	defer rows.Close()

	averages := make([]domain.CourseAverage, 0)
	for rows.Next() {
		var average domain.CourseAverage
		if err := rows.Scan(&average.CourseID, &average.Average); err != nil {
			return nil, fmt.Errorf("scanning course average: %w", err)
		}
		averages = append(averages, average)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course averages: %w", err)
	}

	return averages, nil
}

// EmployeeCourseRows flattens every employee against their enrollments.
// Employees with no enrollments still produce one row (null course). The
// lateral subquery picks the earliest feedback for the (user, course) pair so
// duplicate ratings resolve deterministically.
func (r *analyticsRepository) EmployeeCourseRows(ctx context.Context) ([]domain.EmployeeCourseRow, error) {
	query, args, err := squirrel.
		Select("u.first_name", "u.last_name", "d.name", "t.name", "e.course_id", "f.rating").
		From(usersTable+" u").
		LeftJoin("departments d ON d.id = u.department_id").
		LeftJoin("teams t ON t.id = u.team_id").
		LeftJoin("enrollments e ON e.user_id = u.id").
		JoinClause(`LEFT JOIN LATERAL (
			SELECT rating
			FROM feedbacks
			WHERE user_id = u.id AND course_id = e.course_id
			ORDER BY created_at ASC, id ASC
			LIMIT 1
		) f ON true`).
		Where(squirrel.Eq{"u.user_type": domain.UserTypeEmployee}).
		OrderBy("u.id ASC", "e.course_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying employee courses: %w", err)
	}
	defer rows.Close()

	result := make([]domain.EmployeeCourseRow, 0)
	for rows.Next() {
		var row domain.EmployeeCourseRow
		var department, team sql.NullString
		var course, rating sql.NullInt64

		if err := rows.Scan(&row.FirstName, &row.LastName, &department, &team, &course, &rating); err != nil {
			return nil, fmt.Errorf("scanning employee course row: %w", err)
		}

		if department.Valid {
			row.Department = &department.String
		}
		if team.Valid {
			row.Team = &team.String
		}
		if course.Valid {
			courseID := int(course.Int64)
			row.Course = &courseID
		}
		if rating.Valid {
			ratingValue := int(rating.Int64)
			row.Rating = &ratingValue
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employee course rows: %w", err)
	}

	return result, nil
}
