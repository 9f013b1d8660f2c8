package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

// The feedback pick must be pinned in the query itself: among duplicate
// ratings for a (user, course) pair the earliest created_at wins, with id as
// the tiebreaker. Anything else would make the dashboard depend on storage
// order.
const employeeCourseQuery = `SELECT u\.first_name, u\.last_name, d\.name, t\.name, e\.course_id, f\.rating ` +
	`FROM users u ` +
	`LEFT JOIN departments d ON d\.id = u\.department_id ` +
	`LEFT JOIN teams t ON t\.id = u\.team_id ` +
	`LEFT JOIN enrollments e ON e\.user_id = u\.id ` +
	`LEFT JOIN LATERAL \( ` +
	`SELECT rating FROM feedbacks ` +
	`WHERE user_id = u\.id AND course_id = e\.course_id ` +
	`ORDER BY created_at ASC, id ASC LIMIT 1 ` +
	`\) f ON true ` +
	`WHERE u\.user_type = \$1 ` +
	`ORDER BY u\.id ASC, e\.course_id ASC`

func newAnalyticsRepository(t *testing.T) (AnalyticsRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAnalyticsRepository(&postgres.Connection{DB: db}), mock
}

func TestAnalyticsRepository_EmployeeCourseRows(t *testing.T) {
	t.Run("picks the earliest feedback for duplicate ratings", func(t *testing.T) {
		repo, mock := newAnalyticsRepository(t)

		// Bia rated course 3 twice (4 then 1). The lateral subquery resolves
		// the pair to the first rating, so the store hands back a single row
		// already carrying 4.
		rows := sqlmock.NewRows([]string{"first_name", "last_name", "name", "name", "course_id", "rating"}).
			AddRow("Bia", "Souza", "Engineering", "Platform", 3, 4)
		mock.ExpectQuery(employeeCourseQuery).
			WithArgs(domain.UserTypeEmployee).
			WillReturnRows(rows)

		result, err := repo.EmployeeCourseRows(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Bia", result[0].FirstName)
		require.NotNil(t, result[0].Course)
		assert.Equal(t, 3, *result[0].Course)
		require.NotNil(t, result[0].Rating)
		assert.Equal(t, 4, *result[0].Rating)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing joins degrade per row", func(t *testing.T) {
		repo, mock := newAnalyticsRepository(t)

		rows := sqlmock.NewRows([]string{"first_name", "last_name", "name", "name", "course_id", "rating"}).
			AddRow("Caio", "Lima", nil, nil, nil, nil)
		mock.ExpectQuery(employeeCourseQuery).
			WithArgs(domain.UserTypeEmployee).
			WillReturnRows(rows)

		result, err := repo.EmployeeCourseRows(context.Background())

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Nil(t, result[0].Department)
		assert.Nil(t, result[0].Team)
		assert.Nil(t, result[0].Course)
		assert.Nil(t, result[0].Rating)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store error surfaces", func(t *testing.T) {
		repo, mock := newAnalyticsRepository(t)

		mock.ExpectQuery(employeeCourseQuery).
			WithArgs(domain.UserTypeEmployee).
			WillReturnError(assert.AnError)

		result, err := repo.EmployeeCourseRows(context.Background())

		assert.Nil(t, result)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
