package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

const engagementsTable = "engagements"

type EngagementRepository interface {
	Increment(ctx context.Context, userID, courseID int) (*domain.Engagement, error)
}

type engagementRepository struct {
	conn *postgres.Connection
}

func NewEngagementRepository(conn *postgres.Connection) EngagementRepository {
	return &engagementRepository{
		conn: conn,
	}
}

// Increment bumps time_spent by one for (user, course), creating the row
// with time_spent = 1 on first ping. A single upsert statement keeps
// concurrent pings from losing updates; created_at is never touched after
// the first ping.
func (r *engagementRepository) Increment(ctx context.Context, userID, courseID int) (*domain.Engagement, error) {
	query, args, err := squirrel.
		Insert(engagementsTable).
		Columns("user_id", "course_id", "time_spent").
		Values(userID, courseID, 1).
		Suffix(`
			ON CONFLICT (user_id, course_id) DO UPDATE SET
				time_spent = engagements.time_spent + 1,
				updated_at = NOW()
			RETURNING id, user_id, course_id, time_spent, created_at, updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var engagement domain.Engagement
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&engagement.ID,
		&engagement.UserID,
		&engagement.CourseID,
		&engagement.TimeSpent,
		&engagement.CreatedAt,
		&engagement.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("incrementing engagement: %w", err)
	}

	return &engagement, nil
}
