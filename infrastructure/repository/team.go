package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

const teamsTable = "teams"

type TeamRepository interface {
	Insert(ctx context.Context, team *domain.Team) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	ListByDepartment(ctx context.Context, departmentID int) ([]*domain.Team, error)
}

type teamRepository struct {
	conn *postgres.Connection
}

func NewTeamRepository(conn *postgres.Connection) TeamRepository {
	return &teamRepository{
		conn: conn,
	}
}

// Insert creates the team, returning (nil, nil) when the name is taken.
func (r *teamRepository) Insert(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	query, args, err := squirrel.
		Insert(teamsTable).
		Columns("name", "description", "department_id").
		Values(team.Name, team.Description, team.DepartmentID).
		Suffix("ON CONFLICT (name) DO NOTHING RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&team.ID, &team.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inserting team: %w", err)
	}

	return team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	return r.list(ctx, nil)
}

func (r *teamRepository) ListByDepartment(ctx context.Context, departmentID int) ([]*domain.Team, error) {
	return r.list(ctx, squirrel.Eq{"department_id": departmentID})
}

func (r *teamRepository) list(ctx context.Context, where squirrel.Eq) ([]*domain.Team, error) {
	queryBuilder := squirrel.
		Select("id", "name", "description", "department_id", "created_at").
		From(teamsTable).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		queryBuilder = queryBuilder.Where(where)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Description,
			&team.DepartmentID,
			&team.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}

	return teams, nil
}
