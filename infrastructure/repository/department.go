package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

const departmentsTable = "departments"

type DepartmentRepository interface {
	Insert(ctx context.Context, department *domain.Department) (*domain.Department, error)
	GetByID(ctx context.Context, departmentID int) (*domain.Department, error)
	List(ctx context.Context) ([]*domain.Department, error)
}

type departmentRepository struct {
	conn *postgres.Connection
}

func NewDepartmentRepository(conn *postgres.Connection) DepartmentRepository {
	return &departmentRepository{
		conn: conn,
	}
}

// Insert creates the department, returning (nil, nil) when the name is
// already taken.
func (r *departmentRepository) Insert(ctx context.Context, department *domain.Department) (*domain.Department, error) {
	query, args, err := squirrel.
		Insert(departmentsTable).
		Columns("name", "description").
		Values(department.Name, department.Description).
		Suffix("ON CONFLICT (name) DO NOTHING RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&department.ID, &department.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inserting department: %w", err)
	}

	return department, nil
}

func (r *departmentRepository) GetByID(ctx context.Context, departmentID int) (*domain.Department, error) {
	query, args, err := squirrel.
		Select("id", "name", "description", "created_at").
		From(departmentsTable).
		Where(squirrel.Eq{"id": departmentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var department domain.Department
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&department.ID,
		&department.Name,
		&department.Description,
		&department.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying department: %w", err)
	}

	return &department, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*domain.Department, error) {
	query, args, err := squirrel.
		Select("id", "name", "description", "created_at").
		From(departmentsTable).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	defer rows.Close()

	departments := make([]*domain.Department, 0)
	for rows.Next() {
		var department domain.Department
		if err := rows.Scan(
			&department.ID,
			&department.Name,
			&department.Description,
			&department.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning department: %w", err)
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating departments: %w", err)
	}

	return departments, nil
}
