package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

const usersTable = "users"

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID int) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
	ListAdminEmails(ctx context.Context) ([]string, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := squirrel.
		Insert(usersTable).
		Columns("first_name", "last_name", "email", "password_hash", "user_type", "department_id", "team_id").
		Values(user.FirstName, user.LastName, user.Email, user.PasswordHash, user.UserType, user.DepartmentID, user.TeamID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"u.email": email})
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*domain.User, error) {
	return r.getUser(ctx, squirrel.Eq{"u.id": userID})
}

// getUser resolves the department and team names in the same query; both
// references are optional so the joins are left outer.
func (r *userRepository) getUser(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	query, args, err := squirrel.
		Select(
			"u.id", "u.first_name", "u.last_name", "u.email", "u.password_hash",
			"u.user_type", "u.department_id", "u.team_id", "u.created_at", "u.updated_at",
			"d.name", "t.name",
		).
		From(usersTable + " u").
		LeftJoin("departments d ON d.id = u.department_id").
		LeftJoin("teams t ON t.id = u.team_id").
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var user domain.User
	var departmentName, teamName sql.NullString
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.UserType,
		&user.DepartmentID,
		&user.TeamID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&departmentName,
		&teamName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	if departmentName.Valid {
		user.Department = &departmentName.String
	}
	if teamName.Valid {
		user.Team = &teamName.String
	}

	return &user, nil
}

// ListAdminEmails feeds the daily digest job.
func (r *userRepository) ListAdminEmails(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("email").
		From(usersTable).
		Where(squirrel.Eq{"user_type": domain.UserTypeAdmin}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing admin emails: %w", err)
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scanning admin email: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating admin emails: %w", err)
	}

	return emails, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	query, args, err := squirrel.
		Update(usersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return nil
}
