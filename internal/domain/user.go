package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	UserTypeAdmin    = "admin"
	UserTypeEmployee = "employee"
)

type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	UserType     string    `json:"user_type"`
	DepartmentID *int      `json:"department_id"`
	TeamID       *int      `json:"team_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Resolved reference names, filled on profile reads only.
	Department *string `json:"department,omitempty"`
	Team       *string `json:"team,omitempty"`
}

type RegisterUserRequest struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	UserType     string `json:"user_type"`
	DepartmentID *int   `json:"department_id"`
	TeamID       *int   `json:"team_id"`
	Password     string `json:"password"`
}

type Claims struct {
	UserID        int
	UserFirstName string
	UserLastName  string
	UserEmail     string
	UserType      string
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.UserType == UserTypeAdmin
}
