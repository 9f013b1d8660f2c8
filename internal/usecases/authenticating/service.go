package authenticating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/upskill-labs/upskill-api/infrastructure/mailer"
	"github.com/upskill-labs/upskill-api/infrastructure/repository"
	"github.com/upskill-labs/upskill-api/internal/config"
	"github.com/upskill-labs/upskill-api/internal/domain"
	"github.com/upskill-labs/upskill-api/pkg/apiErrors"
	"github.com/upskill-labs/upskill-api/pkg/log"
	"github.com/upskill-labs/upskill-api/pkg/utils"
)

type Authenticator interface {
	Register(ctx context.Context, req *domain.RegisterUserRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error
}

type Service struct {
	userRepo repository.UserRepository
	mail     mailer.Mailer
	cfg      *config.Config
}

func NewService(userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		mail:     mail,
		cfg:      cfg,
	}
}

// Register creates an account and mails the credentials to the new user.
// Only administrators reach this path (enforced at the route).
func (s *Service) Register(ctx context.Context, req *domain.RegisterUserRequest) (*domain.User, error) {
	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email, first name, last name and password are required")
	}

	if req.UserType != domain.UserTypeAdmin && req.UserType != domain.UserTypeEmployee {
		return nil, NewAuthError(ErrInvalidUserType, apiErrors.ErrInvalidFormat, "user type must be admin or employee")
	}

	email := handleEmail(req.Email)

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "error querying user")
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "email is already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		UserType:     req.UserType,
		DepartmentID: req.DepartmentID,
		TeamID:       req.TeamID,
	}

	user, err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "error creating user")
	}

	s.mail.Send(
		user.Email,
		"Account Created Successfully",
		fmt.Sprintf(
			"Your account has been created successfully! Welcome aboard!\n\nHere are your credentials:\nEmail: %s\nPassword: %s\n\nYou can log in at: %s",
			user.Email, req.Password, s.cfg.App.WebURL,
		),
	)

	return user, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "email and password are required")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "error querying user")
	}

	if user == nil {
		return "", nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "user does not exist")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "invalid password")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, NewAuthError(err, apiErrors.ErrInternalServer, "error generating token")
	}

	user.PasswordHash = ""
	return token, user, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.PasswordHash = ""
	return user, nil
}

// ForgotPassword replaces the password with a generated one and mails it.
// The reply is identical whether or not the account exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, handleEmail(email))
	if err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "error querying user")
	}
	if user == nil {
		return NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "user with this email does not exist")
	}

	tempPassword, err := utils.GenerateTempPassword()
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "error updating password")
	}

	s.mail.Send(
		user.Email,
		"Password Reset",
		fmt.Sprintf("Your new password is: %s\nPlease change your password after logging in.", tempPassword),
	)

	log.ForContext(ctx).WithField("user_id", user.ID).Info("temporary password issued")

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if newPassword == "" {
		return NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "new password is required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, handleEmail(email))
	if err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "error querying user")
	}
	if user == nil {
		return NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "invalid old password")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return NewAuthError(err, apiErrors.ErrDatabaseOperation, "error updating password")
	}

	return nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	ttl := time.Duration(s.cfg.Auth.TokenTTLHour) * time.Hour

	claims := domain.Claims{
		UserID:        user.ID,
		UserFirstName: user.FirstName,
		UserLastName:  user.LastName,
		UserEmail:     user.Email,
		UserType:      user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
