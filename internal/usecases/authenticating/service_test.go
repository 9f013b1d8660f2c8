package authenticating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/upskill-labs/upskill-api/infrastructure/repository/mocks"
	"github.com/upskill-labs/upskill-api/internal/config"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

// recordingMailer captures outgoing mail instead of talking to Sendgrid.
type recordingMailer struct {
	recipients []string
	bodies     []string
}

func (m *recordingMailer) Send(toEmail, subject, body string) {
	m.recipients = append(m.recipients, toEmail)
	m.bodies = append(m.bodies, body)
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.App{WebURL: "http://localhost:3000"},
		Auth:      config.Auth{TokenTTLHour: 24},
		SecretKey: "test-secret",
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	mail := &recordingMailer{}
	service := &Service{userRepo: userRepo, mail: mail, cfg: testConfig()}

	t.Run("creates the user and mails the credentials", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "bruno.ferraz@upskill.io").
			Return(nil, nil)
		userRepo.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.Equal(t, "bruno.ferraz@upskill.io", user.Email)
				assert.NotEqual(t, "hunter22", user.PasswordHash)
				user.ID = 7
				return user, nil
			})

		user, err := service.Register(context.Background(), &domain.RegisterUserRequest{
			FirstName: "Bruno",
			LastName:  "Ferraz",
			Email:     "  Bruno.Ferraz@Upskill.io ",
			Password:  "hunter22",
			UserType:  domain.UserTypeEmployee,
		})

		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		require.Len(t, mail.recipients, 1)
		assert.Equal(t, "bruno.ferraz@upskill.io", mail.recipients[0])
		assert.Contains(t, mail.bodies[0], "hunter22")
	})

	t.Run("duplicate email is refused", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "bruno.ferraz@upskill.io").
			Return(&domain.User{ID: 7}, nil)

		user, err := service.Register(context.Background(), &domain.RegisterUserRequest{
			FirstName: "Bruno",
			LastName:  "Ferraz",
			Email:     "bruno.ferraz@upskill.io",
			Password:  "hunter22",
			UserType:  domain.UserTypeEmployee,
		})

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.Nil(t, user)
	})

	t.Run("missing fields never reach the store", func(t *testing.T) {
		user, err := service.Register(context.Background(), &domain.RegisterUserRequest{
			FirstName: "Bruno",
		})

		assert.ErrorIs(t, err, ErrMissingRequiredData)
		assert.Nil(t, user)
	})

	t.Run("unknown user type is refused", func(t *testing.T) {
		user, err := service.Register(context.Background(), &domain.RegisterUserRequest{
			FirstName: "Bruno",
			LastName:  "Ferraz",
			Email:     "bruno.ferraz@upskill.io",
			Password:  "hunter22",
			UserType:  "superuser",
		})

		assert.ErrorIs(t, err, ErrInvalidUserType)
		assert.Nil(t, user)
	})
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := &Service{userRepo: userRepo, mail: &recordingMailer{}, cfg: testConfig()}

	t.Run("valid credentials produce a verifiable token", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "alice.monteiro@upskill.io").
			Return(&domain.User{
				ID:           1,
				FirstName:    "Alice",
				LastName:     "Monteiro",
				Email:        "alice.monteiro@upskill.io",
				PasswordHash: hashOf(t, "correct-horse"),
				UserType:     domain.UserTypeAdmin,
			}, nil)

		token, user, err := service.Login(context.Background(), "alice.monteiro@upskill.io", "correct-horse")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Empty(t, user.PasswordHash)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "alice.monteiro@upskill.io").
			Return(&domain.User{ID: 1, PasswordHash: hashOf(t, "correct-horse")}, nil)

		token, user, err := service.Login(context.Background(), "alice.monteiro@upskill.io", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
		assert.Nil(t, user)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "nobody@upskill.io").
			Return(nil, nil)

		_, _, err := service.Login(context.Background(), "nobody@upskill.io", "whatever")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		claims, err := service.ValidateToken("not-a-token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestService_ForgotPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	mail := &recordingMailer{}
	service := &Service{userRepo: userRepo, mail: mail, cfg: testConfig()}

	userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "carla.dias@upskill.io").
		Return(&domain.User{ID: 3, Email: "carla.dias@upskill.io"}, nil)
	userRepo.EXPECT().
		UpdatePassword(gomock.Any(), 3, gomock.Any()).
		Return(nil)

	err := service.ForgotPassword(context.Background(), "Carla.Dias@upskill.io")

	require.NoError(t, err)
	require.Len(t, mail.recipients, 1)
	assert.Equal(t, "carla.dias@upskill.io", mail.recipients[0])
}

func TestService_ResetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	service := &Service{userRepo: userRepo, mail: &recordingMailer{}, cfg: testConfig()}

	t.Run("correct old password rotates the hash", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "carla.dias@upskill.io").
			Return(&domain.User{ID: 3, PasswordHash: hashOf(t, "old-pass")}, nil)
		userRepo.EXPECT().
			UpdatePassword(gomock.Any(), 3, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, hash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-pass")))
				return nil
			})

		err := service.ResetPassword(context.Background(), "carla.dias@upskill.io", "old-pass", "new-pass")
		assert.NoError(t, err)
	})

	t.Run("wrong old password", func(t *testing.T) {
		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "carla.dias@upskill.io").
			Return(&domain.User{ID: 3, PasswordHash: hashOf(t, "old-pass")}, nil)

		err := service.ResetPassword(context.Background(), "carla.dias@upskill.io", "nope", "new-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
