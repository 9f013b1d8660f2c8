package scheduler

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/upskill-labs/upskill-api/infrastructure/repository/mocks"
	"github.com/upskill-labs/upskill-api/internal/config"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

type fakeAnalyzer struct {
	dashboard *domain.Dashboard
	err       error
}

func (f *fakeAnalyzer) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	return f.dashboard, f.err
}

func (f *fakeAnalyzer) AverageRatings(ctx context.Context) ([]domain.CourseRating, error) {
	return nil, nil
}

type recordingMailer struct {
	recipients []string
	bodies     []string
}

func (m *recordingMailer) Send(toEmail, subject, body string) {
	m.recipients = append(m.recipients, toEmail)
	m.bodies = append(m.bodies, body)
}

func TestDigestService_RunDigest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	mail := &recordingMailer{}
	analyzer := &fakeAnalyzer{
		dashboard: &domain.Dashboard{
			TotalEmployees: 25,
			ActiveCourses:  8,
			DayEngagement:  "Sun: 0, Mon: 5, Tue: 0, Wed: 0, Thu: 0, Fri: 1, Sat: 0",
		},
	}

	userRepo.EXPECT().
		ListAdminEmails(gomock.Any()).
		Return([]string{"alice.monteiro@upskill.io", "admin2@upskill.io"}, nil)

	service := &DigestService{
		cfg:      config.Digest{Enabled: true, CronSchedule: "0 7 * * 1-5"},
		analyzer: analyzer,
		userRepo: userRepo,
		mail:     mail,
	}

	service.RunDigest(context.Background())

	require.Len(t, mail.recipients, 2)
	assert.Equal(t, "alice.monteiro@upskill.io", mail.recipients[0])
	assert.Contains(t, mail.bodies[0], "Employees: 25")
	assert.Contains(t, mail.bodies[0], "Mon: 5")

	running, startedAt, completedAt := service.Status()
	assert.False(t, running)
	assert.False(t, startedAt.IsZero())
	assert.False(t, completedAt.IsZero())
}

func TestDigestService_RunDigest_AggregationFailureSendsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	mail := &recordingMailer{}

	service := &DigestService{
		cfg:      config.Digest{Enabled: true},
		analyzer: &fakeAnalyzer{err: errors.New("store down")},
		userRepo: userRepo,
		mail:     mail,
	}

	service.RunDigest(context.Background())

	assert.Empty(t, mail.recipients)
}

func TestDigestService_RunDigest_NoAdmins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userRepo := mocks.NewMockUserRepository(ctrl)
	mail := &recordingMailer{}

	userRepo.EXPECT().
		ListAdminEmails(gomock.Any()).
		Return(nil, nil)

	service := &DigestService{
		cfg:      config.Digest{Enabled: true},
		analyzer: &fakeAnalyzer{dashboard: &domain.Dashboard{}},
		userRepo: userRepo,
		mail:     mail,
	}

	service.RunDigest(context.Background())

	assert.Empty(t, mail.recipients)
}
