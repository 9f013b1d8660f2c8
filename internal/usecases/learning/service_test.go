package learning

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/upskill-labs/upskill-api/infrastructure/repository/mocks"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

func newLearningService(ctrl *gomock.Controller) (*Service, *mocks.MockEnrollmentRepository, *mocks.MockEngagementRepository, *mocks.MockFeedbackRepository, *mocks.MockQuizRepository) {
	enrollmentRepo := mocks.NewMockEnrollmentRepository(ctrl)
	engagementRepo := mocks.NewMockEngagementRepository(ctrl)
	feedbackRepo := mocks.NewMockFeedbackRepository(ctrl)
	quizRepo := mocks.NewMockQuizRepository(ctrl)

	service := &Service{
		enrollmentRepo: enrollmentRepo,
		engagementRepo: engagementRepo,
		feedbackRepo:   feedbackRepo,
		quizRepo:       quizRepo,
	}

	return service, enrollmentRepo, engagementRepo, feedbackRepo, quizRepo
}

func TestService_Enroll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, enrollmentRepo, _, _, _ := newLearningService(ctrl)

	tests := []struct {
		name     string
		courseID int
		setup    func()
		wantErr  error
	}{
		{
			name:     "valid course creates enrollment",
			courseID: 5,
			setup: func() {
				enrollmentRepo.EXPECT().
					Insert(gomock.Any(), 1, 5).
					Return(&domain.Enrollment{ID: 1, UserID: 1, CourseID: 5, Progress: 0}, nil)
			},
		},
		{
			name:     "course id below catalog is rejected before the store",
			courseID: 0,
			setup:    func() {},
			wantErr:  ErrUnknownCourse,
		},
		{
			name:     "course id above catalog is rejected before the store",
			courseID: 13,
			setup:    func() {},
			wantErr:  ErrUnknownCourse,
		},
		{
			name:     "duplicate enrollment maps the silent insert to a caller error",
			courseID: 5,
			setup: func() {
				enrollmentRepo.EXPECT().
					Insert(gomock.Any(), 1, 5).
					Return(nil, nil)
			},
			wantErr: ErrAlreadyEnrolled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			enrollment, err := service.Enroll(context.Background(), 1, tt.courseID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, enrollment)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, enrollment)
			assert.Equal(t, 0, enrollment.Progress)
		})
	}
}

func TestService_UpdateProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, enrollmentRepo, _, _, _ := newLearningService(ctrl)

	tests := []struct {
		name     string
		courseID int
		progress int
		setup    func()
		wantErr  error
	}{
		{
			name:     "progress inside the range is stored",
			courseID: 3,
			progress: 100,
			setup: func() {
				enrollmentRepo.EXPECT().
					UpdateProgress(gomock.Any(), 1, 3, 100).
					Return(&domain.Enrollment{ID: 7, UserID: 1, CourseID: 3, Progress: 100}, nil)
			},
		},
		{
			name:     "negative progress never reaches the store",
			courseID: 3,
			progress: -1,
			setup:    func() {},
			wantErr:  ErrInvalidProgress,
		},
		{
			name:     "progress above 100 never reaches the store",
			courseID: 3,
			progress: 101,
			setup:    func() {},
			wantErr:  ErrInvalidProgress,
		},
		{
			name:     "unknown course wins over range validation",
			courseID: 99,
			progress: 50,
			setup:    func() {},
			wantErr:  ErrUnknownCourse,
		},
		{
			name:     "pair without enrollment",
			courseID: 3,
			progress: 50,
			setup: func() {
				enrollmentRepo.EXPECT().
					UpdateProgress(gomock.Any(), 1, 3, 50).
					Return(nil, nil)
			},
			wantErr: ErrEnrollmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			enrollment, err := service.UpdateProgress(context.Background(), 1, tt.courseID, tt.progress)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, enrollment)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.progress, enrollment.Progress)
		})
	}
}

func TestService_SubmitFeedback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, feedbackRepo, _ := newLearningService(ctrl)

	t.Run("valid rating is stored with the text", func(t *testing.T) {
		feedbackRepo.EXPECT().
			Insert(gomock.Any(), &domain.Feedback{UserID: 1, CourseID: 2, Rating: 4, FeedbackText: "solid content"}).
			Return(&domain.Feedback{ID: 9, UserID: 1, CourseID: 2, Rating: 4, FeedbackText: "solid content"}, nil)

		feedback, err := service.SubmitFeedback(context.Background(), 1, 2, 4, "solid content")

		require.NoError(t, err)
		assert.Equal(t, 9, feedback.ID)
	})

	t.Run("ratings outside 1..5 are rejected", func(t *testing.T) {
		for _, rating := range []int{0, 6, -3} {
			feedback, err := service.SubmitFeedback(context.Background(), 1, 2, rating, "")
			assert.ErrorIs(t, err, ErrInvalidRating)
			assert.Nil(t, feedback)
		}
	})

	t.Run("unknown course is rejected", func(t *testing.T) {
		_, err := service.SubmitFeedback(context.Background(), 1, 42, 3, "")
		assert.ErrorIs(t, err, ErrUnknownCourse)
	})
}

func TestService_SubmitQuizScore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, _, quizRepo := newLearningService(ctrl)

	t.Run("boundary scores are accepted", func(t *testing.T) {
		for _, score := range []int{0, 100} {
			quizRepo.EXPECT().
				Insert(gomock.Any(), &domain.Quiz{UserID: 1, CourseID: 4, QuizScore: score}).
				Return(&domain.Quiz{ID: 1, UserID: 1, CourseID: 4, QuizScore: score}, nil)

			quiz, err := service.SubmitQuizScore(context.Background(), 1, 4, score)
			require.NoError(t, err)
			assert.Equal(t, score, quiz.QuizScore)
		}
	})

	t.Run("scores outside 0..100 are rejected", func(t *testing.T) {
		for _, score := range []int{-1, 101} {
			quiz, err := service.SubmitQuizScore(context.Background(), 1, 4, score)
			assert.ErrorIs(t, err, ErrInvalidScore)
			assert.Nil(t, quiz)
		}
	})
}

func TestService_RecordEngagement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, engagementRepo, _, _ := newLearningService(ctrl)

	t.Run("delegates to the atomic increment", func(t *testing.T) {
		engagementRepo.EXPECT().
			Increment(gomock.Any(), 1, 6).
			Return(&domain.Engagement{ID: 1, UserID: 1, CourseID: 6, TimeSpent: 3}, nil)

		err := service.RecordEngagement(context.Background(), 1, 6)
		assert.NoError(t, err)
	})

	t.Run("unknown course never reaches the store", func(t *testing.T) {
		err := service.RecordEngagement(context.Background(), 1, 0)
		assert.ErrorIs(t, err, ErrUnknownCourse)
	})

	t.Run("store errors surface unchanged", func(t *testing.T) {
		storeErr := errors.New("deadlock detected")
		engagementRepo.EXPECT().
			Increment(gomock.Any(), 1, 6).
			Return(nil, storeErr)

		err := service.RecordEngagement(context.Background(), 1, 6)
		assert.ErrorIs(t, err, storeErr)
	})
}
