package learning

import (
	"context"

	"github.com/upskill-labs/upskill-api/infrastructure/repository"
	"github.com/upskill-labs/upskill-api/internal/domain"
	"github.com/upskill-labs/upskill-api/pkg/log"
)

// Learner owns the write contracts that feed the analytics store: enroll,
// progress updates, feedback, quiz scores and engagement pings. Range
// checks happen here, before anything reaches the store; the aggregation
// engine assumes stored values are already in-range.
type Learner interface {
	Enroll(ctx context.Context, userID, courseID int) (*domain.Enrollment, error)
	ListEnrollments(ctx context.Context, userID int) ([]*domain.Enrollment, error)
	UpdateProgress(ctx context.Context, userID, courseID, progress int) (*domain.Enrollment, error)
	SubmitFeedback(ctx context.Context, userID, courseID, rating int, text string) (*domain.Feedback, error)
	SubmitQuizScore(ctx context.Context, userID, courseID, score int) (*domain.Quiz, error)
	RecordEngagement(ctx context.Context, userID, courseID int) error
}

type Service struct {
	enrollmentRepo repository.EnrollmentRepository
	engagementRepo repository.EngagementRepository
	feedbackRepo   repository.FeedbackRepository
	quizRepo       repository.QuizRepository
}

func NewService(
	enrollmentRepo repository.EnrollmentRepository,
	engagementRepo repository.EngagementRepository,
	feedbackRepo repository.FeedbackRepository,
	quizRepo repository.QuizRepository,
) Learner {
	return &Service{
		enrollmentRepo: enrollmentRepo,
		engagementRepo: engagementRepo,
		feedbackRepo:   feedbackRepo,
		quizRepo:       quizRepo,
	}
}

// Enroll creates the enrollment with progress 0. The duplicate check rides
// on the store's atomic insert-if-absent, not a read-then-write pair.
func (s *Service) Enroll(ctx context.Context, userID, courseID int) (*domain.Enrollment, error) {
	if !domain.ValidCourseID(courseID) {
		return nil, ErrUnknownCourse
	}

	enrollment, err := s.enrollmentRepo.Insert(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrAlreadyEnrolled
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":   userID,
		"course_id": courseID,
	}).Info("enrollment created")

	return enrollment, nil
}

func (s *Service) ListEnrollments(ctx context.Context, userID int) ([]*domain.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}

func (s *Service) UpdateProgress(ctx context.Context, userID, courseID, progress int) (*domain.Enrollment, error) {
	if !domain.ValidCourseID(courseID) {
		return nil, ErrUnknownCourse
	}
	if progress < 0 || progress > domain.CompletedProgress {
		return nil, ErrInvalidProgress
	}

	enrollment, err := s.enrollmentRepo.UpdateProgress(ctx, userID, courseID, progress)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}

	return enrollment, nil
}

// SubmitFeedback always inserts a new row; earlier feedback for the same
// pair stays in place and the dashboard join picks the earliest one.
func (s *Service) SubmitFeedback(ctx context.Context, userID, courseID, rating int, text string) (*domain.Feedback, error) {
	if !domain.ValidCourseID(courseID) {
		return nil, ErrUnknownCourse
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	feedback := &domain.Feedback{
		UserID:       userID,
		CourseID:     courseID,
		Rating:       rating,
		FeedbackText: text,
	}

	return s.feedbackRepo.Insert(ctx, feedback)
}

func (s *Service) SubmitQuizScore(ctx context.Context, userID, courseID, score int) (*domain.Quiz, error) {
	if !domain.ValidCourseID(courseID) {
		return nil, ErrUnknownCourse
	}
	if score < 0 || score > 100 {
		return nil, ErrInvalidScore
	}

	quiz := &domain.Quiz{
		UserID:    userID,
		CourseID:  courseID,
		QuizScore: score,
	}

	return s.quizRepo.Insert(ctx, quiz)
}

// RecordEngagement bumps the pair's time counter by one. The increment is a
// single atomic upsert at the store so concurrent pings cannot lose updates.
func (s *Service) RecordEngagement(ctx context.Context, userID, courseID int) error {
	if !domain.ValidCourseID(courseID) {
		return ErrUnknownCourse
	}

	_, err := s.engagementRepo.Increment(ctx, userID, courseID)
	return err
}
