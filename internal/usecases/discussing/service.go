package discussing

import (
	"context"

	"github.com/pkg/errors"
	"github.com/upskill-labs/upskill-api/infrastructure/repository"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

var ErrEmptyMessage = errors.New("message must not be empty")

// Discusser manages the per-course discussion threads.
type Discusser interface {
	ListByCourse(ctx context.Context, courseID int) ([]*domain.Discussion, error)
	AddMessage(ctx context.Context, userID, courseID int, message string) (*domain.Discussion, error)
}

type Service struct {
	discussionRepo repository.DiscussionRepository
}

func NewService(discussionRepo repository.DiscussionRepository) Discusser {
	return &Service{
		discussionRepo: discussionRepo,
	}
}

func (s *Service) ListByCourse(ctx context.Context, courseID int) ([]*domain.Discussion, error) {
	return s.discussionRepo.ListByCourse(ctx, courseID)
}

func (s *Service) AddMessage(ctx context.Context, userID, courseID int, message string) (*domain.Discussion, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	return s.discussionRepo.Insert(ctx, &domain.Discussion{
		UserID:   userID,
		CourseID: courseID,
		Message:  message,
	})
}
