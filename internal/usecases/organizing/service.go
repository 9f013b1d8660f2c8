package organizing

import (
	"context"

	"github.com/upskill-labs/upskill-api/infrastructure/repository"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

// Organizer manages the department/team reference entities.
type Organizer interface {
	ListDepartments(ctx context.Context) ([]*domain.Department, error)
	ListTeamsByDepartment(ctx context.Context, departmentID int) ([]*domain.Team, error)
	CreateDepartment(ctx context.Context, name, description string) (*domain.Department, error)
	CreateTeam(ctx context.Context, name, description string, departmentID int) (*domain.Team, error)
}

type Service struct {
	departmentRepo repository.DepartmentRepository
	teamRepo       repository.TeamRepository
}

func NewService(
	departmentRepo repository.DepartmentRepository,
	teamRepo repository.TeamRepository,
) Organizer {
	return &Service{
		departmentRepo: departmentRepo,
		teamRepo:       teamRepo,
	}
}

func (s *Service) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	return s.departmentRepo.List(ctx)
}

func (s *Service) ListTeamsByDepartment(ctx context.Context, departmentID int) ([]*domain.Team, error) {
	return s.teamRepo.ListByDepartment(ctx, departmentID)
}

func (s *Service) CreateDepartment(ctx context.Context, name, description string) (*domain.Department, error) {
	department, err := s.departmentRepo.Insert(ctx, &domain.Department{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDuplicateName
	}

	return department, nil
}

// CreateTeam checks the department exists before inserting; the team name
// shares the duplicate handling of departments.
func (s *Service) CreateTeam(ctx context.Context, name, description string, departmentID int) (*domain.Team, error) {
	department, err := s.departmentRepo.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	team, err := s.teamRepo.Insert(ctx, &domain.Team{
		Name:         name,
		Description:  description,
		DepartmentID: departmentID,
	})
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrDuplicateName
	}

	return team, nil
}
