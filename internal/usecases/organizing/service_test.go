package organizing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/upskill-labs/upskill-api/infrastructure/repository/mocks"
	"github.com/upskill-labs/upskill-api/internal/domain"
)

func TestService_CreateDepartment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	departmentRepo := mocks.NewMockDepartmentRepository(ctrl)
	teamRepo := mocks.NewMockTeamRepository(ctrl)
	service := &Service{departmentRepo: departmentRepo, teamRepo: teamRepo}

	t.Run("creates department", func(t *testing.T) {
		departmentRepo.EXPECT().
			Insert(gomock.Any(), &domain.Department{Name: "Engineering", Description: "Product engineering"}).
			Return(&domain.Department{ID: 1, Name: "Engineering", Description: "Product engineering"}, nil)

		department, err := service.CreateDepartment(context.Background(), "Engineering", "Product engineering")

		require.NoError(t, err)
		assert.Equal(t, 1, department.ID)
	})

	t.Run("duplicate name maps the silent insert to a conflict", func(t *testing.T) {
		departmentRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil, nil)

		department, err := service.CreateDepartment(context.Background(), "Engineering", "")

		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.Nil(t, department)
	})
}

func TestService_CreateTeam(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	departmentRepo := mocks.NewMockDepartmentRepository(ctrl)
	teamRepo := mocks.NewMockTeamRepository(ctrl)
	service := &Service{departmentRepo: departmentRepo, teamRepo: teamRepo}

	t.Run("creates team under an existing department", func(t *testing.T) {
		departmentRepo.EXPECT().
			GetByID(gomock.Any(), 1).
			Return(&domain.Department{ID: 1, Name: "Engineering"}, nil)
		teamRepo.EXPECT().
			Insert(gomock.Any(), &domain.Team{Name: "Platform", DepartmentID: 1}).
			Return(&domain.Team{ID: 10, Name: "Platform", DepartmentID: 1}, nil)

		team, err := service.CreateTeam(context.Background(), "Platform", "", 1)

		require.NoError(t, err)
		assert.Equal(t, 10, team.ID)
	})

	t.Run("missing department blocks the insert", func(t *testing.T) {
		departmentRepo.EXPECT().
			GetByID(gomock.Any(), 42).
			Return(nil, nil)

		team, err := service.CreateTeam(context.Background(), "Platform", "", 42)

		assert.ErrorIs(t, err, ErrDepartmentNotFound)
		assert.Nil(t, team)
	})

	t.Run("duplicate team name", func(t *testing.T) {
		departmentRepo.EXPECT().
			GetByID(gomock.Any(), 1).
			Return(&domain.Department{ID: 1, Name: "Engineering"}, nil)
		teamRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil, nil)

		team, err := service.CreateTeam(context.Background(), "Platform", "", 1)

		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.Nil(t, team)
	})
}
