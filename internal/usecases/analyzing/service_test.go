package analyzing

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

func newDashboardService(ctrl *gomock.Controller) (*Service, *mocks.MockAnalyticsRepository, *mocks.MockDepartmentRepository, *mocks.MockTeamRepository) {
	analyticsRepo := mocks.NewMockAnalyticsRepository(ctrl)
	departmentRepo := mocks.NewMockDepartmentRepository(ctrl)
	teamRepo := mocks.NewMockTeamRepository(ctrl)

	service := &Service{
		analyticsRepo:  analyticsRepo,
		departmentRepo: departmentRepo,
		teamRepo:       teamRepo,
	}

	return service, analyticsRepo, departmentRepo, teamRepo
}

func TestService_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, analyticsRepo, departmentRepo, teamRepo := newDashboardService(ctrl)

	rating := 4

	analyticsRepo.EXPECT().CountEmployees(gomock.Any()).Return(25, nil)
	analyticsRepo.EXPECT().CountActiveCourses(gomock.Any()).Return(8, nil)
	analyticsRepo.EXPECT().CountCompletedEmployees(gomock.Any()).Return(3, nil)
	analyticsRepo.EXPECT().AverageEngagement(gomock.Any()).Return(7.856, nil)
	analyticsRepo.EXPECT().WeekdayEngagementCounts(gomock.Any()).Return([]domain.BucketCount{
		{Key: 2, Count: 5},
		{Key: 6, Count: 1},
	}, nil)
	analyticsRepo.EXPECT().MonthlyCompletionCounts(gomock.Any()).Return([]domain.BucketCount{
		{Key: 1, Count: 2},
		{Key: 12, Count: 4},
	}, nil)
	analyticsRepo.EXPECT().AverageTimeByCourse(gomock.Any()).Return([]domain.CourseAverage{
		{CourseID: 2, Average: 3.456},
	}, nil)
	analyticsRepo.EXPECT().EmployeeCourseRows(gomock.Any()).Return([]domain.EmployeeCourseRow{
		{FirstName: "Bruno", LastName: "Ferraz", Course: intPtr(2), Rating: &rating},
	}, nil)

	departmentRepo.EXPECT().List(gomock.Any()).Return([]*domain.Department{
		{ID: 1, Name: "Engineering"},
		{ID: 2, Name: "Sales"},
	}, nil)
	teamRepo.EXPECT().List(gomock.Any()).Return([]*domain.Team{
		{ID: 10, Name: "Platform", DepartmentID: 1},
	}, nil)

	dashboard, err := service.Dashboard(context.Background())

	require.NoError(t, err)
	require.NotNil(t, dashboard)

	assert.Equal(t, 25, dashboard.TotalEmployees)
	assert.Equal(t, 8, dashboard.ActiveCourses)
	assert.Equal(t, 3, dashboard.CompletedEmployeesCount)
	assert.Equal(t, 7.86, dashboard.AvgEngagement)

	// Histograms always span the full dimension in fixed order.
	assert.Equal(t, "Sun: 0, Mon: 5, Tue: 0, Wed: 0, Thu: 0, Fri: 1, Sat: 0", dashboard.DayEngagement)
	assert.Equal(t, "Jan: 2, Feb: 0, Mar: 0, Apr: 0, May: 0, Jun: 0, Jul: 0, Aug: 0, Sep: 0, Oct: 0, Nov: 0, Dec: 0", dashboard.MonthlyCompletion)

	require.Len(t, dashboard.AvgTimePerCourse, domain.CourseCount)
	assert.Equal(t, 1, dashboard.AvgTimePerCourse[0].ID)
	assert.Equal(t, 0.0, dashboard.AvgTimePerCourse[0].AvgTime)
	assert.Equal(t, 2, dashboard.AvgTimePerCourse[1].ID)
	assert.Equal(t, 3.46, dashboard.AvgTimePerCourse[1].AvgTime)
	assert.Equal(t, 12, dashboard.AvgTimePerCourse[11].ID)

	require.Len(t, dashboard.Departments, 2)
	assert.Equal(t, "Engineering", dashboard.Departments[0].Name)
	require.Len(t, dashboard.Departments[0].Teams, 1)
	assert.Equal(t, "Platform", dashboard.Departments[0].Teams[0].Name)
	// A department without teams keeps an empty list.
	assert.NotNil(t, dashboard.Departments[1].Teams)
	assert.Empty(t, dashboard.Departments[1].Teams)

	require.Len(t, dashboard.EmployeeCourses, 1)
	assert.Equal(t, "Bruno", dashboard.EmployeeCourses[0].FirstName)
}

func TestService_Dashboard_EmptyStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, analyticsRepo, departmentRepo, teamRepo := newDashboardService(ctrl)

	analyticsRepo.EXPECT().CountEmployees(gomock.Any()).Return(0, nil)
	analyticsRepo.EXPECT().CountActiveCourses(gomock.Any()).Return(0, nil)
	analyticsRepo.EXPECT().CountCompletedEmployees(gomock.Any()).Return(0, nil)
	analyticsRepo.EXPECT().AverageEngagement(gomock.Any()).Return(0.0, nil)
	analyticsRepo.EXPECT().WeekdayEngagementCounts(gomock.Any()).Return(nil, nil)
	analyticsRepo.EXPECT().MonthlyCompletionCounts(gomock.Any()).Return(nil, nil)
	analyticsRepo.EXPECT().AverageTimeByCourse(gomock.Any()).Return(nil, nil)
	analyticsRepo.EXPECT().EmployeeCourseRows(gomock.Any()).Return(nil, nil)
	departmentRepo.EXPECT().List(gomock.Any()).Return(nil, nil)
	teamRepo.EXPECT().List(gomock.Any()).Return(nil, nil)

	dashboard, err := service.Dashboard(context.Background())

	require.NoError(t, err)
	require.NotNil(t, dashboard)

	assert.Equal(t, 0, dashboard.TotalEmployees)
	assert.Equal(t, 0.0, dashboard.AvgEngagement)

	// Fixed dimensions survive an empty store.
	assert.Equal(t, "Sun: 0, Mon: 0, Tue: 0, Wed: 0, Thu: 0, Fri: 0, Sat: 0", dashboard.DayEngagement)
	assert.Len(t, dashboard.AvgTimePerCourse, domain.CourseCount)

	// Empty collections serialize as [] rather than null.
	assert.NotNil(t, dashboard.EmployeeCourses)
	assert.Empty(t, dashboard.EmployeeCourses)
	assert.NotNil(t, dashboard.Departments)
}

func TestService_Dashboard_AggregateFailureFailsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, analyticsRepo, departmentRepo, teamRepo := newDashboardService(ctrl)

	storeErr := errors.New("connection reset")

	analyticsRepo.EXPECT().CountEmployees(gomock.Any()).Return(0, storeErr)

	// The remaining aggregates race the failure and may or may not run.
	analyticsRepo.EXPECT().CountActiveCourses(gomock.Any()).Return(0, nil).AnyTimes()
	analyticsRepo.EXPECT().CountCompletedEmployees(gomock.Any()).Return(0, nil).AnyTimes()
	analyticsRepo.EXPECT().AverageEngagement(gomock.Any()).Return(0.0, nil).AnyTimes()
	analyticsRepo.EXPECT().WeekdayEngagementCounts(gomock.Any()).Return(nil, nil).AnyTimes()
	analyticsRepo.EXPECT().MonthlyCompletionCounts(gomock.Any()).Return(nil, nil).AnyTimes()
	analyticsRepo.EXPECT().AverageTimeByCourse(gomock.Any()).Return(nil, nil).AnyTimes()
	analyticsRepo.EXPECT().EmployeeCourseRows(gomock.Any()).Return(nil, nil).AnyTimes()
	departmentRepo.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()
	teamRepo.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()

	dashboard, err := service.Dashboard(context.Background())

	assert.Nil(t, dashboard)
	assert.ErrorIs(t, err, storeErr)
}

func TestService_AverageRatings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, analyticsRepo, _, _ := newDashboardService(ctrl)

	analyticsRepo.EXPECT().AverageRatingByCourse(gomock.Any()).Return([]domain.CourseAverage{
		{CourseID: 3, Average: 4.5},
		{CourseID: 7, Average: 2.346},
	}, nil)

	ratings, err := service.AverageRatings(context.Background())

	require.NoError(t, err)
	require.Len(t, ratings, domain.CourseCount)

	for i, rating := range ratings {
		assert.Equal(t, i+1, rating.Course)
	}

	assert.Equal(t, 4.5, ratings[2].AverageRating)
	assert.Equal(t, 2.35, ratings[6].AverageRating)
	assert.Equal(t, 0.0, ratings[0].AverageRating)
	assert.Equal(t, 0.0, ratings[11].AverageRating)
}

func TestService_AverageRatings_NoFeedback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, analyticsRepo, _, _ := newDashboardService(ctrl)

	analyticsRepo.EXPECT().AverageRatingByCourse(gomock.Any()).Return(nil, nil)

	ratings, err := service.AverageRatings(context.Background())

	require.NoError(t, err)
	require.Len(t, ratings, domain.CourseCount)
	for _, rating := range ratings {
		assert.Equal(t, 0.0, rating.AverageRating)
	}
}

func TestService_AverageRatings_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, analyticsRepo, _, _ := newDashboardService(ctrl)

	storeErr := errors.New("timeout")
	analyticsRepo.EXPECT().AverageRatingByCourse(gomock.Any()).Return(nil, storeErr)

	ratings, err := service.AverageRatings(context.Background())

	assert.Nil(t, ratings)
	assert.ErrorIs(t, err, storeErr)
}

func intPtr(v int) *int {
	return &v
}
