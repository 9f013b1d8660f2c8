package analyzing

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/upskill-labs/upskill-api/infrastructure/repository"
	"github.com/upskill-labs/upskill-api/internal/domain"
	"github.com/upskill-labs/upskill-api/pkg/log"
	"github.com/upskill-labs/upskill-api/pkg/utils"
)

// Analyzer reduces the raw event rows (enrollments, engagement pings,
// feedback) into the aggregate payloads the admin dashboard consumes. It
// only reads the store; given an unchanged snapshot the same request
// produces the same payload.
type Analyzer interface {
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
	AverageRatings(ctx context.Context) ([]domain.CourseRating, error)
}

type Service struct {
	analyticsRepo  repository.AnalyticsRepository
	departmentRepo repository.DepartmentRepository
	teamRepo       repository.TeamRepository
}

func NewService(
	analyticsRepo repository.AnalyticsRepository,
	departmentRepo repository.DepartmentRepository,
	teamRepo repository.TeamRepository,
) Analyzer {
	return &Service{
		analyticsRepo:  analyticsRepo,
		departmentRepo: departmentRepo,
		teamRepo:       teamRepo,
	}
}

// Dashboard assembles the composite dashboard payload. The sub-computations
// are independent read queries, so they run concurrently. A failure in any
// of them fails the whole request; no partial payload ever goes out.
func (s *Service) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	dashboard := &domain.Dashboard{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.analyticsRepo.CountEmployees(ctx)
		dashboard.TotalEmployees = count
		return err
	})

	g.Go(func() error {
		count, err := s.analyticsRepo.CountActiveCourses(ctx)
		dashboard.ActiveCourses = count
		return err
	})

	g.Go(func() error {
		count, err := s.analyticsRepo.CountCompletedEmployees(ctx)
		dashboard.CompletedEmployeesCount = count
		return err
	})

	g.Go(func() error {
		avg, err := s.analyticsRepo.AverageEngagement(ctx)
		dashboard.AvgEngagement = utils.RoundWithTwoDecimalPlace(avg)
		return err
	})

	g.Go(func() error {
		departments, err := s.departmentsWithTeams(ctx)
		dashboard.Departments = departments
		return err
	})

	g.Go(func() error {
		histogram, err := s.weekdayEngagementHistogram(ctx)
		dashboard.DayEngagement = histogram
		return err
	})

	g.Go(func() error {
		histogram, err := s.monthlyCompletionHistogram(ctx)
		dashboard.MonthlyCompletion = histogram
		return err
	})

	g.Go(func() error {
		avgTime, err := s.averageTimePerCourse(ctx)
		dashboard.AvgTimePerCourse = avgTime
		return err
	})

	g.Go(func() error {
		rows, err := s.analyticsRepo.EmployeeCourseRows(ctx)
		if rows == nil {
			rows = make([]domain.EmployeeCourseRow, 0)
		}
		dashboard.EmployeeCourses = rows
		return err
	})

	if err := g.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).Error("dashboard: aggregation failed")
		return nil, err
	}

	return dashboard, nil
}

// AverageRatings is the stand-alone variant of the per-course rating
// aggregate, with the same gap-fill contract as the dashboard: all 12
// courses are always present, ascending by id, 0 when unrated.
func (s *Service) AverageRatings(ctx context.Context) ([]domain.CourseRating, error) {
	sparse, err := s.analyticsRepo.AverageRatingByCourse(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("average-ratings: aggregation failed")
		return nil, err
	}

	byCourse := fillCourseAverages(sparse)

	ratings := make([]domain.CourseRating, 0, domain.CourseCount)
	for courseID := domain.FirstCourseID; courseID < domain.FirstCourseID+domain.CourseCount; courseID++ {
		ratings = append(ratings, domain.CourseRating{
			Course:        courseID,
			AverageRating: utils.RoundWithTwoDecimalPlace(byCourse[courseID]),
		})
	}

	return ratings, nil
}

// departmentsWithTeams attaches each department's teams; a department with
// no teams keeps an empty list rather than disappearing.
func (s *Service) departmentsWithTeams(ctx context.Context) ([]domain.DepartmentWithTeams, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	teamsByDepartment := make(map[int][]domain.TeamRef)
	for _, team := range teams {
		teamsByDepartment[team.DepartmentID] = append(teamsByDepartment[team.DepartmentID], domain.TeamRef{
			ID:   team.ID,
			Name: team.Name,
		})
	}

	result := make([]domain.DepartmentWithTeams, 0, len(departments))
	for _, department := range departments {
		entry := domain.DepartmentWithTeams{
			ID:    department.ID,
			Name:  department.Name,
			Teams: teamsByDepartment[department.ID],
		}
		if entry.Teams == nil {
			entry.Teams = make([]domain.TeamRef, 0)
		}
		result = append(result, entry)
	}

	return result, nil
}

// weekdayEngagementHistogram buckets engagements by the weekday of their
// first ping, in fixed Sun..Sat order with zeros for silent days.
func (s *Service) weekdayEngagementHistogram(ctx context.Context) (string, error) {
	sparse, err := s.analyticsRepo.WeekdayEngagementCounts(ctx)
	if err != nil {
		return "", err
	}

	counts := fillBuckets(sparse, len(weekdayLabels))
	return formatHistogram(weekdayLabels, counts), nil
}

func (s *Service) monthlyCompletionHistogram(ctx context.Context) (string, error) {
	sparse, err := s.analyticsRepo.MonthlyCompletionCounts(ctx)
	if err != nil {
		return "", err
	}

	counts := fillBuckets(sparse, len(monthLabels))
	return formatHistogram(monthLabels, counts), nil
}

func (s *Service) averageTimePerCourse(ctx context.Context) ([]domain.CourseTime, error) {
	sparse, err := s.analyticsRepo.AverageTimeByCourse(ctx)
	if err != nil {
		return nil, err
	}

	byCourse := fillCourseAverages(sparse)

	result := make([]domain.CourseTime, 0, domain.CourseCount)
	for courseID := domain.FirstCourseID; courseID < domain.FirstCourseID+domain.CourseCount; courseID++ {
		result = append(result, domain.CourseTime{
			ID:      courseID,
			AvgTime: utils.RoundWithTwoDecimalPlace(byCourse[courseID]),
		})
	}

	return result, nil
}
