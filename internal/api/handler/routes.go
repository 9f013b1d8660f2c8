package handler

import (
	"net/http"

	"github.com/upskill-labs/upskill-api/internal/api/handler/router"
	"github.com/upskill-labs/upskill-api/internal/usecases/analyzing"
	"github.com/upskill-labs/upskill-api/internal/usecases/authenticating"
	"github.com/upskill-labs/upskill-api/internal/usecases/discussing"
	"github.com/upskill-labs/upskill-api/internal/usecases/learning"
	"github.com/upskill-labs/upskill-api/internal/usecases/organizing"
	"github.com/upskill-labs/upskill-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/register",
			Method:      http.MethodPost,
			Handler:     Register(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:    "/v1/forgot-password",
			Method:  http.MethodPost,
			Handler: ForgotPassword(service),
		},
		{
			Path:    "/v1/reset-password",
			Method:  http.MethodPut,
			Handler: ResetPassword(service),
		},
		{
			Path:        "/v1/logout",
			Method:      http.MethodPost,
			Handler:     Logout(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Analytics(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analytics/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/courses/average-ratings",
			Method:      http.MethodGet,
			Handler:     GetAverageRatings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Learning(service learning.Learner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/enrollments",
			Method:      http.MethodPost,
			Handler:     Enroll(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/enrollments",
			Method:      http.MethodGet,
			Handler:     ListEnrollments(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/enrollments/progress",
			Method:      http.MethodPatch,
			Handler:     UpdateProgress(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/feedback",
			Method:      http.MethodPost,
			Handler:     SubmitFeedback(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/quiz/score",
			Method:      http.MethodPost,
			Handler:     SubmitQuizScore(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/engagement",
			Method:      http.MethodPost,
			Handler:     RecordEngagement(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Organizing(service organizing.Organizer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/departments",
			Method:      http.MethodGet,
			Handler:     ListDepartments(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/departments",
			Method:      http.MethodPost,
			Handler:     CreateDepartment(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/departments/:id/teams",
			Method:      http.MethodGet,
			Handler:     ListTeams(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/teams",
			Method:      http.MethodPost,
			Handler:     CreateTeam(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Discussions(service discussing.Discusser) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/courses/:id/discussions",
			Method:      http.MethodGet,
			Handler:     ListDiscussions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/courses/:id/discussions",
			Method:      http.MethodPost,
			Handler:     AddDiscussionMessage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
