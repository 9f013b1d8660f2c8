package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/upskill-labs/upskill-api/infrastructure/mailer"
	"github.com/upskill-labs/upskill-api/infrastructure/repository"
	"github.com/upskill-labs/upskill-api/internal/config"
	"github.com/upskill-labs/upskill-api/internal/usecases/analyzing"
)

// DigestService mails a plain-text rendering of the dashboard to every
// administrator on a cron schedule. It reuses the same on-demand aggregation
// as the dashboard endpoint; nothing is cached between runs.
type DigestService struct {
	scheduler       *gocron.Scheduler
	cfg             config.Digest
	analyzer        analyzing.Analyzer
	userRepo        repository.UserRepository
	mail            mailer.Mailer
	running         bool
	mutex           sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
}

func NewDigestService(
	analyzer analyzing.Analyzer,
	userRepo repository.UserRepository,
	mail mailer.Mailer,
	appConfig *config.Config,
) *DigestService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.Digest.CronSchedule,
		"enabled":       appConfig.Digest.Enabled,
	}).Info("dashboard digest scheduler configured")

	return &DigestService{
		scheduler: scheduler,
		cfg:       appConfig.Digest,
		analyzer:  analyzer,
		userRepo:  userRepo,
		mail:      mail,
	}
}

func (s *DigestService) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		logrus.Info("dashboard digest disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.cfg.CronSchedule).Info("starting dashboard digest scheduler")

	_, err := s.scheduler.Cron(s.cfg.CronSchedule).Do(func() {
		s.RunDigest(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling dashboard digest: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping dashboard digest scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// RunDigest computes the dashboard and mails it to every administrator.
// Overlapping runs are skipped.
func (s *DigestService) RunDigest(ctx context.Context) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Info("dashboard digest already running, skipping")
		return
	}
	s.running = true
	s.lastStartedAt = time.Now()
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.running = false
		s.lastCompletedAt = time.Now()
		s.mutex.Unlock()
	}()

	dashboard, err := s.analyzer.Dashboard(ctx)
	if err != nil {
		logrus.WithError(err).Error("dashboard digest: aggregation failed")
		return
	}

	admins, err := s.userRepo.ListAdminEmails(ctx)
	if err != nil {
		logrus.WithError(err).Error("dashboard digest: could not list administrators")
		return
	}

	if len(admins) == 0 {
		logrus.Warn("dashboard digest: no administrators to notify")
		return
	}

	subject := fmt.Sprintf("Learning dashboard digest %s", time.Now().Format("2006-01-02"))

	var body strings.Builder
	fmt.Fprintf(&body, "Employees: %d\n", dashboard.TotalEmployees)
	fmt.Fprintf(&body, "Active courses: %d\n", dashboard.ActiveCourses)
	fmt.Fprintf(&body, "Employees with a completed course: %d\n", dashboard.CompletedEmployeesCount)
	fmt.Fprintf(&body, "Average engagement: %.2f\n\n", dashboard.AvgEngagement)
	fmt.Fprintf(&body, "Engagement by weekday: %s\n", dashboard.DayEngagement)
	fmt.Fprintf(&body, "Completions by month: %s\n", dashboard.MonthlyCompletion)

	for _, email := range admins {
		s.mail.Send(email, subject, body.String())
	}

	logrus.WithField("recipients", len(admins)).Info("dashboard digest sent")
}

// Status reports whether a digest run is in flight and when the last one
// started/completed.
func (s *DigestService) Status() (running bool, lastStartedAt, lastCompletedAt time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.running, s.lastStartedAt, s.lastCompletedAt
}
