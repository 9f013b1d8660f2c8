package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/upskill-labs/upskill-api/infrastructure/database/postgres"
	"github.com/upskill-labs/upskill-api/infrastructure/mailer"
	"github.com/upskill-labs/upskill-api/infrastructure/repository"
	"github.com/upskill-labs/upskill-api/internal/api"
	"github.com/upskill-labs/upskill-api/internal/config"
	"github.com/upskill-labs/upskill-api/internal/scheduler"
	"github.com/upskill-labs/upskill-api/internal/usecases/analyzing"
	"github.com/upskill-labs/upskill-api/internal/usecases/authenticating"
	"github.com/upskill-labs/upskill-api/internal/usecases/discussing"
	"github.com/upskill-labs/upskill-api/internal/usecases/learning"
	"github.com/upskill-labs/upskill-api/internal/usecases/organizing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, falling back to info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	departmentRepo := repository.NewDepartmentRepository(pgConn)
	teamRepo := repository.NewTeamRepository(pgConn)
	enrollmentRepo := repository.NewEnrollmentRepository(pgConn)
	engagementRepo := repository.NewEngagementRepository(pgConn)
	feedbackRepo := repository.NewFeedbackRepository(pgConn)
	quizRepo := repository.NewQuizRepository(pgConn)
	discussionRepo := repository.NewDiscussionRepository(pgConn)
	analyticsRepo := repository.NewAnalyticsRepository(pgConn)

	mail := mailer.NewSendgridMailer(cfg)

	authenticator := authenticating.NewService(userRepo, mail, cfg)
	analyzer := analyzing.NewService(analyticsRepo, departmentRepo, teamRepo)
	learner := learning.NewService(enrollmentRepo, engagementRepo, feedbackRepo, quizRepo)
	organizer := organizing.NewService(departmentRepo, teamRepo)
	discusser := discussing.NewService(discussionRepo)

	digestService := scheduler.NewDigestService(analyzer, userRepo, mail, cfg)
	if err := digestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("error starting dashboard digest scheduler")
	}

	server, err := api.New(
		cfg,
		analyzer,
		learner,
		organizer,
		discusser,
		authenticator,
		digestService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("error connecting to PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("error pinging PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
