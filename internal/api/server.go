package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/upskill-labs/upskill-api/internal/api/handler"
	"github.com/upskill-labs/upskill-api/internal/api/handler/router"
	"github.com/upskill-labs/upskill-api/internal/config"
	"github.com/upskill-labs/upskill-api/internal/scheduler"
	"github.com/upskill-labs/upskill-api/internal/usecases/analyzing"
	"github.com/upskill-labs/upskill-api/internal/usecases/authenticating"
	"github.com/upskill-labs/upskill-api/internal/usecases/discussing"
	"github.com/upskill-labs/upskill-api/internal/usecases/learning"
	"github.com/upskill-labs/upskill-api/internal/usecases/organizing"
	"github.com/upskill-labs/upskill-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	analyzer analyzing.Analyzer,
	learner learning.Learner,
	organizer organizing.Organizer,
	discusser discussing.Discusser,
	authenticator authenticating.Authenticator,
	digestService *scheduler.DigestService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		DigestService: digestService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Analytics(analyzer)...),
		router.WithRoutes(handler.Learning(learner)...),
		router.WithRoutes(handler.Organizing(organizer)...),
		router.WithRoutes(handler.Discussions(discusser)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("error while serving")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("interrupt signal received")
	case <-ctx.Done():
		logrus.Info("application context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("error during server shutdown")
		return err
	}

	logrus.Info("server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("http server stopped")
	return nil
}
