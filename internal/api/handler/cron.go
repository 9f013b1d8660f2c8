package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/upskill-labs/upskill-api/internal/scheduler"
	"github.com/upskill-labs/upskill-api/pkg/apiErrors"
)

const CronJobTypeDigest = "digest"

// CronJobServices holds the scheduled jobs exposed for manual runs.
type CronJobServices struct {
	DigestService *scheduler.DigestService
}

// RunCronJob triggers a scheduled job outside its cron window.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type not specified", nil)
			return
		}

		switch cronType {
		case CronJobTypeDigest:
			if services.DigestService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "digest service not available", nil)
				return
			}
			// The request context dies when the handler returns, so the
			// manual run gets its own.
			go services.DigestService.RunDigest(context.Background())

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown cron job type, accepted values: digest", nil)
			return
		}

		logrus.WithField("cron_type", cronType).Info("cron job triggered manually")

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(w, map[string]any{
			"message": "cron job started",
			"type":    cronType,
		}, "cron trigger")
	}
}

// GetCronStatus reports whether each job is running and its last run times.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}

		if services.DigestService != nil {
			running, startedAt, completedAt := services.DigestService.Status()
			status[CronJobTypeDigest] = map[string]any{
				"running":           running,
				"last_started_at":   formatRunTime(startedAt),
				"last_completed_at": formatRunTime(completedAt),
			}
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(w, status, "cron status")
	}
}

func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(time.RFC3339)
}
