package handler

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/upskill-labs/upskill-api/internal/usecases/analyzing"
	"github.com/upskill-labs/upskill-api/pkg/apiErrors"
)

// GetDashboard serves the composite analytics payload. Every figure is
// computed on demand from the store; a failure in any aggregate fails the
// whole request rather than returning a partial payload.
func GetDashboard(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := service.Dashboard(r.Context())
		if err != nil {
			if errors.Is(err, context.Canceled) {
				// Client went away, nothing to answer.
				return
			}
			logrus.WithError(err).Error("error building dashboard")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "error building dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(w, dashboard, "dashboard")
	}
}

// GetAverageRatings serves one row per catalog course, zero-filled for
// courses without feedback.
func GetAverageRatings(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ratings, err := service.AverageRatings(r.Context())
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logrus.WithError(err).Error("error computing average ratings")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "error computing average ratings", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(w, ratings, "ratings")
	}
}
