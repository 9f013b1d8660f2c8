package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/upskill-labs/upskill-api/internal/domain"
	"github.com/upskill-labs/upskill-api/internal/usecases/discussing"
	"github.com/upskill-labs/upskill-api/pkg/apiErrors"
	"github.com/upskill-labs/upskill-api/pkg/middleware"
)

type AddMessageRequest struct {
	Message string `json:"message"`
}

func ListDiscussions(service discussing.Discusser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, ok := courseIDFromPath(w, r)
		if !ok {
			return
		}

		discussions, err := service.ListByCourse(r.Context(), courseID)
		if err != nil {
			logrus.WithError(err).Error("error listing discussions")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "error listing discussions", nil)
			return
		}

		if discussions == nil {
			discussions = []*domain.Discussion{}
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(w, discussions, "discussions")
	}
}

func AddDiscussionMessage(service discussing.Discusser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "not authenticated", nil)
			return
		}

		courseID, ok := courseIDFromPath(w, r)
		if !ok {
			return
		}

		var req AddMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		discussion, err := service.AddMessage(r.Context(), userClaims.UserID, courseID, req.Message)
		if err != nil {
			if errors.Is(err, discussing.ErrEmptyMessage) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
				return
			}
			logrus.WithError(err).Error("error adding discussion message")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "error adding message", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		encodeJSON(w, discussion, "discussion")
	}
}

func courseIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	courseID, err := strconv.Atoi(idStr)
	if err != nil || !domain.ValidCourseID(courseID) {
		apiErrors.WriteError(w, apiErrors.ErrUnknownCourse, "course id is outside the catalog", nil)
		return 0, false
	}
	return courseID, true
}
