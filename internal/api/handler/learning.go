package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/upskill-labs/upskill-api/internal/domain"
	"github.com/upskill-labs/upskill-api/internal/usecases/learning"
	"github.com/upskill-labs/upskill-api/pkg/apiErrors"
	"github.com/upskill-labs/upskill-api/pkg/middleware"
)

// The user id on every write comes from the token claims, never from the
// request body. Clients cannot write on behalf of someone else.

type EnrollRequest struct {
	CourseID int `json:"course_id"`
}

type UpdateProgressRequest struct {
	CourseID int `json:"course_id"`
	Progress int `json:"progress"`
}

type FeedbackRequest struct {
	CourseID int    `json:"course_id"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

type QuizScoreRequest struct {
	CourseID int `json:"course_id"`
	Score    int `json:"score"`
}

type EngagementRequest struct {
	CourseID int `json:"course_id"`
}

func Enroll(service learning.Learner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "not authenticated", nil)
			return
		}

		var req EnrollRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		enrollment, err := service.Enroll(r.Context(), userClaims.UserID, req.CourseID)
		if err != nil {
			handleLearningError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		encodeJSON(w, enrollment, "enrollment")
	}
}

func ListEnrollments(service learning.Learner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "not authenticated", nil)
			return
		}

		enrollments, err := service.ListEnrollments(r.Context(), userClaims.UserID)
		if err != nil {
			logrus.WithError(err).Error("error listing enrollments")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "error listing enrollments", nil)
			return
		}

		if enrollments == nil {
			enrollments = []*domain.Enrollment{}
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(w, enrollments, "enrollments")
	}
}

func UpdateProgress(service learning.Learner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "not authenticated", nil)
			return
		}

		var req UpdateProgressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		enrollment, err := service.UpdateProgress(r.Context(), userClaims.UserID, req.CourseID, req.Progress)
		if err != nil {
			handleLearningError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(w, enrollment, "enrollment")
	}
}

func SubmitFeedback(service learning.Learner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "not authenticated", nil)
			return
		}

		var req FeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		feedback, err := service.SubmitFeedback(r.Context(), userClaims.UserID, req.CourseID, req.Rating, req.Feedback)
		if err != nil {
			handleLearningError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		encodeJSON(w, feedback, "feedback")
	}
}

func SubmitQuizScore(service learning.Learner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "not authenticated", nil)
			return
		}

		var req QuizScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		quiz, err := service.SubmitQuizScore(r.Context(), userClaims.UserID, req.CourseID, req.Score)
		if err != nil {
			handleLearningError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		encodeJSON(w, quiz, "quiz score")
	}
}

// RecordEngagement adds one unit of time for the (user, course) pair. The
// increment is a single atomic upsert, so concurrent pings never lose
// updates.
func RecordEngagement(service learning.Learner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "not authenticated", nil)
			return
		}

		var req EngagementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if err := service.RecordEngagement(r.Context(), userClaims.UserID, req.CourseID); err != nil {
			handleLearningError(w, err)
			return
		}

		writeMessage(w, http.StatusOK, "engagement recorded")
	}
}

func handleLearningError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, learning.ErrUnknownCourse):
		apiErrors.WriteError(w, apiErrors.ErrUnknownCourse, err.Error(), nil)

	case errors.Is(err, learning.ErrAlreadyEnrolled):
		apiErrors.WriteError(w, apiErrors.ErrAlreadyEnrolled, err.Error(), nil)

	case errors.Is(err, learning.ErrEnrollmentNotFound):
		apiErrors.WriteError(w, apiErrors.ErrEnrollmentNotFound, err.Error(), nil)

	case errors.Is(err, learning.ErrInvalidProgress),
		errors.Is(err, learning.ErrInvalidRating),
		errors.Is(err, learning.ErrInvalidScore):
		apiErrors.WriteError(w, apiErrors.ErrOutOfRange, err.Error(), nil)

	default:
		logrus.WithError(err).Error("learning operation failed")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "operation failed", nil)
	}
}
