package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/upskill-labs/upskill-api/internal/domain"
	"github.com/upskill-labs/upskill-api/internal/usecases/organizing"
	"github.com/upskill-labs/upskill-api/pkg/apiErrors"
)

type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateTeamRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DepartmentID int    `json:"department_id"`
}

func ListDepartments(service organizing.Organizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		departments, err := service.ListDepartments(r.Context())
		if err != nil {
			logrus.WithError(err).Error("error listing departments")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "error listing departments", nil)
			return
		}

		if departments == nil {
			departments = []*domain.Department{}
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(w, departments, "departments")
	}
}

func CreateDepartment(service organizing.Organizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateDepartmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if req.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "name is required", nil)
			return
		}

		department, err := service.CreateDepartment(r.Context(), req.Name, req.Description)
		if err != nil {
			handleOrganizingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		encodeJSON(w, department, "department")
	}
}

func ListTeams(service organizing.Organizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
		departmentID, err := strconv.Atoi(idStr)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid department id", nil)
			return
		}

		teams, err := service.ListTeamsByDepartment(r.Context(), departmentID)
		if err != nil {
			handleOrganizingError(w, err)
			return
		}

		if teams == nil {
			teams = []*domain.Team{}
		}

		w.Header().Set("Content-Type", "application/json")
		encodeJSON(w, teams, "teams")
	}
}

func CreateTeam(service organizing.Organizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTeamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if req.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "name is required", nil)
			return
		}

		team, err := service.CreateTeam(r.Context(), req.Name, req.Description, req.DepartmentID)
		if err != nil {
			handleOrganizingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		encodeJSON(w, team, "team")
	}
}

func handleOrganizingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, organizing.ErrDuplicateName):
		apiErrors.WriteError(w, apiErrors.ErrDuplicateName, err.Error(), nil)

	case errors.Is(err, organizing.ErrDepartmentNotFound):
		apiErrors.WriteError(w, apiErrors.ErrDepartmentNotFound, err.Error(), nil)

	default:
		logrus.WithError(err).Error("organizing operation failed")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "operation failed", nil)
	}
}
