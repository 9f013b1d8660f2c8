package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned to clients.
const (
	// Authentication errors
	ErrInvalidCredentials    = "AUTH_001"
	ErrUserNotFound          = "AUTH_002"
	ErrInvalidToken          = "AUTH_003"
	ErrExpiredToken          = "AUTH_004"
	ErrInsufficientPrivilege = "AUTH_005"
	ErrUserAlreadyExists     = "AUTH_006"

	// Validation errors
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"
	ErrOutOfRange          = "VAL_004"

	// Learning errors
	ErrAlreadyEnrolled    = "LRN_001"
	ErrEnrollmentNotFound = "LRN_002"
	ErrUnknownCourse      = "LRN_003"

	// Organization errors
	ErrDuplicateName       = "ORG_001"
	ErrDepartmentNotFound  = "ORG_002"

	// Server errors
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
	ErrExternalService   = "SRV_003"
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrOutOfRange:            http.StatusBadRequest,
	ErrAlreadyEnrolled:       http.StatusBadRequest,
	ErrEnrollmentNotFound:    http.StatusNotFound,
	ErrUnknownCourse:         http.StatusBadRequest,
	ErrDuplicateName:         http.StatusConflict,
	ErrDepartmentNotFound:    http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
}

// APIError is the standard error envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes the standardized error to the HTTP response.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
