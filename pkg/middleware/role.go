package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/upskill-labs/upskill-api/internal/domain"
	"github.com/upskill-labs/upskill-api/pkg/apiErrors"
)

// RoleMiddleware restricts access to the listed user types.
func RoleMiddleware(allowedTypes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)

			if !ok {
				logrus.Warning("access attempt without authentication")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User is not authenticated", nil)
				return
			}

			isAllowed := false
			for _, userType := range allowedTypes {
				if userClaims.UserType == userType {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("access denied for user ID=%d, type=%s", userClaims.UserID, userClaims.UserType)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You do not have permission to access this resource", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly lets only administrators through. Aggregated analytics cover the
// whole company, so regular employees never see them.
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.UserTypeAdmin})
}

// AllRoles lets any authenticated user through.
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.UserTypeAdmin, domain.UserTypeEmployee})
}
