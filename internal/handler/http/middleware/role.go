package middleware

import (
	"net/http"
	"slices"

	"github.com/cmlabs-hris/bench-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bench-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/bench-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// RequireRole lets the request through when the UserRole claim is one of roles.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrRoleClaimMissing)
				return
			}

			roleStr, ok := claims[jwt.RoleClaim].(string)
			if !ok || roleStr == "" {
				response.HandleError(w, user.ErrRoleClaimMissing)
				return
			}

			if !slices.Contains(roles, user.Role(roleStr)) {
				response.HandleError(w, user.ErrRoleAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RoleFromContext returns the caller's role as carried by the verified token.
func RoleFromContext(r *http.Request) (user.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", user.ErrRoleClaimMissing
	}
	roleStr, ok := claims[jwt.RoleClaim].(string)
	if !ok || roleStr == "" {
		return "", user.ErrRoleClaimMissing
	}
	return user.Role(roleStr), nil
}
