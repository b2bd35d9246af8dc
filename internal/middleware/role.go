package middleware

import (
	"net/http"

	"github.com/hlstech/website/internal/model"
)

// RequireRole returns middleware that allows only admins with the given role.
// Must run after Authenticate. Pure comparison, no store access.
func RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin := AdminFromContext(r.Context())
			if admin == nil || admin.Role != role {
				writeAuthError(w, http.StatusForbidden, "Access denied. Super admin only.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin allows only super-admin users.
func RequireSuperAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleSuperAdmin)
}
