package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
)

// RequireRole lets through only callers authenticated with role.
func RequireRole(role user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok || id.Role != role {
				response.HandleError(w, user.ErrRoleAccessRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
