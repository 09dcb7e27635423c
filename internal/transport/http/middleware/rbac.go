package middleware

import (
	"net/http"

	"github.com/jobhive/auth-service/internal/domain"
)

// RequireRole admits only callers whose token role is in the allowed
// set. Must run after Auth.
func RequireRole(writeErr WriteErrFunc, roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				writeErr(w, r, domain.ErrUnauthenticated())
				return
			}
			if _, ok := allowed[id.Role]; !ok {
				writeErr(w, r, domain.ErrUnauthorized())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
