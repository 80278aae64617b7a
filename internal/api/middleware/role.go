package middleware

import (
	"net/http"

	"github.com/The-Charles-Factor/pos22/internal/errors"
	service "github.com/The-Charles-Factor/pos22/internal/services"
	"github.com/The-Charles-Factor/pos22/internal/utils/response"
)

// RequireRole rejects authenticated requests whose role ranks below the
// required one. It must run after Authenticate.
func RequireRole(required string, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		if !service.HasRole(claims.Role, required) {
			LoggerFromContext(r.Context()).Warn("Insufficient role for request")
			response.Error(w, errors.ForbiddenError("Insufficient permissions"))

			return
		}

		next.ServeHTTP(w, r)
	}
}
