package middleware

import (
	"net/http"

	"github.com/mcoot/restadmin/internal/api/apierr"
	"github.com/mcoot/restadmin/internal/services/auth"
)

// Auth creates the bearer token gate. Requests that fail it never reach
// the wrapped handler.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authService.ValidateHeader(r.Header.Get("Authorization")); err != nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
