package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/customer-hub/application/user"
	utilsContext "github.com/muhammadheryan/customer-hub/utils/context"
)

// AuthMiddleware returns a middleware that resolves the bearer credential into
// an Identity using UserApp and attaches it to the request context.
// Public endpoints (like /login, /register, /swagger/) pass through untouched.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public paths
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := userApp.VerifyToken(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, err)
				return
			}

			// Embed identity into context for the downstream guards
			ctx := utilsContext.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") || strings.HasPrefix(path, "/uploads/") {
		return true
	}
	if path == "/login" || path == "/register" {
		return true
	}

	return false
}
