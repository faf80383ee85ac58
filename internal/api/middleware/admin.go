package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	appErrors "github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
)

const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken guards operator endpoints with a shared token sent in the
// X-Admin-Token header. With no token configured every request is refused.
func RequireAdminToken(token string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		given := r.Header.Get(AdminTokenHeader)

		if token == "" || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			LoggerFromContext(r.Context()).Warn("Rejected admin request", slog.String("path", r.URL.Path))
			response.Error(w, appErrors.UnauthorizedError("Admin token required"))
			return
		}

		next(w, r)
	}
}
