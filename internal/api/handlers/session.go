package handlers

import (
	"net/http"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
)

// sessionToken is the bearer token of the request's session, or "" for guests.
func sessionToken(r *http.Request) string {
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		return session.Token
	}
	return ""
}
