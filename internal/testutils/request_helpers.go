package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
)

// TestSession is the shopper used by handler tests.
func TestSession() *models.Session {
	return &models.Session{
		User:  &models.User{ID: float64(42), Name: "Test User", Email: "test@example.com"},
		Token: "test-token",
	}
}

func CreateTestRequestWithSession(method, target string, body io.Reader, session *models.Session, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutSession(method, target, body, pathParams)

	return req.WithContext(middleware.WithSession(req.Context(), session))
}

func CreateTestRequestWithoutSession(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}

// ResponseCookie returns the named Set-Cookie from a recorded response.
func ResponseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
