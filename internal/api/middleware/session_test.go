package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/api/middleware"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cookieOpts = middleware.CookieOptions{TTL: 7 * 24 * time.Hour}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()

	claims := &models.TokenClaims{
		UserID: 12,
		Email:  "rahim@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-owned-secret"))
	require.NoError(t, err)

	return token
}

func userCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()

	value, err := middleware.EncodeUser(user)
	require.NoError(t, err)

	return &http.Cookie{Name: middleware.UserCookieName, Value: value}
}

// runExtract passes req through Extract and returns the session seen downstream.
func runExtract(t *testing.T, req *http.Request) (*models.Session, *httptest.ResponseRecorder) {
	t.Helper()

	var seen *models.Session

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = middleware.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	middleware.NewSessionMiddleware(cookieOpts).Extract(next).ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code, "Extract must never reject a request")

	return seen, recorder
}

func clearedCookies(recorder *httptest.ResponseRecorder) map[string]bool {
	cleared := map[string]bool{}
	for _, c := range recorder.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared[c.Name] = true
		}
	}
	return cleared
}

func TestExtract(t *testing.T) {
	user := &models.User{ID: 12.0, Name: "Rahim", Email: "rahim@example.com"}

	t.Run("Guest", func(t *testing.T) {
		session, recorder := runExtract(t, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Nil(t, session)
		assert.Empty(t, recorder.Result().Cookies())
	})

	t.Run("Cookie Session", func(t *testing.T) {
		// Arrange
		token := signedToken(t, time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(userCookie(t, user))
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: token})

		// Act
		session, _ := runExtract(t, req)

		// Assert
		require.NotNil(t, session)
		assert.Equal(t, "Rahim", session.User.Name)
		assert.Equal(t, token, session.Token)
	})

	t.Run("Bearer Header Wins Over Cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(userCookie(t, user))
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: "cookie-token"})

		session, _ := runExtract(t, req)

		require.NotNil(t, session)
		assert.Equal(t, "header-token", session.Token)
	})

	t.Run("Opaque Token Is Accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(userCookie(t, user))
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: "not-a-jwt"})

		session, _ := runExtract(t, req)

		require.NotNil(t, session)
		assert.Equal(t, "not-a-jwt", session.Token)
	})

	t.Run("Expired Token Is Ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(userCookie(t, user))
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: signedToken(t, -time.Minute)})

		session, recorder := runExtract(t, req)

		assert.Nil(t, session)
		assert.True(t, clearedCookies(recorder)[middleware.TokenCookieName])
	})

	t.Run("Corrupt User Cookie Clears Both", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middleware.UserCookieName, Value: "bm90LWpzb24"})
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: "tok"})

		session, recorder := runExtract(t, req)

		assert.Nil(t, session)
		cleared := clearedCookies(recorder)
		assert.True(t, cleared[middleware.UserCookieName])
		assert.True(t, cleared[middleware.TokenCookieName])
	})
}

func TestRequireSession(t *testing.T) {
	handler := middleware.RequireSession(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("Rejects Guest", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		handler(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Authentication required")
	})

	t.Run("Passes Session", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middleware.WithSession(req.Context(), &models.Session{User: &models.User{ID: "1"}, Token: "t"}))

		handler(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})
}

func TestWriteAndClear(t *testing.T) {
	// Arrange
	sessions := middleware.NewSessionMiddleware(cookieOpts)
	recorder := httptest.NewRecorder()
	user := &models.User{ID: "u-1", Name: "Karim \"K\"", Email: "karim@example.com"}

	// Act
	err := sessions.Write(recorder, &models.Session{User: user, Token: "tok"})

	// Assert
	require.NoError(t, err)

	written := map[string]*http.Cookie{}
	for _, c := range recorder.Result().Cookies() {
		written[c.Name] = c
	}

	require.Contains(t, written, middleware.UserCookieName)
	require.Contains(t, written, middleware.TokenCookieName)
	assert.Equal(t, "tok", written[middleware.TokenCookieName].Value)
	assert.Equal(t, http.SameSiteLaxMode, written[middleware.TokenCookieName].SameSite)
	assert.Equal(t, 7*24*60*60, written[middleware.UserCookieName].MaxAge)

	decoded, err := middleware.DecodeUser(written[middleware.UserCookieName].Value)
	require.NoError(t, err)
	assert.Equal(t, user, decoded)

	cleared := httptest.NewRecorder()
	sessions.Clear(cleared)
	assert.Len(t, clearedCookies(cleared), 2)
}
