package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	appErrors "github.com/sajibul-islam-robin/halchash-frontend/internal/errors"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
)

const (
	UserCookieName  = "user"
	TokenCookieName = "auth_token"
)

type sessionContextKey struct{}

// CookieOptions controls the attributes of the session cookies.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
	Domain string
}

// SessionMiddleware restores the shopper's session from the `user` and
// `auth_token` cookies. Tokens are issued and verified by the backend, so only
// the expiry claim is inspected here.
type SessionMiddleware struct {
	opts   CookieOptions
	parser *jwt.Parser
	now    func() time.Time
}

func NewSessionMiddleware(opts CookieOptions) *SessionMiddleware {
	return &SessionMiddleware{
		opts:   opts,
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*models.Session)
	return session, ok && session != nil
}

// Extract attaches the session to the request context when one is present.
// It never rejects a request.
func (m *SessionMiddleware) Extract(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		session, err := m.read(r)
		if err != nil {
			logger.Warn("Discarding session cookies", slog.String("reason", err.Error()))
			m.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		if session == nil {
			next.ServeHTTP(w, r)
			return
		}

		logger = logger.With(slog.Any("userId", session.User.ID))
		ctx := context.WithValue(WithSession(r.Context(), session), LoggerKey, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession answers 401 when the request carries no session.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			LoggerFromContext(r.Context()).Warn("Missing session")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		next(w, r)
	}
}

var (
	errCorruptUserCookie = errors.New("corrupt user cookie")
	errExpiredToken      = errors.New("token expired")
)

func (m *SessionMiddleware) read(r *http.Request) (*models.Session, error) {
	token := bearerToken(r)

	cookie, err := r.Cookie(UserCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	user, err := DecodeUser(cookie.Value)
	if err != nil {
		return nil, errCorruptUserCookie
	}

	if token == "" {
		token = user.JWTToken
	}

	if m.expired(token) {
		return nil, errExpiredToken
	}

	return &models.Session{User: user, Token: token}, nil
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// expired reports whether token is a JWT whose exp claim has passed. Opaque
// tokens are left for the backend to judge.
func (m *SessionMiddleware) expired(token string) bool {
	if token == "" {
		return false
	}

	claims := &models.TokenClaims{}
	if _, _, err := m.parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	return claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(m.now())
}

// Write stores the session in the `user` and `auth_token` cookies.
func (m *SessionMiddleware) Write(w http.ResponseWriter, session *models.Session) error {
	value, err := EncodeUser(session.User)
	if err != nil {
		return err
	}

	expires := m.now().Add(m.opts.TTL)

	http.SetCookie(w, m.cookie(UserCookieName, value, expires))

	if session.Token != "" {
		http.SetCookie(w, m.cookie(TokenCookieName, session.Token, expires))
	}

	return nil
}

// Clear deletes both session cookies.
func (m *SessionMiddleware) Clear(w http.ResponseWriter) {
	for _, name := range []string{UserCookieName, TokenCookieName} {
		c := m.cookie(name, "", time.Time{})
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (m *SessionMiddleware) cookie(name, value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.opts.Domain,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	if !expires.IsZero() {
		c.Expires = expires
		c.MaxAge = int(m.opts.TTL.Seconds())
	}

	return c
}

func EncodeUser(user *models.User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

func DecodeUser(value string) (*models.User, error) {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}

	user := &models.User{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, err
	}

	return user, nil
}
